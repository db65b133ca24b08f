package review

import (
	"errors"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 6, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want WindowStatus
	}{
		{"day before start", time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC), WindowUpcoming},
		{"start day before start time", time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC), WindowOpen},
		{"middle", time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), WindowOpen},
		{"end day after end time", time.Date(2026, 3, 20, 23, 0, 0, 0, time.UTC), WindowOpen},
		{"day after end", time.Date(2026, 3, 21, 0, 0, 1, 0, time.UTC), WindowClosed},
	}
	for _, tc := range cases {
		if got := Classify(start, end, tc.now, time.UTC); got != tc.want {
			t.Fatalf("%s: Classify() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestClassifyUsesLocationDay(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, seoul)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, seoul)

	// 2026-03-09 16:00 UTC is already 2026-03-10 in KST.
	now := time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC)
	if got := Classify(start, end, now, seoul); got != WindowOpen {
		t.Fatalf("Classify() in KST = %q, want open", got)
	}

	// The same calendar day read in UTC has not begun yet.
	utcStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	utcEnd := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := Classify(utcStart, utcEnd, now, time.UTC); got != WindowUpcoming {
		t.Fatalf("Classify() in UTC = %q, want upcoming", got)
	}
}

func TestSubmissionAllowed(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	open := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	if err := SubmissionAllowed(true, start, end, open, nil); err != nil {
		t.Fatalf("SubmissionAllowed(open) error = %v", err)
	}
	if err := SubmissionAllowed(false, start, end, open, nil); !errors.Is(err, ErrPostingUnpublished) {
		t.Fatalf("SubmissionAllowed(unpublished) error = %v", err)
	}
	if err := SubmissionAllowed(true, start, end, late, nil); !errors.Is(err, ErrWindowNotOpen) {
		t.Fatalf("SubmissionAllowed(closed) error = %v", err)
	}
}

func TestPostingPhaseEffective(t *testing.T) {
	override := "closed"
	phase := PostingPhase{Computed: WindowOpen, Override: &override}
	if phase.Effective() != "closed" {
		t.Fatalf("Effective() = %q, want override", phase.Effective())
	}
	if phase.Computed != WindowOpen {
		t.Fatalf("Computed should stay clock-derived")
	}
	if (PostingPhase{Computed: WindowUpcoming}).Effective() != "upcoming" {
		t.Fatalf("Effective() without override should be computed")
	}
}
