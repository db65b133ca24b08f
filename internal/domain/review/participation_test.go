package review

import (
	"errors"
	"testing"
	"time"
)

func TestProvisionFor(t *testing.T) {
	cases := []struct {
		prior, target Status
		want          ProvisionAction
	}{
		{StatusSubmitted, StatusFinalPass, ProvisionEnsure},
		{StatusFirstPass, StatusFinalPass, ProvisionEnsure},
		{StatusRejected, StatusFinalPass, ProvisionEnsure},
		{StatusFinalPass, StatusRejected, ProvisionRetract},
		{StatusSubmitted, StatusRejected, ProvisionNone},
		{StatusFirstPass, StatusRejected, ProvisionNone},
		{StatusSubmitted, StatusFirstPass, ProvisionNone},
		{StatusRejected, StatusFirstPass, ProvisionNone},
	}
	for _, tc := range cases {
		if got := ProvisionFor(tc.prior, tc.target); got != tc.want {
			t.Fatalf("ProvisionFor(%s, %s) = %s, want %s", tc.prior, tc.target, got, tc.want)
		}
	}
}

func TestEffectiveParticipationState(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	before := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	during := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	after := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	if got := EffectiveParticipationState(ParticipationUpcoming, start, end, before, nil); got != ParticipationUpcoming {
		t.Fatalf("before = %q", got)
	}
	if got := EffectiveParticipationState(ParticipationUpcoming, start, end, during, nil); got != ParticipationActive {
		t.Fatalf("during = %q", got)
	}
	if got := EffectiveParticipationState(ParticipationActive, start, end, after, nil); got != ParticipationPeriodEnded {
		t.Fatalf("after = %q", got)
	}
	if got := EffectiveParticipationState(ParticipationDropped, start, end, during, nil); got != ParticipationDropped {
		t.Fatalf("dropped should be sticky, got %q", got)
	}
}

func TestParseParticipationState(t *testing.T) {
	if got, err := ParseParticipationState(" Completed "); err != nil || got != ParticipationCompleted {
		t.Fatalf("ParseParticipationState() = %q, %v", got, err)
	}
	if _, err := ParseParticipationState("graduated"); !errors.Is(err, ErrInvalidParticipation) {
		t.Fatalf("ParseParticipationState(graduated) error = %v", err)
	}
}

func TestValidateReviewScores(t *testing.T) {
	total, err := ValidateReviewScores(map[string]int{"attendance": 90, "output": 75})
	if err != nil {
		t.Fatalf("ValidateReviewScores() error = %v", err)
	}
	if total != 165 {
		t.Fatalf("total = %d, want 165", total)
	}

	if _, err := ValidateReviewScores(map[string]int{"output": 101}); !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("ValidateReviewScores(101) error = %v", err)
	}
	if _, err := ValidateReviewScores(nil); !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("ValidateReviewScores(nil) error = %v", err)
	}
}
