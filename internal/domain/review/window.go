package review

import "time"

// WindowStatus is the clock-derived phase of a recruitment window.
type WindowStatus string

const (
	WindowUpcoming WindowStatus = "upcoming"
	WindowOpen     WindowStatus = "open"
	WindowClosed   WindowStatus = "closed"
)

// Classify compares calendar days in loc, so a window never flaps within one day.
// Both start and end days are inclusive.
func Classify(start time.Time, end time.Time, now time.Time, loc *time.Location) WindowStatus {
	if loc == nil {
		loc = time.UTC
	}

	today := dayOf(now, loc)
	switch {
	case today.Before(dayOf(start, loc)):
		return WindowUpcoming
	case today.After(dayOf(end, loc)):
		return WindowClosed
	default:
		return WindowOpen
	}
}

// SubmissionAllowed requires both the published flag and an open window.
func SubmissionAllowed(published bool, start time.Time, end time.Time, now time.Time, loc *time.Location) error {
	if !published {
		return ErrPostingUnpublished
	}
	if Classify(start, end, now, loc) != WindowOpen {
		return ErrWindowNotOpen
	}
	return nil
}

// PostingPhase pairs the computed window status with an optional stored override.
// Computed is always derived from dates; Override is reported, never substituted.
type PostingPhase struct {
	Computed WindowStatus
	Override *string
}

func (p PostingPhase) Effective() string {
	if p.Override != nil && *p.Override != "" {
		return *p.Override
	}
	return string(p.Computed)
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
