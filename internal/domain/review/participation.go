package review

import (
	"fmt"
	"strings"
	"time"
)

type ParticipationState string

const (
	ParticipationUpcoming    ParticipationState = "upcoming"
	ParticipationActive      ParticipationState = "active"
	ParticipationPeriodEnded ParticipationState = "period_ended"
	ParticipationCompleted   ParticipationState = "completed"
	ParticipationDropped     ParticipationState = "dropped"
)

func ParseParticipationState(raw string) (ParticipationState, error) {
	state := ParticipationState(strings.ToLower(strings.TrimSpace(raw)))
	switch state {
	case ParticipationUpcoming, ParticipationActive, ParticipationPeriodEnded, ParticipationCompleted, ParticipationDropped:
		return state, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidParticipation, raw)
	}
}

// Explicit reports whether the state was set by staff rather than derived from dates.
func (s ParticipationState) Explicit() bool {
	return s == ParticipationCompleted || s == ParticipationDropped
}

// EffectiveParticipationState recomputes date-driven states from the program
// period. Completed and dropped are sticky.
func EffectiveParticipationState(stored ParticipationState, programStart time.Time, programEnd time.Time, now time.Time, loc *time.Location) ParticipationState {
	if stored.Explicit() {
		return stored
	}
	switch Classify(programStart, programEnd, now, loc) {
	case WindowUpcoming:
		return ParticipationUpcoming
	case WindowOpen:
		return ParticipationActive
	default:
		return ParticipationPeriodEnded
	}
}

// ProvisionAction is the participation side effect of a status edge.
type ProvisionAction int

const (
	ProvisionNone ProvisionAction = iota
	ProvisionEnsure
	ProvisionRetract
)

func (a ProvisionAction) String() string {
	switch a {
	case ProvisionEnsure:
		return "ensure"
	case ProvisionRetract:
		return "retract"
	default:
		return "none"
	}
}

// ProvisionFor maps an applied edge to its participation effect.
// final_pass can only leave towards rejected, so that is the single retraction edge.
func ProvisionFor(prior Status, target Status) ProvisionAction {
	switch {
	case target == StatusFinalPass:
		return ProvisionEnsure
	case prior == StatusFinalPass && target == StatusRejected:
		return ProvisionRetract
	default:
		return ProvisionNone
	}
}

// ValidateReviewScores checks a post-acceptance performance review and returns its aggregate.
func ValidateReviewScores(scores map[string]int) (int, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("%w: at least one score is required", ErrInvalidScore)
	}
	total := 0
	for name, score := range scores {
		if strings.TrimSpace(name) == "" {
			return 0, fmt.Errorf("%w: score name is required", ErrInvalidScore)
		}
		if err := validateScore(name, score); err != nil {
			return 0, err
		}
		total += score
	}
	return total, nil
}
