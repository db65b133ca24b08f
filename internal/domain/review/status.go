package review

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusFirstPass Status = "first_pass"
	StatusFinalPass Status = "final_pass"
	StatusRejected  Status = "rejected"
)

// transitions is the allowed-edge table. There is no terminal state.
var transitions = map[Status][]Status{
	StatusSubmitted: {StatusFirstPass, StatusFinalPass, StatusRejected},
	StatusFirstPass: {StatusFinalPass, StatusRejected},
	StatusFinalPass: {StatusRejected},
	StatusRejected:  {StatusFirstPass, StatusFinalPass},
}

var statusLabels = map[Status]string{
	StatusSubmitted: "Submitted",
	StatusFirstPass: "First pass",
	StatusFinalPass: "Final pass",
	StatusRejected:  "Rejected",
}

// AllStatuses lists states in pipeline order.
func AllStatuses() []Status {
	return []Status{StatusSubmitted, StatusFirstPass, StatusFinalPass, StatusRejected}
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func ParseStatus(raw string) (Status, error) {
	normalized := Status(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"))
	if !normalized.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return normalized, nil
}

// AllowedTargets returns the states reachable from s in one step.
func AllowedTargets(s Status) []Status {
	targets := transitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether from -> to is an edge. from == to never is.
func CanTransition(from Status, to Status) bool {
	for _, target := range transitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from Status, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
