package review

import (
	"errors"
	"testing"

	"recruitflow/internal/errs"
)

func TestValidateTransitionMatrix(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusSubmitted, StatusFirstPass}: true,
		{StatusSubmitted, StatusFinalPass}: true,
		{StatusSubmitted, StatusRejected}:  true,
		{StatusFirstPass, StatusFinalPass}: true,
		{StatusFirstPass, StatusRejected}:  true,
		{StatusFinalPass, StatusRejected}:  true,
		{StatusRejected, StatusFirstPass}:  true,
		{StatusRejected, StatusFinalPass}:  true,
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			err := ValidateTransition(from, to)
			if allowed[[2]Status{from, to}] {
				if err != nil {
					t.Fatalf("ValidateTransition(%s, %s) error = %v, want nil", from, to, err)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("ValidateTransition(%s, %s) error = %v, want ErrInvalidTransition", from, to, err)
			}
			if errs.KindOf(err) != errs.KindInvalidTransition {
				t.Fatalf("ValidateTransition(%s, %s) kind = %q", from, to, errs.KindOf(err))
			}
		}
	}
}

func TestValidateTransitionUnknownTarget(t *testing.T) {
	err := ValidateTransition(StatusSubmitted, Status("hired"))
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("ValidateTransition() error = %v, want ErrUnknownStatus", err)
	}
	if errs.KindOf(err) != errs.KindInvalidTransition {
		t.Fatalf("kind = %q, want invalid_transition", errs.KindOf(err))
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus(" First-Pass ")
	if err != nil {
		t.Fatalf("ParseStatus() error = %v", err)
	}
	if got != StatusFirstPass {
		t.Fatalf("ParseStatus() = %q", got)
	}

	if _, err := ParseStatus("accepted"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("ParseStatus(accepted) error = %v", err)
	}
}

func TestAllowedTargetsReturnsCopy(t *testing.T) {
	targets := AllowedTargets(StatusFinalPass)
	if len(targets) != 1 || targets[0] != StatusRejected {
		t.Fatalf("AllowedTargets(final_pass) = %v", targets)
	}
	targets[0] = StatusSubmitted
	if !CanTransition(StatusFinalPass, StatusRejected) {
		t.Fatalf("mutating AllowedTargets result changed the edge table")
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusFinalPass.Label() != "Final pass" {
		t.Fatalf("Label() = %q", StatusFinalPass.Label())
	}
	if Status("x").Label() != "x" {
		t.Fatalf("Label() for unknown status should echo value")
	}
}
