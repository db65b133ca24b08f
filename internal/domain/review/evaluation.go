package review

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinScore      = 0
	MaxScore      = 100
	MaxMemoLength = 500
)

// Criteria holds the three independently bounded scores of one evaluation.
type Criteria struct {
	C1 int
	C2 int
	C3 int
}

func (c Criteria) Validate() error {
	if err := validateScore("criterion1", c.C1); err != nil {
		return err
	}
	if err := validateScore("criterion2", c.C2); err != nil {
		return err
	}
	return validateScore("criterion3", c.C3)
}

func (c Criteria) Total() int {
	return c.C1 + c.C2 + c.C3
}

func NormalizeMemo(memo string) (string, error) {
	trimmed := strings.TrimSpace(memo)
	if utf8.RuneCountInString(trimmed) > MaxMemoLength {
		return "", fmt.Errorf("%w: %d characters max", ErrMemoTooLong, MaxMemoLength)
	}
	return trimmed, nil
}

// TimestampLayout is a fixed-width UTC layout; stored timestamps sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func validateScore(name string, score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: %s=%d not in [%d,%d]", ErrInvalidScore, name, score, MinScore, MaxScore)
	}
	return nil
}
