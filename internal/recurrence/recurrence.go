// Package recurrence evaluates recurrence rules into occurrence dates.
//
// The evaluation engine is abstracted behind Rule, a forward-only,
// non-restartable iterator, so the RFC 5545 implementation underneath
// can be swapped without touching the expansion logic.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ErrInvalidRule reports a recurrence rule that failed to parse.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// DateLayout is the stored date format for occurrences.
const DateLayout = "2006-01-02"

// Rule yields occurrence dates in ascending order. Next returns false
// once the rule is exhausted; an exhausted rule must not be reused.
type Rule interface {
	Next() (time.Time, bool)
}

type rruleIterator struct {
	next rrule.Next
}

func (it *rruleIterator) Next() (time.Time, bool) {
	return it.next()
}

// Parse validates an RFC 5545 RRULE string and returns its occurrence
// sequence anchored at start. The start date itself is the first
// occurrence candidate.
func Parse(raw string, start time.Time) (Rule, error) {
	if raw == "" {
		return nil, ErrInvalidRule
	}
	parsed, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	opts := parsed.Options
	opts.Dtstart = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	anchored, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return &rruleIterator{next: anchored.Iterator()}, nil
}

// Validate reports whether raw is a parseable recurrence rule.
func Validate(raw string) error {
	_, err := Parse(raw, time.Unix(0, 0).UTC())
	return err
}

// OccurrenceSyncID derives the stable identifier of a materialized
// occurrence. The pair (rule stable id, date) makes replays idempotent:
// expanding the same rule over the same window always lands on the same
// identifiers.
func OccurrenceSyncID(ruleSyncID string, date time.Time) string {
	return ruleSyncID + ":" + date.Format(DateLayout)
}
