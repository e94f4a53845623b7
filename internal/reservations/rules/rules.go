// Package rules holds the business constraints checked before any
// reservation write. Rules are stateless and safe for concurrent use; the
// pipeline runs them in registration order and stops at the first failure.
package rules

import (
	"fmt"
	"time"

	"campsite/pkg/clock"
	apperrors "campsite/pkg/errors"
)

// Rule validates one constraint over a requested stay. A nil return means
// the rule passes; failures are conflict-class AppErrors.
type Rule interface {
	Validate(email string, arrivalDate time.Time, lengthOfStay int) error
}

// Pipeline runs rules in a fixed order, short-circuiting on the first
// failure.
type Pipeline struct {
	rules []Rule
}

func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{rules: rules}
}

func (p *Pipeline) Validate(email string, arrivalDate time.Time, lengthOfStay int) error {
	for _, rule := range p.rules {
		if err := rule.Validate(email, arrivalDate, lengthOfStay); err != nil {
			return err
		}
	}
	return nil
}

// MaxLengthOfStayRule rejects stays longer than the configured maximum.
type MaxLengthOfStayRule struct {
	MaxNights int
}

func (r MaxLengthOfStayRule) Validate(_ string, _ time.Time, lengthOfStay int) error {
	if lengthOfStay > r.MaxNights {
		return apperrors.Conflict(fmt.Sprintf("The campsite can be reserved for max %d days", r.MaxNights))
	}
	return nil
}

// BookingWindowRule rejects arrival dates outside the allowed advance-booking
// window: at least MinDaysAhead and at most MaxDaysAhead calendar days after
// the campsite's current date.
type BookingWindowRule struct {
	Clock        clock.Clock
	MinDaysAhead int
	MaxDaysAhead int
}

func (r BookingWindowRule) Validate(_ string, arrivalDate time.Time, _ int) error {
	daysInAdvance := clock.DaysBetween(r.Clock.Now(), arrivalDate)

	if daysInAdvance < r.MinDaysAhead || daysInAdvance > r.MaxDaysAhead {
		// The reported range is derived from the requested arrival date, not
		// from today. This reproduces the long-standing behavior of the
		// deployed system; clients parse this message, so keep it as is.
		allowedStart := arrivalDate.AddDate(0, 0, r.MinDaysAhead)
		allowedEnd := arrivalDate.AddDate(0, 0, r.MaxDaysAhead)

		return apperrors.Conflict(fmt.Sprintf(
			"Selected date (%s) is out of allowed range. Your reservation should start between %s and %s.",
			arrivalDate.Format("2006-01-02"),
			allowedStart.Format("2006-01-02"),
			allowedEnd.Format("2006-01-02"),
		))
	}
	return nil
}
