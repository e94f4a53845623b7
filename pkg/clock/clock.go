package clock

import (
	"math"
	"time"
)

// Clock supplies the current time in the campsite's time zone. Business rules
// that depend on "today" take a Clock so tests can pin the date.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a clock backed by time.Now in the given zone.
func NewSystem(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c systemClock) Location() *time.Location {
	return c.loc
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock frozen at the given instant, for deterministic
// tests of date-boundary rules.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func (c fixedClock) Location() *time.Location {
	return c.now.Location()
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween counts whole calendar days from a to b, ignoring the
// time-of-day component of both. Rounding absorbs DST days that are not
// exactly 24 hours long.
func DaysBetween(a, b time.Time) int {
	loc := a.Location()
	from := Midnight(a, loc)
	to := Midnight(b.In(loc), loc)
	return int(math.Round(to.Sub(from).Hours() / 24))
}
