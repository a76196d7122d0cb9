package engine

import "time"

// Clock supplies the current time. The service derives "today" from it; the
// pure recurrence and XP functions never read a clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns T. Used in tests and for backfilling.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Today returns the calendar day of c.Now() in the clock's own location.
func Today(c Clock) Date {
	return DateOf(c.Now())
}
