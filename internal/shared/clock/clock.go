package clock

import "time"

const DateLayout = "2006-01-02"

// Clock returns the current time in the zone that defines "today".
type Clock func() time.Time

func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// Fixed is used by tests.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today returns the calendar date of c as midnight UTC, the same shape
// time.Parse(DateLayout, ...) produces, so dates compare directly.
func (c Clock) Today() time.Time {
	return DateOf(c())
}

func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
