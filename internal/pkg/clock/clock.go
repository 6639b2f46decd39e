// Package clock provides time sources for the use cases.
package clock

import "time"

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant. Tests use it to pin deadlines.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f).UTC()
}
