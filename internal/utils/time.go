package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitone/internal/constants"
)

// Clock supplies the current time. The location of the returned time
// defines the calendar day boundary used by the daily reset.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock returns a SystemClock for the named IANA timezone.
// An empty name or "Local" selects the system's local timezone.
func NewSystemClock(timezone string) (SystemClock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Location: loc}, nil
}

// Now returns the current time without its monotonic reading, so values
// compare equal after a serialization round trip.
func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Round(0)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsSameDay reports whether t falls on the calendar day of ref, using ref's
// location for the midnight boundary.
func IsSameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FormatDay returns the YYYY-MM-DD form of t.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatHeaderDate returns the long date shown above the habit list.
func FormatHeaderDate(t time.Time) string {
	return t.Format(constants.HeaderDateFormat)
}
