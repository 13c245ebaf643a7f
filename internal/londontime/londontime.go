// Package londontime converts instants to and from the pub's wall clock.
// All date logic in the service runs on Europe/London time; the server itself
// typically runs in UTC, and fixed-offset arithmetic breaks twice a year at
// the BST/GMT transitions.
package londontime

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var location *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		// tzdata is a build/deploy requirement; without it every date
		// computation in the service would be wrong.
		panic(fmt.Sprintf("load Europe/London location: %v", err))
	}
	location = loc
}

// Location returns the Europe/London location.
func Location() *time.Location {
	return location
}

// Components returns the London-local calendar date for an instant.
func Components(t time.Time) (year int, month time.Month, day int) {
	return t.In(location).Date()
}

// Noon returns noon London time on the instant's London calendar day.
// Used as a stable "current date" reference that stays clear of midnight
// boundaries when compared against date ranges.
func Noon(t time.Time) time.Time {
	year, month, day := Components(t)
	return time.Date(year, month, day, 12, 0, 0, 0, location)
}

// Midnight returns 00:00:00 London time on the instant's London calendar day.
func Midnight(t time.Time) time.Time {
	year, month, day := Components(t)
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseDate parses a YYYY-MM-DD string as midnight London time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse london date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate returns the instant's London calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.In(location).Format(dateLayout)
}

// RangeToInstants converts an inclusive [start, end] date range (YYYY-MM-DD)
// into absolute instants: 00:00:00.000 on the start date and 23:59:59.999 on
// the end date, both London wall clock. Constructing the bounds in-zone keeps
// them correct across DST transitions.
func RangeToInstants(startDate, endDate string) (start, end time.Time, err error) {
	start, err = ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDay, err := ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	year, month, day := endDay.Date()
	end = time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), location)
	return start, end, nil
}

// InRange reports whether now falls within [start, end], bounds inclusive.
func InRange(now, start, end time.Time) bool {
	return !now.Before(start) && !now.After(end)
}
