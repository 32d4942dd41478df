// Package window defines the half-open time intervals used to scope
// ranking, highlight, and timeline queries.
package window

import (
	"fmt"
	"time"
)

// Window names a query interval relative to "now".
type Window string

// Supported windows. AllTime has no lower bound.
const (
	AllTime      Window = "ALL_TIME"
	CurrentYear  Window = "CURRENT_YEAR"
	CurrentMonth Window = "CURRENT_MONTH"
	Last30Days   Window = "LAST_30_DAYS"
	Last6Months  Window = "LAST_6_MONTHS"
	Last12Months Window = "LAST_12_MONTHS"
)

var all = []Window{AllTime, CurrentYear, CurrentMonth, Last30Days, Last6Months, Last12Months}

// Parse validates a wire name. The empty string defaults to AllTime.
func Parse(s string) (Window, error) {
	if s == "" {
		return AllTime, nil
	}
	for _, w := range all {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown window: %q", s)
}

// String returns the wire name.
func (w Window) String() string { return string(w) }

// Bounds returns the [from, to) interval for the window anchored at now.
// A zero `from` means unbounded. Calendar windows start at local midnight of
// their first day, matching how the rest of the system reports months.
func (w Window) Bounds(now time.Time) (from, to time.Time) {
	to = now
	switch w {
	case AllTime:
		return time.Time{}, to
	case CurrentYear:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case CurrentMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case Last30Days:
		y, m, d := now.AddDate(0, 0, -30).Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case Last6Months:
		y, m, d := now.AddDate(0, -6, 0).Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case Last12Months:
		y, m, d := now.AddDate(0, -12, 0).Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}, to
	}
	return from, to
}

// Contains reports whether t falls inside the window anchored at now.
func (w Window) Contains(now, t time.Time) bool {
	from, to := w.Bounds(now)
	if !from.IsZero() && t.Before(from) {
		return false
	}
	return t.Before(to) || t.Equal(to)
}
