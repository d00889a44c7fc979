// Package biztime provides time utilities for billing calculations.
// All storage and transport use UTC; implicit local timezone is prohibited.
// Usage counters are bucketed by calendar month using "YYYY-MM" keys.
package biztime

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// MonthKeyLayout is the layout of a usage month key.
const MonthKeyLayout = "2006-01"

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// MonthKey returns the "YYYY-MM" bucket key for the given instant.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// CurrentMonthKey returns the bucket key for the current month.
func CurrentMonthKey() string {
	return MonthKey(NowUTC())
}

// ValidateMonthKey checks that s is a well-formed "YYYY-MM" key.
func ValidateMonthKey(s string) error {
	if !monthKeyPattern.MatchString(s) {
		return fmt.Errorf("invalid month key %q: expected YYYY-MM", s)
	}
	return nil
}

// DaysUntil returns the number of whole days from now until t, rounded up.
// A result of 0 means t is now or in the past.
func DaysUntil(now, t time.Time) int {
	remaining := t.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
