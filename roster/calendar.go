package roster

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE HELPERS - Month geometry and day classification
// =============================================================================

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsWeekendDay reports whether the given day falls on Saturday or Sunday.
func IsWeekendDay(year int, month time.Month, day int) bool {
	wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DayKey formats a date as DD/MM/YYYY, the key format used for holiday
// matching and shared with the holiday source.
func DayKey(day int, month time.Month, year int) string {
	return fmt.Sprintf("%02d/%02d/%04d", day, int(month), year)
}

// CurrentPeriod returns the period containing the given instant.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: now.Month()}
}
