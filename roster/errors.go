/*
errors.go - Centralized error types for the roster engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (API handlers, CLI) map these to user-facing responses.

ERROR CATEGORIES:
  1. Validation errors - Rejected before generation, no side effects
  2. Holiday errors    - Recovered locally, generation degrades
  3. Persistence/conflict errors - Surfaced to the caller, retryable

USAGE:
  The API layer uses the category helpers:

    if roster.IsClientError(err) {
        writeError(w, http.StatusBadRequest, err.Error(), err)
    }
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInsufficientRoster is returned when fewer than two people are
	// available. Generation is rejected before any ordering happens.
	ErrInsufficientRoster = errors.New("at least two people are required")

	// ErrPeriodInPast is returned when the target period is strictly
	// before the current month.
	ErrPeriodInPast = errors.New("period is before the current month")

	// ErrPeriodTooFar is returned when the target period is more than two
	// calendar months ahead of the current month.
	ErrPeriodTooFar = errors.New("period is more than two months ahead")

	// ErrUnknownMode is returned for an ordering mode the engine does not
	// recognize.
	ErrUnknownMode = errors.New("unknown assignment mode")

	// ErrDuplicatePerson is returned when adding a person whose name
	// already exists (case-insensitive) in the roster.
	ErrDuplicatePerson = errors.New("person already exists")

	// ErrPersonNotFound is returned when removing an unknown person.
	ErrPersonNotFound = errors.New("person not found")

	// ErrScheduleNotFound is returned when editing a period that has no
	// saved schedule.
	ErrScheduleNotFound = errors.New("no schedule saved for period")

	// ErrDayNotEditable is returned when a single-day edit targets a
	// weekend or holiday, or a half-assigned edit would result.
	ErrDayNotEditable = errors.New("day does not accept assignments")

	// ErrHolidayLookup wraps failures of the holiday source. The
	// generator recovers from it; direct lookups surface it.
	ErrHolidayLookup = errors.New("holiday lookup failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientRosterError reports how many people were available.
type InsufficientRosterError struct {
	Have int
}

func (e *InsufficientRosterError) Error() string {
	return fmt.Sprintf("at least two people are required to build a roster, have %d", e.Have)
}

func (e *InsufficientRosterError) Unwrap() error { return ErrInsufficientRoster }

// HolidayLookupError reports which year's lookup failed and why.
type HolidayLookupError struct {
	Year int
	Err  error
}

func (e *HolidayLookupError) Error() string {
	return fmt.Sprintf("holiday lookup for %d failed: %v", e.Year, e.Err)
}

func (e *HolidayLookupError) Unwrap() error { return ErrHolidayLookup }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// and should not be retried unchanged.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientRoster) ||
		errors.Is(err, ErrPeriodInPast) ||
		errors.Is(err, ErrPeriodTooFar) ||
		errors.Is(err, ErrUnknownMode) ||
		errors.Is(err, ErrDayNotEditable)
}

// IsConflict returns true if the error indicates a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicatePerson)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPersonNotFound) ||
		errors.Is(err, ErrScheduleNotFound)
}
