/*
Package roster provides the core duty-roster engine.

PURPOSE:
  This package contains the domain types and algorithms for generating a
  monthly morning/afternoon duty roster for a small group of people. It
  decides, for each day of a target month, which two people are on duty,
  under two assignment modes: a one-shot random shuffle, and a continuous
  alphabetical rotation that carries a resume cursor across months.

KEY CONCEPTS IN THIS FILE (types.go):
  - Person: A member of the roster (unique name per account)
  - CalendarDay: One day of the built schedule (classification + assignments)
  - RotationState: Per-month resume cursors for the continuous mode
  - Period: A (year, month) pair identifying one schedule instance
  - Mode: Which ordering policy to apply (shuffle or continuous)

DESIGN PRINCIPLES:
  1. Purity: ordering and building are pure functions over their inputs
  2. One source of truth: the rotation cursor lives in RotationState and is
     persisted together with the calendar it belongs to
  3. Idempotence: an already-generated period is reused, never silently
     regenerated, unless the roster changed

USAGE:
  ordered, err := roster.Order(names, roster.ModeContinuous, cursor)
  calendar := roster.Build(2025, time.July, ordered, holidays)
  last, ok := roster.LastAssigned(calendar)

SEE ALSO:
  - order.go: Shuffle and continuous-alphabetical ordering
  - builder.go: Day-by-day calendar construction
  - continuity.go: Resume-cursor maintenance
  - generate.go: The full generation/edit pipeline
*/
package roster

import (
	"fmt"
	"time"
)

// =============================================================================
// PERSON - Roster member
// =============================================================================

// Person is a member of the roster. Names are unique (case-insensitive)
// within one account; uniqueness is enforced at insertion by the store.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// =============================================================================
// HOLIDAY - Externally sourced, read-only
// =============================================================================

// Holiday is a national holiday for a given year. Date uses the DD/MM/YYYY
// key format shared with CalendarDay classification.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// =============================================================================
// CALENDAR DAY - One day of a built schedule
// =============================================================================

// CalendarDay is one day of the generated month.
//
// Invariant: if IsWeekend or IsHoliday is true, both person fields are
// empty; otherwise both are assigned. The builder never leaves a workday
// half-assigned, and single-day edits preserve this.
type CalendarDay struct {
	Day             int    `json:"day"`
	IsWeekend       bool   `json:"isWeekend"`
	IsHoliday       bool   `json:"isHoliday"`
	HolidayName     string `json:"holidayName,omitempty"`
	MorningPerson   string `json:"morningPerson,omitempty"`
	AfternoonPerson string `json:"afternoonPerson,omitempty"`
}

// IsWorkday reports whether the day carries assignments.
func (d CalendarDay) IsWorkday() bool { return !d.IsWeekend && !d.IsHoliday }

// =============================================================================
// MODE - Ordering policy
// =============================================================================

type Mode string

const (
	// ModeShuffle assigns a uniform random permutation of the roster.
	ModeShuffle Mode = "shuffle"

	// ModeContinuous assigns an alphabetical rotation that resumes after
	// the last person assigned in the previous month.
	ModeContinuous Mode = "continuous"
)

// =============================================================================
// ROTATION STATE - Resume cursors for the continuous mode
// =============================================================================

// RotationState maps a month number (1-12) to the name of the last person
// assigned in that month. One entry exists per month in which continuous
// mode was used. The entry for month M seeds the rotation of month M+1.
type RotationState map[int]string

// Set records the last assigned person for a month.
func (rs RotationState) Set(month time.Month, name string) {
	rs[int(month)] = name
}

// CursorFor returns the resume cursor for a target month: the entry of the
// immediately preceding month, walking further back (wrapping December)
// across months that never assigned anyone. Returns ok=false when no prior
// month recorded a cursor.
func (rs RotationState) CursorFor(month time.Month) (string, bool) {
	m := int(month)
	for i := 0; i < 11; i++ {
		m--
		if m < 1 {
			m = 12
		}
		if name, ok := rs[m]; ok {
			return name, true
		}
	}
	return "", false
}

// Clone returns an independent copy. A nil state clones to an empty one so
// callers can write to the result unconditionally.
func (rs RotationState) Clone() RotationState {
	out := make(RotationState, len(rs))
	for m, name := range rs {
		out[m] = name
	}
	return out
}

// =============================================================================
// PERIOD - (year, month) schedule key
// =============================================================================

// Period identifies one persisted schedule: a calendar, the roster snapshot
// it was built from, and the rotation state as of that month.
type Period struct {
	Year  int
	Month time.Month
}

// Index returns the global month index (year*12 + month), used to compare
// periods across year boundaries.
func (p Period) Index() int { return p.Year*12 + int(p.Month) - 1 }

// Prev returns the immediately preceding period.
func (p Period) Prev() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Valid reports whether the period holds a real month.
func (p Period) Valid() bool { return p.Year > 0 && p.Month >= time.January && p.Month <= time.December }

func (p Period) String() string { return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month)) }
