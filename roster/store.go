/*
store.go - Persistence interfaces for schedules and people

PURPOSE:
  Defines the interface between the roster engine and the database. The
  engine treats storage as get/set per (user, period); the idempotence
  decision (reuse vs regenerate) belongs to the engine, not the store.

ATOMICITY CONTRACT:
  SaveSchedule persists the calendar, the roster snapshot it was built
  from, and the rotation state as one unit. A failed save must leave all
  three untouched - the rotation cursor must never outlive a calendar that
  was not stored.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite, one row per (user, year, month)
  - roster/store: In-memory for testing
*/
package roster

import "context"

// ScheduleRecord is everything persisted for one (user, period).
type ScheduleRecord struct {
	// Calendar holds one entry per day of the month.
	Calendar []CalendarDay

	// People is the roster snapshot the calendar was built from, used to
	// detect roster changes on the next generation request.
	People []string

	// Rotation carries the continuous-mode resume cursors as of this
	// period's build.
	Rotation RotationState
}

// Gateway persists schedules. Last-writer-wins per (user, year, month);
// no finer-grained locking is assumed.
type Gateway interface {
	// LoadSchedule returns the saved record for the period, or nil when
	// none exists.
	LoadSchedule(ctx context.Context, userID string, p Period) (*ScheduleRecord, error)

	// SaveSchedule upserts the record for the period atomically.
	SaveSchedule(ctx context.Context, userID string, p Period, rec ScheduleRecord) error
}

// PeopleStore manages the roster members of one account.
type PeopleStore interface {
	// ListPeople returns the account's roster ordered by name.
	ListPeople(ctx context.Context, userID string) ([]Person, error)

	// AddPerson inserts a member. Returns ErrDuplicatePerson when the name
	// already exists (case-insensitive) for the account.
	AddPerson(ctx context.Context, userID, name string) (Person, error)

	// RemovePerson deletes a member. Returns ErrPersonNotFound when the id
	// does not belong to the account.
	RemovePerson(ctx context.Context, userID, id string) error
}

// HolidaySource looks up national holidays for a year. Implementations
// return a HolidayLookupError on network or format failures; the generator
// recovers by degrading to an empty holiday set.
type HolidaySource interface {
	Holidays(ctx context.Context, year int) ([]Holiday, error)
}

// NoHolidays is a HolidaySource that knows no holidays, for callers that
// classify days by weekend only.
type NoHolidays struct{}

func (NoHolidays) Holidays(ctx context.Context, year int) ([]Holiday, error) { return nil, nil }
