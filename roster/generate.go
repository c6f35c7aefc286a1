/*
generate.go - The generation and edit pipeline

PURPOSE:
  Orchestrates one schedule operation end to end: validation gates, the
  reuse-or-regenerate decision, holiday lookup (with degradation), the
  ordering and build steps, the rotation-cursor update, and the save.

CONTROL FLOW:
  Generate:
    gates -> load saved period -> reuse if roster unchanged
          -> load previous period's rotation state -> resume cursor
          -> fetch holidays (degrade to empty on failure)
          -> Order -> Build -> record last assigned -> save as one unit

  EditDay:
    load saved period -> apply the edit to one workday
                      -> refresh the rotation cursor when the edited day
                         carries the month's final assignment -> save

IDEMPOTENCE:
  Generating the same period twice with an unchanged roster returns the
  saved calendar without re-running the orderer or builder, so already
  communicated assignments never silently change. A roster edit between
  calls forces regeneration and overwrites the period.

VALIDATION GATES:
  - at least two people
  - target period not before the current month
  - target period at most two calendar months ahead

SEE ALSO:
  - order.go, builder.go, continuity.go: The steps this file wires
  - store.go: The persistence contract
*/
package roster

import (
	"context"
	"fmt"
	"time"
)

// Generator runs the schedule pipeline against a persistence gateway and a
// holiday source.
type Generator struct {
	Store    Gateway
	Holidays HolidaySource

	// Now is the clock used for the period-window gates. Defaults to
	// time.Now; tests pin it.
	Now func() time.Time
}

// NewGenerator creates a generator with the real clock.
func NewGenerator(store Gateway, holidays HolidaySource) *Generator {
	return &Generator{Store: store, Holidays: holidays, Now: time.Now}
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// GenerateInput describes one generation request.
type GenerateInput struct {
	UserID string
	Period Period
	People []string
	Mode   Mode
}

// GenerateResult is the outcome of a generation request.
type GenerateResult struct {
	Calendar []CalendarDay
	Rotation RotationState

	// Reused is true when the saved schedule was returned unchanged
	// because the roster did not change since it was built.
	Reused bool

	// Warnings carries recovered degradations, such as a failed holiday
	// lookup. The schedule is still valid.
	Warnings []string
}

// Generate builds (or reuses) the schedule for one period and persists it
// together with the updated rotation state.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if in.Mode != ModeShuffle && in.Mode != ModeContinuous {
		return nil, ErrUnknownMode
	}
	if len(in.People) < 2 {
		return nil, &InsufficientRosterError{Have: len(in.People)}
	}
	if err := g.checkWindow(in.Period); err != nil {
		return nil, err
	}

	saved, err := g.Store.LoadSchedule(ctx, in.UserID, in.Period)
	if err != nil {
		return nil, fmt.Errorf("load schedule %s: %w", in.Period, err)
	}
	if saved != nil && SameRoster(saved.People, in.People) {
		return &GenerateResult{
			Calendar: saved.Calendar,
			Rotation: saved.Rotation.Clone(),
			Reused:   true,
		}, nil
	}

	rotation, err := g.loadRotation(ctx, in.UserID, in.Period, saved)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{}

	holidays, err := g.Holidays.Holidays(ctx, in.Period.Year)
	if err != nil {
		// Degrade: classification falls back to weekend/workday only.
		holidays = nil
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("could not load national holidays for %d; generating without them", in.Period.Year))
	}

	cursor := ""
	if in.Mode == ModeContinuous {
		cursor, _ = rotation.CursorFor(in.Period.Month)
	}

	ordered, err := Order(in.People, in.Mode, cursor)
	if err != nil {
		return nil, err
	}

	calendar := Build(in.Period.Year, in.Period.Month, ordered, holidays)

	if in.Mode == ModeContinuous {
		// A month with zero workdays records no cursor; the next month
		// resumes from the last month that assigned anyone.
		if last, ok := LastAssigned(calendar); ok {
			rotation.Set(in.Period.Month, last)
		}
	}

	rec := ScheduleRecord{Calendar: calendar, People: ordered, Rotation: rotation}
	if err := g.Store.SaveSchedule(ctx, in.UserID, in.Period, rec); err != nil {
		// Cursor and calendar are saved as one unit; on failure neither
		// is visible and the operation is safe to retry.
		return nil, fmt.Errorf("save schedule %s: %w", in.Period, err)
	}

	result.Calendar = calendar
	result.Rotation = rotation
	return result, nil
}

// loadRotation seeds the rotation state for a (re)build. The rotation map
// travels with the most recently persisted period, so the scan walks back
// month by month until a saved row is found: a skipped month has no row of
// its own but must not break the chain. A stale save of the target period
// serves as last fallback so regeneration does not lose older cursors.
func (g *Generator) loadRotation(ctx context.Context, userID string, p Period, saved *ScheduleRecord) (RotationState, error) {
	prev := p
	for i := 0; i < 12; i++ {
		prev = prev.Prev()
		rec, err := g.Store.LoadSchedule(ctx, userID, prev)
		if err != nil {
			return nil, fmt.Errorf("load schedule %s: %w", prev, err)
		}
		if rec != nil {
			return rec.Rotation.Clone(), nil
		}
	}
	if saved != nil {
		return saved.Rotation.Clone(), nil
	}
	return RotationState{}, nil
}

// checkWindow enforces the generation window: not in the past, at most two
// months ahead.
func (g *Generator) checkWindow(p Period) error {
	current := CurrentPeriod(g.now())
	if p.Index() < current.Index() {
		return ErrPeriodInPast
	}
	if p.Index()-current.Index() > 2 {
		return ErrPeriodTooFar
	}
	return nil
}

// EditInput describes a single-day manual correction.
type EditInput struct {
	UserID    string
	Period    Period
	Day       int
	Morning   string
	Afternoon string
}

// EditDay writes a single-day correction through to the saved schedule,
// bypassing the reuse/regenerate decision. When the edited day carries the
// month's final assignment, the rotation entry for that month is refreshed
// in the same save, so the next month's generation never reads a cursor
// that contradicts the calendar.
func (g *Generator) EditDay(ctx context.Context, in EditInput) (*ScheduleRecord, error) {
	if in.Morning == "" || in.Afternoon == "" {
		// A workday is never left half-assigned.
		return nil, fmt.Errorf("%w: both morning and afternoon must be assigned", ErrDayNotEditable)
	}
	current := CurrentPeriod(g.now())
	if in.Period.Index() < current.Index() {
		return nil, ErrPeriodInPast
	}

	rec, err := g.Store.LoadSchedule(ctx, in.UserID, in.Period)
	if err != nil {
		return nil, fmt.Errorf("load schedule %s: %w", in.Period, err)
	}
	if rec == nil {
		return nil, ErrScheduleNotFound
	}
	if in.Day < 1 || in.Day > len(rec.Calendar) {
		return nil, fmt.Errorf("%w: day %d out of range", ErrDayNotEditable, in.Day)
	}

	day := &rec.Calendar[in.Day-1]
	if !day.IsWorkday() {
		return nil, fmt.Errorf("%w: day %d is a weekend or holiday", ErrDayNotEditable, in.Day)
	}
	day.MorningPerson = in.Morning
	day.AfternoonPerson = in.Afternoon

	// Refresh the resume cursor only when continuous mode recorded one
	// for this month; a shuffled month keeps no cursor to correct.
	if _, tracked := rec.Rotation[int(in.Period.Month)]; tracked {
		if lastDay, ok := lastAssignmentDay(rec.Calendar); ok && lastDay == in.Day {
			rec.Rotation.Set(in.Period.Month, day.AfternoonPerson)
		}
	}

	if err := g.Store.SaveSchedule(ctx, in.UserID, in.Period, *rec); err != nil {
		return nil, fmt.Errorf("save schedule %s: %w", in.Period, err)
	}
	return rec, nil
}
