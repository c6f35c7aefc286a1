package roster_test

import (
	"testing"
	"time"

	"github.com/escala/roster-engine/roster"
)

func TestLastAssigned_PrefersAfternoonOfLastWorkday(t *testing.T) {
	calendar := []roster.CalendarDay{
		{Day: 1, MorningPerson: "Ana", AfternoonPerson: "Bruno"},
		{Day: 2, MorningPerson: "Carla", AfternoonPerson: "Ana"},
		{Day: 3, IsWeekend: true},
	}

	got, ok := roster.LastAssigned(calendar)
	if !ok || got != "Ana" {
		t.Fatalf("expected Ana, got %q (ok=%v)", got, ok)
	}
}

func TestLastAssigned_FallsBackToMorning(t *testing.T) {
	// A manually edited day may carry only a morning assignment in saved
	// historic data; the scan still resolves a cursor from it.
	calendar := []roster.CalendarDay{
		{Day: 1, MorningPerson: "Ana", AfternoonPerson: "Bruno"},
		{Day: 2, MorningPerson: "Carla"},
	}

	got, ok := roster.LastAssigned(calendar)
	if !ok || got != "Carla" {
		t.Fatalf("expected Carla, got %q (ok=%v)", got, ok)
	}
}

func TestLastAssigned_EmptyMonth(t *testing.T) {
	calendar := []roster.CalendarDay{
		{Day: 1, IsWeekend: true},
		{Day: 2, IsHoliday: true, HolidayName: "Recesso"},
	}

	if got, ok := roster.LastAssigned(calendar); ok {
		t.Fatalf("expected no last assignment, got %q", got)
	}
	if got, ok := roster.LastAssigned(nil); ok {
		t.Fatalf("expected no last assignment on nil calendar, got %q", got)
	}
}

func TestRotationState_CursorFor(t *testing.T) {
	rs := roster.RotationState{}
	rs.Set(time.July, "Ana")

	// August resumes from July's entry.
	if cursor, ok := rs.CursorFor(time.August); !ok || cursor != "Ana" {
		t.Fatalf("expected Ana for August, got %q (ok=%v)", cursor, ok)
	}

	// September walks back across an August that assigned nobody.
	if cursor, ok := rs.CursorFor(time.September); !ok || cursor != "Ana" {
		t.Fatalf("expected Ana for September, got %q (ok=%v)", cursor, ok)
	}

	// January wraps into December of the conceptual previous year.
	rs.Set(time.December, "Bruno")
	if cursor, ok := rs.CursorFor(time.January); !ok || cursor != "Bruno" {
		t.Fatalf("expected Bruno for January, got %q (ok=%v)", cursor, ok)
	}

	// No entries at all: no cursor.
	empty := roster.RotationState{}
	if cursor, ok := empty.CursorFor(time.March); ok {
		t.Fatalf("expected no cursor, got %q", cursor)
	}
}
