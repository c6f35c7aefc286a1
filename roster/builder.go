/*
builder.go - Day-by-day calendar construction

PURPOSE:
  Walks every day of the target month, classifies it (holiday / weekend /
  workday), and fills workdays with the next two names from the ordered
  assignment sequence.

ROUND-ROBIN CURSOR:
  A single slot counter spans the whole month. Workdays separated by
  weekends or holidays continue the same rotation without skipping or
  repeating; the counter wraps modulo the sequence length. Morning takes
  the first consumed name, afternoon the second.

OUTPUT GUARANTEE:
  Exactly DaysInMonth entries, ordered by day ascending. Weekend and
  holiday days carry no assignments; every workday carries both. Build is
  a pure function over its inputs.
*/
package roster

import "time"

// Build generates the calendar for one month from an ordered assignment
// sequence and the year's holiday set.
func Build(year int, month time.Month, ordered []string, holidays []Holiday) []CalendarDay {
	byDate := make(map[string]string, len(holidays))
	for _, h := range holidays {
		byDate[h.Date] = h.Name
	}

	days := DaysInMonth(year, month)
	calendar := make([]CalendarDay, 0, days)

	slot := 0
	for day := 1; day <= days; day++ {
		holidayName, isHoliday := byDate[DayKey(day, month, year)]
		entry := CalendarDay{
			Day:         day,
			IsWeekend:   IsWeekendDay(year, month, day),
			IsHoliday:   isHoliday,
			HolidayName: holidayName,
		}

		if entry.IsWorkday() && len(ordered) > 0 {
			entry.MorningPerson = ordered[slot%len(ordered)]
			slot++
			entry.AfternoonPerson = ordered[slot%len(ordered)]
			slot++
		}

		calendar = append(calendar, entry)
	}

	return calendar
}
