/*
continuity.go - Resume-cursor maintenance for the continuous mode

PURPOSE:
  After a continuous-mode build, the name of the month's last assigned
  person becomes the resume point for the following month. This file finds
  that person, both after builds and after manual edits of the day that
  carries the month's final assignment.
*/
package roster

// LastAssigned scans the calendar from the highest day down and returns
// the last assigned name: the afternoon person of the first day (scanning
// backward) with any assignment, falling back to that day's morning person.
// ok is false when the month assigned nobody (every day weekend/holiday).
func LastAssigned(calendar []CalendarDay) (string, bool) {
	for i := len(calendar) - 1; i >= 0; i-- {
		if calendar[i].AfternoonPerson != "" {
			return calendar[i].AfternoonPerson, true
		}
		if calendar[i].MorningPerson != "" {
			return calendar[i].MorningPerson, true
		}
	}
	return "", false
}

// lastAssignmentDay returns the day number carrying the month's final
// assignment. Edits to this day must refresh the rotation cursor.
func lastAssignmentDay(calendar []CalendarDay) (int, bool) {
	for i := len(calendar) - 1; i >= 0; i-- {
		if calendar[i].AfternoonPerson != "" || calendar[i].MorningPerson != "" {
			return calendar[i].Day, true
		}
	}
	return 0, false
}
