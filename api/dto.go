/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal domain model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
*/
package api

import "github.com/escala/roster-engine/roster"

// =============================================================================
// AUTH
// =============================================================================

// CredentialsRequest carries register/login credentials.
type CredentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UserDTO represents an account in API responses.
type UserDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// =============================================================================
// PEOPLE
// =============================================================================

// AddPersonRequest is the request to add a roster member.
type AddPersonRequest struct {
	Name string `json:"name"`
}

// =============================================================================
// SCHEDULES
// =============================================================================

// GenerateScheduleRequest asks for a schedule for one period.
type GenerateScheduleRequest struct {
	Year  int    `json:"year"`
	Month int    `json:"month"` // 1-12
	Mode  string `json:"mode"`  // "shuffle" or "continuous"
}

// ScheduleDTO is a saved or freshly generated schedule.
type ScheduleDTO struct {
	Year            int                  `json:"year"`
	Month           int                  `json:"month"`
	Calendar        []roster.CalendarDay `json:"schedule_data"`
	LastPersonIndex roster.RotationState `json:"last_person_index,omitempty"`
	Reused          bool                 `json:"reused,omitempty"`
	Warnings        []string             `json:"warnings,omitempty"`
}

// EditDayRequest is a single-day manual correction.
type EditDayRequest struct {
	MorningPerson   string `json:"morningPerson"`
	AfternoonPerson string `json:"afternoonPerson"`
}

// HolidayDTO mirrors roster.Holiday for the lookup endpoint.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}
