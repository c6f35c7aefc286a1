/*
handlers.go - HTTP API handlers for the duty-roster system

PURPOSE:
  Exposes the roster engine via REST. Handles HTTP request/response, JSON
  serialization, and delegates to the domain logic in roster/.

ENDPOINTS:
  Auth:
    POST   /api/register                 Create account, returns token
    POST   /api/login                    Verify credentials, returns token

  People (authenticated):
    GET    /api/people                   List roster members
    POST   /api/people                   Add member (409 on duplicate name)
    DELETE /api/people/{id}              Remove member

  Schedules (authenticated):
    GET    /api/schedules?year=&month=   Saved schedule or null
    POST   /api/schedules/generate       Generate (or reuse) a period
    PUT    /api/schedules/{year}/{month}/days/{day}  Single-day edit

  Holidays (authenticated):
    GET    /api/holidays/{year}          National holidays for a year

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (duplicate person/user)
  - 502: Holiday source unavailable (direct lookup only)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - auth.go: Registration, login, token middleware
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/escala/roster-engine/roster"
	"github.com/escala/roster-engine/store/sqlite"
	"github.com/go-chi/chi/v5"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Generator *roster.Generator
	Holidays  roster.HolidaySource
	JWTSecret []byte
}

// NewHandler creates a handler wired to the given store and holiday source.
func NewHandler(store *sqlite.Store, holidays roster.HolidaySource, jwtSecret []byte) *Handler {
	return &Handler{
		Store:     store,
		Generator: roster.NewGenerator(store, holidays),
		Holidays:  holidays,
		JWTSecret: jwtSecret,
	}
}

// =============================================================================
// PEOPLE HANDLERS
// =============================================================================

// ListPeople returns the account's roster ordered by name.
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.Store.ListPeople(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list people", err)
		return
	}
	if people == nil {
		people = []roster.Person{}
	}
	writeJSON(w, http.StatusOK, people)
}

// AddPerson adds a roster member.
func (h *Handler) AddPerson(w http.ResponseWriter, r *http.Request) {
	var req AddPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	person, err := h.Store.AddPerson(r.Context(), userID(r), req.Name)
	if err != nil {
		if roster.IsConflict(err) {
			writeError(w, http.StatusConflict, "Person already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to add person", err)
		return
	}
	writeJSON(w, http.StatusCreated, person)
}

// RemovePerson deletes a roster member.
func (h *Handler) RemovePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.RemovePerson(r.Context(), userID(r), id); err != nil {
		if roster.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Person not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to remove person", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetSchedule returns the saved schedule for a period, or nulls when none
// was generated yet.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}

	rec, err := h.Store.LoadSchedule(r.Context(), userID(r), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"schedule_data":     nil,
			"last_person_index": nil,
		})
		return
	}

	writeJSON(w, http.StatusOK, ScheduleDTO{
		Year:            period.Year,
		Month:           int(period.Month),
		Calendar:        rec.Calendar,
		LastPersonIndex: rec.Rotation,
	})
}

// GenerateSchedule builds (or reuses) the schedule for one period.
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req GenerateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	period := roster.Period{Year: req.Year, Month: time.Month(req.Month)}
	if !period.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid year or month", nil)
		return
	}

	people, err := h.Store.ListPeople(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list people", err)
		return
	}
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}

	result, err := h.Generator.Generate(r.Context(), roster.GenerateInput{
		UserID: userID(r),
		Period: period,
		People: names,
		Mode:   roster.Mode(req.Mode),
	})
	if err != nil {
		if roster.IsClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error(), err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to generate schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, ScheduleDTO{
		Year:            period.Year,
		Month:           int(period.Month),
		Calendar:        result.Calendar,
		LastPersonIndex: result.Rotation,
		Reused:          result.Reused,
		Warnings:        result.Warnings,
	})
}

// EditDay applies a single-day manual correction to a saved schedule.
func (h *Handler) EditDay(w http.ResponseWriter, r *http.Request) {
	year, err1 := strconv.Atoi(chi.URLParam(r, "year"))
	month, err2 := strconv.Atoi(chi.URLParam(r, "month"))
	day, err3 := strconv.Atoi(chi.URLParam(r, "day"))
	if err1 != nil || err2 != nil || err3 != nil {
		writeError(w, http.StatusBadRequest, "Invalid year, month or day", nil)
		return
	}
	period := roster.Period{Year: year, Month: time.Month(month)}
	if !period.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid year or month", nil)
		return
	}

	var req EditDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.Generator.EditDay(r.Context(), roster.EditInput{
		UserID:    userID(r),
		Period:    period,
		Day:       day,
		Morning:   req.MorningPerson,
		Afternoon: req.AfternoonPerson,
	})
	if err != nil {
		switch {
		case roster.IsNotFound(err):
			writeError(w, http.StatusNotFound, "No schedule saved for this period", err)
		case roster.IsClientError(err):
			writeError(w, http.StatusBadRequest, err.Error(), err)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to edit day", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, ScheduleDTO{
		Year:            period.Year,
		Month:           int(period.Month),
		Calendar:        rec.Calendar,
		LastPersonIndex: rec.Rotation,
	})
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays proxies the national-holiday lookup for one year.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	holidays, err := h.Holidays.Holidays(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Holiday source unavailable", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{Date: hol.Date, Name: hol.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func periodFromQuery(w http.ResponseWriter, r *http.Request) (roster.Period, bool) {
	year, err1 := strconv.Atoi(r.URL.Query().Get("year"))
	month, err2 := strconv.Atoi(r.URL.Query().Get("month"))
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "Year and month are required", nil)
		return roster.Period{}, false
	}
	period := roster.Period{Year: year, Month: time.Month(month)}
	if !period.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid year or month", nil)
		return roster.Period{}, false
	}
	return period, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("API error (%d): %s: %v", status, message, err)
	}
	writeJSON(w, status, map[string]string{"error": message})
}
