// Package store provides in-memory Gateway and PeopleStore implementations.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/escala/roster-engine/roster"
	"github.com/google/uuid"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	schedules map[key]roster.ScheduleRecord
	people    map[string][]roster.Person // userID -> roster

	// FailSaves makes SaveSchedule return this error, for exercising the
	// save-failure path in tests.
	FailSaves error
}

type key struct {
	UserID string
	Period roster.Period
}

func NewMemory() *Memory {
	return &Memory{
		schedules: make(map[key]roster.ScheduleRecord),
		people:    make(map[string][]roster.Person),
	}
}

// LoadSchedule returns a deep copy so callers cannot mutate stored state.
func (m *Memory) LoadSchedule(_ context.Context, userID string, p roster.Period) (*roster.ScheduleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.schedules[key{UserID: userID, Period: p}]
	if !ok {
		return nil, nil
	}
	out := copyRecord(rec)
	return &out, nil
}

// SaveSchedule upserts the record for the period.
func (m *Memory) SaveSchedule(_ context.Context, userID string, p roster.Period, rec roster.ScheduleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSaves != nil {
		return m.FailSaves
	}
	m.schedules[key{UserID: userID, Period: p}] = copyRecord(rec)
	return nil
}

func (m *Memory) ListPeople(_ context.Context, userID string) ([]roster.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]roster.Person, len(m.people[userID]))
	copy(out, m.people[userID])
	return out, nil
}

func (m *Memory) AddPerson(_ context.Context, userID, name string) (roster.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.people[userID] {
		if strings.EqualFold(p.Name, name) {
			return roster.Person{}, roster.ErrDuplicatePerson
		}
	}
	p := roster.Person{ID: uuid.NewString(), Name: name}
	m.people[userID] = append(m.people[userID], p)
	return p, nil
}

func (m *Memory) RemovePerson(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	people := m.people[userID]
	for i, p := range people {
		if p.ID == id {
			m.people[userID] = append(people[:i], people[i+1:]...)
			return nil
		}
	}
	return roster.ErrPersonNotFound
}

func copyRecord(rec roster.ScheduleRecord) roster.ScheduleRecord {
	out := roster.ScheduleRecord{
		Calendar: make([]roster.CalendarDay, len(rec.Calendar)),
		People:   make([]string, len(rec.People)),
		Rotation: rec.Rotation.Clone(),
	}
	copy(out.Calendar, rec.Calendar)
	copy(out.People, rec.People)
	return out
}
