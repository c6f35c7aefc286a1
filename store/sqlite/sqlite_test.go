package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/escala/roster-engine/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store *Store, id, name string) {
	t.Helper()
	require.NoError(t, store.CreateUser(context.Background(), User{
		ID:           id,
		Name:         name,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		CreatedAt:    time.Now(),
	}))
}

func TestUsers_CreateAndLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1", "maria")

	u, err := store.GetUserByName(ctx, "maria")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	missing, err := store.GetUserByName(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUsers_DuplicateName(t *testing.T) {
	store := newTestStore(t)
	createTestUser(t, store, "u1", "maria")

	err := store.CreateUser(context.Background(), User{
		ID: "u2", Name: "maria", PasswordHash: "x", CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestPeople_AddListRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, store, "u1", "maria")

	ana, err := store.AddPerson(ctx, "u1", "Ana")
	require.NoError(t, err)
	assert.NotEmpty(t, ana.ID)

	_, err = store.AddPerson(ctx, "u1", "Bruno")
	require.NoError(t, err)

	people, err := store.ListPeople(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Ana", people[0].Name)
	assert.Equal(t, "Bruno", people[1].Name)

	require.NoError(t, store.RemovePerson(ctx, "u1", ana.ID))
	people, err = store.ListPeople(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, people, 1)
}

func TestPeople_DuplicateNameIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, store, "u1", "maria")

	_, err := store.AddPerson(ctx, "u1", "Ana")
	require.NoError(t, err)

	_, err = store.AddPerson(ctx, "u1", "ANA")
	assert.ErrorIs(t, err, roster.ErrDuplicatePerson)
}

func TestPeople_ScopedToAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, store, "u1", "maria")
	createTestUser(t, store, "u2", "joao")

	// Same name under two accounts is fine.
	_, err := store.AddPerson(ctx, "u1", "Ana")
	require.NoError(t, err)
	other, err := store.AddPerson(ctx, "u2", "Ana")
	require.NoError(t, err)

	// Removing across accounts is rejected.
	assert.ErrorIs(t, store.RemovePerson(ctx, "u1", other.ID), roster.ErrPersonNotFound)

	people, err := store.ListPeople(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, people, 1)
}

func TestSchedules_SaveLoadRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, store, "u1", "maria")

	period := roster.Period{Year: 2025, Month: time.July}
	rec := roster.ScheduleRecord{
		Calendar: []roster.CalendarDay{
			{Day: 1, MorningPerson: "Ana", AfternoonPerson: "Bruno"},
			{Day: 2, IsWeekend: true},
			{Day: 3, IsHoliday: true, HolidayName: "Feriado"},
		},
		People:   []string{"Ana", "Bruno"},
		Rotation: roster.RotationState{int(time.July): "Bruno"},
	}
	require.NoError(t, store.SaveSchedule(ctx, "u1", period, rec))

	loaded, err := store.LoadSchedule(ctx, "u1", period)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rec.Calendar, loaded.Calendar)
	assert.Equal(t, rec.People, loaded.People)
	assert.Equal(t, rec.Rotation, loaded.Rotation)
}

func TestSchedules_MissingPeriodIsNil(t *testing.T) {
	store := newTestStore(t)
	createTestUser(t, store, "u1", "maria")

	loaded, err := store.LoadSchedule(context.Background(), "u1", roster.Period{Year: 2025, Month: time.July})
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSchedules_UpsertOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, store, "u1", "maria")
	period := roster.Period{Year: 2025, Month: time.July}

	first := roster.ScheduleRecord{
		Calendar: []roster.CalendarDay{{Day: 1, MorningPerson: "Ana", AfternoonPerson: "Bruno"}},
		People:   []string{"Ana", "Bruno"},
	}
	require.NoError(t, store.SaveSchedule(ctx, "u1", period, first))

	second := roster.ScheduleRecord{
		Calendar: []roster.CalendarDay{{Day: 1, MorningPerson: "Carla", AfternoonPerson: "Ana"}},
		People:   []string{"Ana", "Bruno", "Carla"},
		Rotation: roster.RotationState{int(time.July): "Ana"},
	}
	require.NoError(t, store.SaveSchedule(ctx, "u1", period, second))

	loaded, err := store.LoadSchedule(ctx, "u1", period)
	require.NoError(t, err)
	assert.Equal(t, second.Calendar, loaded.Calendar)
	assert.Equal(t, second.People, loaded.People)
	assert.Equal(t, second.Rotation, loaded.Rotation)
}
