/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements roster.Gateway and roster.PeopleStore plus the account table
  the API authenticates against. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  users:      Accounts (unique name, bcrypt password hash)
  people:     Roster members, owned by an account, unique name per account
              (case-insensitive)
  schedules:  One row per (user, year, month): the calendar JSON, the
              roster snapshot it was built from, and the rotation-cursor
              map

ATOMICITY:
  A schedule save is a single-row upsert carrying schedule_data,
  people_used and last_person_index together, so the rotation cursor is
  only ever visible alongside the calendar it belongs to.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/escala.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - roster/store.go: Interface definitions
  - roster/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/escala/roster-engine/roster"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Accounts
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Roster members, owned by an account
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_people_user ON people(user_id);

	-- Name uniqueness is case-insensitive within one account
	CREATE UNIQUE INDEX IF NOT EXISTS idx_people_user_name
		ON people(user_id, lower(name));

	-- One schedule per (user, year, month):
	--   schedule_data:     JSON array of CalendarDay
	--   people_used:       JSON array of names the build consumed
	--   last_person_index: JSON map month -> last assigned name
	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		schedule_data TEXT NOT NULL,
		people_used TEXT NOT NULL,
		last_person_index TEXT,
		updated_at TEXT NOT NULL,
		UNIQUE(user_id, year, month)
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_user ON schedules(user_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

// User is an account record. PasswordHash is a bcrypt hash, never the
// plain password.
type User struct {
	ID           string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// ErrDuplicateUser is returned when registering an existing account name.
var ErrDuplicateUser = fmt.Errorf("user already exists")

// CreateUser inserts an account. The caller provides the bcrypt hash.
func (s *Store) CreateUser(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByName returns an account by its unique name, or nil when absent.
func (s *Store) GetUserByName(ctx context.Context, name string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, password_hash, created_at FROM users WHERE name = ?`, name)

	var u User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// =============================================================================
// PEOPLE - roster.PeopleStore
// =============================================================================

// ListPeople returns the account's roster ordered by name.
func (s *Store) ListPeople(ctx context.Context, userID string) ([]roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM people WHERE user_id = ? ORDER BY name COLLATE NOCASE`, userID)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []roster.Person
	for rows.Next() {
		var p roster.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// AddPerson inserts a roster member, enforcing case-insensitive name
// uniqueness within the account.
func (s *Store) AddPerson(ctx context.Context, userID, name string) (roster.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := roster.Person{ID: uuid.NewString(), Name: name}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO people (id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)`,
		p.ID, userID, p.Name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueConstraintError(err) {
			return roster.Person{}, roster.ErrDuplicatePerson
		}
		return roster.Person{}, fmt.Errorf("add person: %w", err)
	}
	return p, nil
}

// RemovePerson deletes a roster member owned by the account.
func (s *Store) RemovePerson(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM people WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("remove person: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return roster.ErrPersonNotFound
	}
	return nil
}

// =============================================================================
// SCHEDULES - roster.Gateway
// =============================================================================

// LoadSchedule returns the saved record for the period, or nil when none
// exists.
func (s *Store) LoadSchedule(ctx context.Context, userID string, p roster.Period) (*roster.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT schedule_data, people_used, last_person_index FROM schedules
		WHERE user_id = ? AND year = ? AND month = ?`,
		userID, p.Year, int(p.Month))

	var scheduleJSON, peopleJSON string
	var rotationJSON sql.NullString
	if err := row.Scan(&scheduleJSON, &peopleJSON, &rotationJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	var rec roster.ScheduleRecord
	if err := json.Unmarshal([]byte(scheduleJSON), &rec.Calendar); err != nil {
		return nil, fmt.Errorf("decode schedule_data: %w", err)
	}
	if err := json.Unmarshal([]byte(peopleJSON), &rec.People); err != nil {
		return nil, fmt.Errorf("decode people_used: %w", err)
	}
	if rotationJSON.Valid && rotationJSON.String != "" {
		if err := json.Unmarshal([]byte(rotationJSON.String), &rec.Rotation); err != nil {
			return nil, fmt.Errorf("decode last_person_index: %w", err)
		}
	}
	return &rec, nil
}

// SaveSchedule upserts the record for the period. Calendar, roster
// snapshot and rotation state land in one row, in one statement.
func (s *Store) SaveSchedule(ctx context.Context, userID string, p roster.Period, rec roster.ScheduleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheduleJSON, err := json.Marshal(rec.Calendar)
	if err != nil {
		return fmt.Errorf("encode schedule_data: %w", err)
	}
	peopleJSON, err := json.Marshal(rec.People)
	if err != nil {
		return fmt.Errorf("encode people_used: %w", err)
	}
	var rotationJSON any
	if len(rec.Rotation) > 0 {
		encoded, err := json.Marshal(rec.Rotation)
		if err != nil {
			return fmt.Errorf("encode last_person_index: %w", err)
		}
		rotationJSON = string(encoded)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedules (id, user_id, year, month, schedule_data, people_used, last_person_index, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, year, month) DO UPDATE SET
			schedule_data = excluded.schedule_data,
			people_used = excluded.people_used,
			last_person_index = excluded.last_person_index,
			updated_at = excluded.updated_at`,
		uuid.NewString(), userID, p.Year, int(p.Month),
		string(scheduleJSON), string(peopleJSON), rotationJSON,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
