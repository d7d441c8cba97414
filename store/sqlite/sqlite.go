/*
Package sqlite provides the SQLite-backed persistence collaborator.

PURPOSE:
  Stores user accounts, auth sessions, employee reference data, shift
  differentials, and each user's persisted rotation selection. The engine
  itself does no I/O: the session store is populated from here at session
  start and flushed back on update.

KEY TABLES:
  users:                Account records (email + bcrypt hash)
  auth_sessions:        Opaque session tokens with expiry
  employees:            Employee reference data (name, department, base rate)
  shift_differentials:  Per-shift extra hourly rates
  schedule_selections:  One rotation selection per user, replaced wholesale

SELECTION STORAGE:
  A selection row is a whole-value write: SaveSelection replaces every
  column. Enum columns store the factory wire strings, so a row loads
  straight through factory.ParseSelection and an invalid row surfaces as
  ErrInvalidSelection rather than half-parsed state.

WAL MODE:
  Opened with WAL for better concurrency: multiple readers don't block and
  crash recovery is cheap.

USAGE:
  store, err := sqlite.New("./daysoff.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - factory/selection.go: Wire format used by the selection columns
  - account/service.go: Uses the user/session tables
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/rotation-engine/factory"
	"github.com/warp/rotation-engine/payroll"
	"github.com/warp/rotation-engine/rotation"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store implements persistence for accounts, sessions, and selections.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
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

func (s *Store) migrate() error {
	schema := `
	-- Accounts
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Opaque session tokens
	CREATE TABLE IF NOT EXISTS auth_sessions (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		expires_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_auth_sessions_user
		ON auth_sessions(user_id);

	-- Employee reference data
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		department TEXT NOT NULL,
		base_rate TEXT NOT NULL
	);

	-- Shift differential table
	CREATE TABLE IF NOT EXISTS shift_differentials (
		shift_type TEXT PRIMARY KEY,
		rate_per_hour TEXT NOT NULL
	);

	-- One rotation selection per user, replaced wholesale on update
	CREATE TABLE IF NOT EXISTS schedule_selections (
		user_id TEXT PRIMARY KEY,
		schedule_type TEXT NOT NULL,
		shift_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		platoon_days_off TEXT NOT NULL,
		rotating_off_start_day TEXT NOT NULL,
		preferred_view TEXT NOT NULL DEFAULT 'week',
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

// User is an account record.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SaveUser inserts a new user. Returns ErrDuplicateEmail on a taken address.
func (s *Store) SaveUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the user for an email, or ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetUser returns the user for an id, or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return u, nil
}

// =============================================================================
// AUTH SESSIONS
// =============================================================================

// CreateAuthSession stores a session token for a user.
func (s *Store) CreateAuthSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auth_sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetAuthSession resolves a token to a user id. Expired or unknown tokens
// return ErrNotFound.
func (s *Store) GetAuthSession(ctx context.Context, token string) (string, error) {
	var userID, expiresAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM auth_sessions WHERE token = ?`, token).
		Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || time.Now().After(expiry) {
		return "", ErrNotFound
	}
	return userID, nil
}

// DeleteAuthSession removes a session token (logout).
func (s *Store) DeleteAuthSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces an employee record.
func (s *Store) SaveEmployee(ctx context.Context, e payroll.Employee) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO employees (id, name, department, base_rate) VALUES (?, ?, ?, ?)`,
		e.ID, e.Name, e.Department, e.BaseRate.String())
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// GetEmployee returns one employee, or ErrNotFound.
func (s *Store) GetEmployee(ctx context.Context, id string) (payroll.Employee, error) {
	var e payroll.Employee
	var rate string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, department, base_rate FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Department, &rate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payroll.Employee{}, ErrNotFound
		}
		return payroll.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}

	e.BaseRate, err = decimal.NewFromString(rate)
	if err != nil {
		return payroll.Employee{}, fmt.Errorf("invalid base rate for employee %s: %w", e.ID, err)
	}
	return e, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, department, base_rate FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		var e payroll.Employee
		var rate string
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if e.BaseRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("invalid base rate for employee %s: %w", e.ID, err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// =============================================================================
// SHIFT DIFFERENTIALS
// =============================================================================

// SaveDifferential inserts or replaces one differential entry.
func (s *Store) SaveDifferential(ctx context.Context, d payroll.ShiftDifferential) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO shift_differentials (shift_type, rate_per_hour) VALUES (?, ?)`,
		string(d.ShiftType), d.RatePerHour.String())
	if err != nil {
		return fmt.Errorf("failed to save differential: %w", err)
	}
	return nil
}

// ListDifferentials returns all differential entries.
func (s *Store) ListDifferentials(ctx context.Context) ([]payroll.ShiftDifferential, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT shift_type, rate_per_hour FROM shift_differentials ORDER BY shift_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to list differentials: %w", err)
	}
	defer rows.Close()

	var entries []payroll.ShiftDifferential
	for rows.Next() {
		var shift, rate string
		if err := rows.Scan(&shift, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan differential: %w", err)
		}
		r, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("invalid differential rate for %s: %w", shift, err)
		}
		entries = append(entries, payroll.ShiftDifferential{
			ShiftType:   rotation.ShiftType(shift),
			RatePerHour: r,
		})
	}
	return entries, rows.Err()
}

// =============================================================================
// SCHEDULE SELECTIONS
// =============================================================================

// SelectionRecord is a persisted selection plus the user's view preference.
type SelectionRecord struct {
	Selection     rotation.Selection
	PreferredView string
	UpdatedAt     time.Time
}

// SaveSelection replaces the stored selection for a user wholesale.
func (s *Store) SaveSelection(ctx context.Context, userID string, rec SelectionRecord) error {
	wire := factory.FormatSelection(rec.Selection)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schedule_selections
			(user_id, schedule_type, shift_type, start_date, platoon_days_off, rotating_off_start_day, preferred_view, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, wire.ScheduleType, wire.ShiftType, wire.StartDate,
		wire.PlatoonDaysOff, wire.RotatingOffStartDay, rec.PreferredView,
		rec.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// LoadSelection returns a user's stored selection, or ErrNotFound.
func (s *Store) LoadSelection(ctx context.Context, userID string) (SelectionRecord, error) {
	var wire factory.SelectionJSON
	var preferredView, updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT schedule_type, shift_type, start_date, platoon_days_off, rotating_off_start_day, preferred_view, updated_at
		 FROM schedule_selections WHERE user_id = ?`, userID).
		Scan(&wire.ScheduleType, &wire.ShiftType, &wire.StartDate,
			&wire.PlatoonDaysOff, &wire.RotatingOffStartDay, &preferredView, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SelectionRecord{}, ErrNotFound
		}
		return SelectionRecord{}, fmt.Errorf("failed to load selection: %w", err)
	}

	sel, err := factory.ParseSelection(wire)
	if err != nil {
		return SelectionRecord{}, fmt.Errorf("stored selection for user %s: %w", userID, err)
	}

	rec := SelectionRecord{Selection: sel, PreferredView: preferredView}
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rec, nil
}

// =============================================================================
// SEED DATA
// =============================================================================

// Seed loads the default reference data into an empty database: one
// employee and the swing/mid shift differentials.
func (s *Store) Seed(ctx context.Context) error {
	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(employees) > 0 {
		return nil
	}

	emp := payroll.Employee{
		ID:         "emp-0001",
		Name:       "Alex Morgan",
		Department: "Operations",
		BaseRate:   decimal.RequireFromString("26.50"),
	}
	if err := s.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	differentials := []payroll.ShiftDifferential{
		{ShiftType: rotation.ShiftSwing, RatePerHour: decimal.RequireFromString("1.50")},
		{ShiftType: rotation.ShiftMid, RatePerHour: decimal.RequireFromString("2.00")},
	}
	for _, d := range differentials {
		if err := s.SaveDifferential(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// DefaultSelection is the selection used before a user has saved one:
// five-by-eight on day shift, anchored to the first of the current month.
func DefaultSelection() rotation.Selection {
	today := rotation.Today()
	return rotation.Selection{
		ScheduleType:        rotation.ScheduleFiveByEight,
		ShiftType:           rotation.ShiftDay,
		StartDate:           rotation.NewDate(today.Year(), today.Month(), 1),
		PlatoonDaysOff:      rotation.PlatoonOffMonTue,
		RotatingOffStartDay: rotation.Monday,
	}
}
