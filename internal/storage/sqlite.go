package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/qitrack/internal/models"

	_ "modernc.org/sqlite"
)

// DBFile is the SQLite database file name inside the data directory
const DBFile = "qitrack.db"

// SQLiteStore keeps both tables in one SQLite database.
// The connection is opened by Ensure and held until Close.
type SQLiteStore struct {
	dir  string
	path string
	db   *sql.DB
}

// NewSQLiteStore returns a store whose database lives in dir
func NewSQLiteStore(dir string) *SQLiteStore {
	return &SQLiteStore{dir: dir, path: filepath.Join(dir, DBFile)}
}

// Location returns the database file path
func (s *SQLiteStore) Location() string {
	return s.path
}

// Ensure opens the database, creates missing tables and seeds a fresh projects table
func (s *SQLiteStore) Ensure(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", ErrStorageUnavailable, s.dir, err)
	}

	if s.db == nil {
		db, err := openDB(ctx, s.path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		s.db = db
	}

	if err := runMigrations(ctx, s.db); err != nil {
		return fmt.Errorf("%w: failed to run migrations: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set busy timeout to 5 seconds (SQLite will retry for this duration)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		slog.Error("Failed to set busy timeout", "error", err)
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

// runMigrations creates the schema; the example project is only inserted when
// the projects table itself is created here
func runMigrations(ctx context.Context, db *sql.DB) error {
	var existing int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'projects'",
	).Scan(&existing)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS projects (
			id INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			smart_aim TEXT NOT NULL DEFAULT '',
			problem_statement TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			metrics TEXT NOT NULL DEFAULT '',
			advisor TEXT NOT NULL DEFAULT '',
			service TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return err
	}

	// No foreign key: referential integrity is soft and enforced by the services
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pdsa (
			project_id INTEGER NOT NULL,
			cycle_name TEXT NOT NULL DEFAULT '',
			"plan" TEXT NOT NULL DEFAULT '',
			"do" TEXT NOT NULL DEFAULT '',
			study TEXT NOT NULL DEFAULT '',
			act TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return err
	}

	if existing > 0 {
		return nil
	}

	slog.Info("seeding example project", "table", TableProjects)
	return insertProjects(ctx, db, models.Projects{models.ExampleProject()})
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertProjects(ctx context.Context, db execer, projects models.Projects) error {
	for _, p := range projects {
		_, err := db.ExecContext(ctx, `
			INSERT INTO projects (id, title, smart_aim, problem_statement, status, metrics,
				advisor, service, start_date, end_date, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.SmartAim, p.ProblemStatement, p.Status.String(), p.Metrics,
			p.Advisor, p.Service, p.StartDate.String(), p.EndDate.String(), p.Tags,
		)
		if err != nil {
			return fmt.Errorf("insert project %d: %w", p.ID, err)
		}
	}
	return nil
}

func insertCycles(ctx context.Context, db execer, cycles models.Cycles) error {
	for _, c := range cycles {
		_, err := db.ExecContext(ctx, `
			INSERT INTO pdsa (project_id, cycle_name, "plan", "do", study, act, date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ProjectID, c.CycleName, c.Plan, c.Do, c.Study, c.Act, c.Date.String(),
		)
		if err != nil {
			return fmt.Errorf("insert pdsa cycle for project %d: %w", c.ProjectID, err)
		}
	}
	return nil
}

// Load reads both tables in insertion order
func (s *SQLiteStore) Load(ctx context.Context) (models.Projects, models.Cycles, error) {
	if s.db == nil {
		return nil, nil, fmt.Errorf("%w: database not open", ErrStorageUnavailable)
	}

	projects, err := s.loadProjects(ctx)
	if err != nil {
		return nil, nil, err
	}
	cycles, err := s.loadCycles(ctx)
	if err != nil {
		return nil, nil, err
	}
	return projects, cycles, nil
}

func (s *SQLiteStore) loadProjects(ctx context.Context) (models.Projects, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, smart_aim, problem_statement, status, metrics,
			advisor, service, start_date, end_date, tags
		FROM projects ORDER BY rowid`)
	if err != nil {
		return nil, &ParseError{Table: TableProjects, Err: err}
	}
	defer func() { _ = rows.Close() }()

	projects := models.Projects{}
	line := 0
	for rows.Next() {
		line++
		var p models.Project
		var status, start, end string
		if err := rows.Scan(&p.ID, &p.Title, &p.SmartAim, &p.ProblemStatement, &status,
			&p.Metrics, &p.Advisor, &p.Service, &start, &end, &p.Tags); err != nil {
			return nil, &ParseError{Table: TableProjects, Line: line, Err: err}
		}
		p.Status = models.Status(status)
		if p.StartDate, err = models.ParseDate(start); err != nil {
			return nil, &ParseError{Table: TableProjects, Line: line, Column: "start_date", Err: err}
		}
		if p.EndDate, err = models.ParseDate(end); err != nil {
			return nil, &ParseError{Table: TableProjects, Line: line, Column: "end_date", Err: err}
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &ParseError{Table: TableProjects, Err: err}
	}
	return projects, nil
}

func (s *SQLiteStore) loadCycles(ctx context.Context) (models.Cycles, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project_id, cycle_name, "plan", "do", study, act, date
		FROM pdsa ORDER BY rowid`)
	if err != nil {
		return nil, &ParseError{Table: TablePdsa, Err: err}
	}
	defer func() { _ = rows.Close() }()

	cycles := models.Cycles{}
	line := 0
	for rows.Next() {
		line++
		var c models.PdsaCycle
		var date string
		if err := rows.Scan(&c.ProjectID, &c.CycleName, &c.Plan, &c.Do, &c.Study, &c.Act, &date); err != nil {
			return nil, &ParseError{Table: TablePdsa, Line: line, Err: err}
		}
		if c.Date, err = models.ParseDate(date); err != nil {
			return nil, &ParseError{Table: TablePdsa, Line: line, Column: "date", Err: err}
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &ParseError{Table: TablePdsa, Err: err}
	}
	return cycles, nil
}

// Save replaces both tables inside one transaction
func (s *SQLiteStore) Save(ctx context.Context, projects models.Projects, cycles models.Cycles) error {
	if s.db == nil {
		return fmt.Errorf("%w: database not open", ErrStorageWrite)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrStorageWrite, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM pdsa"); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if err := insertProjects(ctx, tx, projects); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if err := insertCycles(ctx, tx, cycles); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrStorageWrite, err)
	}
	return nil
}

// Close releases the database connection
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

var _ Store = (*SQLiteStore)(nil)
