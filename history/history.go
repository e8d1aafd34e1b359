// Package history records every scrape run in SQLite so operators can see
// what was searched, how many attempts it took and how it ended.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Status is the final state of a run.
type Status string

const (
	StatusRunning      Status = "running"
	StatusSucceeded    Status = "succeeded"
	StatusAborted      Status = "aborted"
	StatusInvalid      Status = "invalid"
	StatusExportFailed Status = "export_failed"
)

// Run is one top-level scrape run.
type Run struct {
	RunID            uuid.UUID  `json:"run_id"`
	SearchPhrase     string     `json:"search_phrase"`
	NewsCategory     string     `json:"news_category"`
	NumMonths        int        `json:"num_months"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
	Status           Status     `json:"status"`
	Attempts         int        `json:"attempts"`
	ArticlesFound    int        `json:"articles_found"`
	ArticlesExported int        `json:"articles_exported"`
	StopReason       string     `json:"stop_reason,omitempty"`
	LastError        *string    `json:"last_error,omitempty"`
}

// Outcome holds the fields filled in when a run finishes.
type Outcome struct {
	Status           Status
	Attempts         int
	ArticlesFound    int
	ArticlesExported int
	StopReason       string
	Err              error
}

// Store manages run records using SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the run history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the runs table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		search_phrase TEXT NOT NULL,
		news_category TEXT NOT NULL,
		num_months INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		status TEXT NOT NULL,
		attempts INTEGER DEFAULT 0,
		articles_found INTEGER DEFAULT 0,
		articles_exported INTEGER DEFAULT 0,
		stop_reason TEXT,
		last_error TEXT
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Start records a new run in the running state.
func (s *Store) Start(phrase, category string, numMonths int) (*Run, error) {
	run := &Run{
		RunID:        uuid.New(),
		SearchPhrase: phrase,
		NewsCategory: category,
		NumMonths:    numMonths,
		StartedAt:    s.now(),
		Status:       StatusRunning,
	}

	query := `
		INSERT INTO runs (
			run_id, search_phrase, news_category, num_months, started_at, status
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.RunID.String(),
		run.SearchPhrase,
		run.NewsCategory,
		run.NumMonths,
		formatTime(&run.StartedAt),
		string(run.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	return run, nil
}

// Finish stores the outcome of a run.
func (s *Store) Finish(runID uuid.UUID, outcome Outcome) error {
	finishedAt := s.now()

	var lastError *string
	if outcome.Err != nil {
		msg := outcome.Err.Error()
		lastError = &msg
	}

	query := `
		UPDATE runs SET
			finished_at = ?, status = ?, attempts = ?, articles_found = ?,
			articles_exported = ?, stop_reason = ?, last_error = ?
		WHERE run_id = ?
	`

	result, err := s.db.Exec(query,
		formatTime(&finishedAt),
		string(outcome.Status),
		outcome.Attempts,
		outcome.ArticlesFound,
		outcome.ArticlesExported,
		outcome.StopReason,
		lastError,
		runID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return ErrRunNotFound
	}

	return nil
}

const selectRuns = `
	SELECT run_id, search_phrase, news_category, num_months, started_at,
	       finished_at, status, attempts, articles_found, articles_exported,
	       stop_reason, last_error
	FROM runs
`

// GetRun retrieves a run by ID.
func (s *Store) GetRun(runID uuid.UUID) (*Run, error) {
	row := s.db.QueryRow(selectRuns+" WHERE run_id = ?", runID.String())

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	return run, nil
}

// List returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) List(limit int) ([]Run, error) {
	query := selectRuns + " ORDER BY started_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var runIDStr, startedAtStr, status string
	var finishedAtStr, stopReason, lastError sql.NullString
	run := &Run{}

	err := row.Scan(
		&runIDStr, &run.SearchPhrase, &run.NewsCategory, &run.NumMonths,
		&startedAtStr, &finishedAtStr, &status, &run.Attempts,
		&run.ArticlesFound, &run.ArticlesExported, &stopReason, &lastError,
	)
	if err != nil {
		return nil, err
	}

	run.RunID, err = uuid.Parse(runIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid run_id: %w", err)
	}

	run.StartedAt = parseTime(startedAtStr)
	run.Status = Status(status)
	run.StopReason = stopReason.String

	if finishedAtStr.Valid {
		t := parseTime(finishedAtStr.String)
		run.FinishedAt = &t
	}
	if lastError.Valid {
		run.LastError = &lastError.String
	}

	return run, nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	// Strip monotonic clock for consistent storage and comparisons
	return t.Truncate(0).Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t.Truncate(0)
}
