// Package ledger records message send attempts in a SQLite database so
// the CLI sends each submission at most once.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Attempt outcomes.
const (
	StatusSent     = "sent"     // Accepted by the API
	StatusFailed   = "failed"   // Transport or API error
	StatusRejected = "rejected" // Incomplete data, never sent
)

// Entry is one recorded send attempt.
type Entry struct {
	ID           string
	SubmissionID int64
	Profile      string
	Status       string
	HTTPStatus   int
	Recipient    string
	Error        string
	CreatedAt    time.Time
}

// DB wraps a SQLite database connection.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates a ledger database at the given path.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			submission_id INTEGER NOT NULL,
			profile TEXT NOT NULL,
			status TEXT NOT NULL,
			http_status INTEGER NOT NULL DEFAULT 0,
			recipient TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_attempts_submission ON attempts(submission_id, status);
	`
	_, err := db.Exec(schema)
	return err
}

// Record stores an attempt, assigning its ID and timestamp.
func (d *DB) Record(ctx context.Context, e Entry) (Entry, error) {
	switch e.Status {
	case StatusSent, StatusFailed, StatusRejected:
	default:
		return Entry{}, fmt.Errorf("recording attempt: unknown status %q", e.Status)
	}

	e.ID = uuid.NewString()
	e.CreatedAt = d.now().UTC()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO attempts (id, submission_id, profile, status, http_status, recipient, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.SubmissionID, e.Profile, e.Status, e.HTTPStatus, e.Recipient, e.Error, e.CreatedAt.UnixNano())
	if err != nil {
		return Entry{}, fmt.Errorf("recording attempt: %w", err)
	}
	return e, nil
}

// Sent reports whether a submission has a successful attempt.
func (d *DB) Sent(ctx context.Context, submissionID int64) (bool, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attempts WHERE submission_id = ? AND status = ?`,
		submissionID, StatusSent,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying attempts: %w", err)
	}
	return n > 0, nil
}

// List returns attempts newest first. A zero submissionID lists every
// submission; a limit of zero or less lists everything.
func (d *DB) List(ctx context.Context, submissionID int64, limit int) ([]Entry, error) {
	query := `SELECT id, submission_id, profile, status, http_status, recipient, error, created_at FROM attempts`
	var args []any
	if submissionID != 0 {
		query += ` WHERE submission_id = ?`
		args = append(args, submissionID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.SubmissionID, &e.Profile, &e.Status, &e.HTTPStatus, &e.Recipient, &e.Error, &created); err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
