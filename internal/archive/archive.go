// Package archive persists run history to SQLite. It is write-behind
// bookkeeping only: the resume cursor is always recomputed from chat
// history and never read from here.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ferrovax/vidrelay/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		total_processed INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS run_channels (
		run_id TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		name TEXT,
		processed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		PRIMARY KEY (run_id, channel_id)
	);
	CREATE TABLE IF NOT EXISTS replies (
		run_id TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		message_id TEXT NOT NULL,
		author TEXT,
		url TEXT NOT NULL,
		replied_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_replies_run ON replies(run_id);
`

// Store records run outcomes in a SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the archive database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create archive schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores a finished run and its per-channel outcomes.
func (s *Store) RecordRun(ctx context.Context, report *domain.RunReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, total_processed) VALUES (?, ?, ?, ?)`,
		report.ID, report.StartedAt, report.FinishedAt, report.TotalProcessed(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, ch := range report.Channels {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_channels (run_id, channel_id, name, processed, failed, skipped)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			report.ID, ch.ChannelID, ch.Name, ch.Processed, ch.Failed, ch.Skipped,
		)
		if err != nil {
			return fmt.Errorf("insert run channel: %w", err)
		}
	}

	return tx.Commit()
}

// RecordReply stores one successfully replied message.
func (s *Store) RecordReply(ctx context.Context, runID string, msg domain.Message, url string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO replies (run_id, channel_id, message_id, author, url, replied_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, msg.ChannelID, msg.ID, msg.AuthorTag, url, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	return nil
}

// RunRow is one archived run.
type RunRow struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	TotalProcessed int       `json:"total_processed"`
}

// LastRuns returns up to limit archived runs, most recent first.
func (s *Store) LastRuns(ctx context.Context, limit int) ([]RunRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, total_processed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.TotalProcessed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
