// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists converter invocations in a SQLite database so
// past dispatch runs can be inspected after the fact.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cifar-sched/pkg/types"
)

// DefaultLimit is the number of rows List returns when limit is not positive.
const DefaultLimit = 20

// timeLayout is fixed width so that text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store records invocations in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS invocations (
			id TEXT PRIMARY KEY,
			schedule TEXT NOT NULL,
			idx INTEGER NOT NULL,
			in_version INTEGER NOT NULL,
			out_version INTEGER NOT NULL,
			args TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			error TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_started ON invocations(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts inv. It satisfies dispatch.Recorder.
func (s *Store) Record(ctx context.Context, inv types.Invocation) error {
	args, err := json.Marshal(inv.Args)
	if err != nil {
		return fmt.Errorf("encoding args: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO invocations
			(id, schedule, idx, in_version, out_version, args, exit_code, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Schedule, inv.Index, inv.InVersion, inv.OutVersion, string(args),
		inv.ExitCode, inv.Error,
		inv.StartedAt.UTC().Format(timeLayout),
		inv.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting invocation %s: %w", inv.ID, err)
	}
	return nil
}

// List returns up to limit invocations, most recent first.
func (s *Store) List(ctx context.Context, limit int) ([]types.Invocation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, schedule, idx, in_version, out_version, args, exit_code, error, started_at, finished_at
		FROM invocations
		ORDER BY started_at DESC, idx DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer rows.Close()

	var out []types.Invocation
	for rows.Next() {
		var (
			inv               types.Invocation
			args              string
			errText           sql.NullString
			started, finished string
		)
		if err := rows.Scan(&inv.ID, &inv.Schedule, &inv.Index, &inv.InVersion, &inv.OutVersion,
			&args, &inv.ExitCode, &errText, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning invocation: %w", err)
		}
		if err := json.Unmarshal([]byte(args), &inv.Args); err != nil {
			return nil, fmt.Errorf("decoding args for %s: %w", inv.ID, err)
		}
		inv.Error = errText.String
		if inv.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing started_at for %s: %w", inv.ID, err)
		}
		if inv.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at for %s: %w", inv.ID, err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
