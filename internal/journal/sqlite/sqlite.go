// Package sqlite provides a SQLite implementation of the journal interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/habit/habit/internal/journal"
	"github.com/habit/habit/pkg/types"
	_ "modernc.org/sqlite"
)

const invocationColumns = `id, cmd, flags, version, status, created_at`

var _ journal.Journal = (*SQLiteJournal)(nil)

// SQLiteJournal implements the Journal interface using SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

// New creates a new SQLite journal instance.
func New(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &SQLiteJournal{
		db:   db,
		path: path,
	}, nil
}

// Path returns the database file path.
func (s *SQLiteJournal) Path() string {
	return s.path
}

// Init initializes the database schema.
func (s *SQLiteJournal) Init(ctx context.Context) error {
	version, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("failed to run migration %d: %w", i+1, err)
		}
	}
	return nil
}

// schemaVersion returns the applied migration count, 0 for a fresh database.
func (s *SQLiteJournal) schemaVersion(ctx context.Context) (int, error) {
	var tables int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'
	`).Scan(&tables)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if tables == 0 {
		return 0, nil
	}

	var version sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// Close closes the database connection.
func (s *SQLiteJournal) Close() error {
	return s.db.Close()
}

// Record stores a single invocation.
func (s *SQLiteJournal) Record(ctx context.Context, inv *types.Invocation) error {
	if inv == nil || inv.ID == "" {
		return errors.New("invocation must have an id")
	}

	var flags []byte
	if len(inv.Flags) > 0 {
		var err error
		flags, err = json.Marshal(inv.Flags)
		if err != nil {
			return fmt.Errorf("failed to marshal flags: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invocations (`+invocationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.Cmd, nullBytes(flags), inv.Version, inv.Status, inv.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// List returns invocations newest first. limit <= 0 returns all of them.
func (s *SQLiteJournal) List(ctx context.Context, limit int) ([]*types.Invocation, error) {
	query := `SELECT ` + invocationColumns + ` FROM invocations ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invocations: %w", err)
	}
	defer rows.Close()

	var out []*types.Invocation
	for rows.Next() {
		inv, err := scanInvocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list invocations: %w", err)
	}
	return out, nil
}

// Prune keeps the newest keep invocations and deletes the rest.
func (s *SQLiteJournal) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM invocations
		WHERE seq NOT IN (SELECT seq FROM invocations ORDER BY seq DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune invocations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune invocations: %w", err)
	}
	return n, nil
}

func scanInvocation(rows *sql.Rows) (*types.Invocation, error) {
	var (
		inv       types.Invocation
		flags     sql.NullString
		createdAt string
	)
	if err := rows.Scan(&inv.ID, &inv.Cmd, &flags, &inv.Version, &inv.Status, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan invocation: %w", err)
	}
	if flags.Valid && flags.String != "" {
		if err := json.Unmarshal([]byte(flags.String), &inv.Flags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal flags: %w", err)
		}
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	inv.CreatedAt = t
	return &inv, nil
}

func nullBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
