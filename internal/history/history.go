// Package history records the packages uvpkg has scaffolded in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one scaffolded package
type Entry struct {
	CreatedAt      time.Time
	PackageName    string
	ProgrammingDir string
	ID             int64
}

// Manager handles history persistence
type Manager struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dbPath
func Open(ctx context.Context, dbPath string) (*Manager, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := runSchemaMigration(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run schema migration: %w", err)
	}

	return &Manager{db: db}, nil
}

// runSchemaMigration ensures the packages table exists
func runSchemaMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS packages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			package_name TEXT NOT NULL,
			programming_dir TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_packages_created ON packages(created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create packages table: %w", err)
	}
	return nil
}

// Close closes the history database
func (m *Manager) Close() error {
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

// Record stores an entry; a zero CreatedAt is replaced by the current time
func (m *Manager) Record(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC().Truncate(time.Second)

	res, err := m.db.ExecContext(ctx,
		"INSERT INTO packages (package_name, programming_dir, created_at) VALUES (?, ?, ?)",
		entry.PackageName, entry.ProgrammingDir, entry.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to record package: %w", err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return &entry, nil
}

// List returns entries newest first; limit <= 0 returns all of them
func (m *Manager) List(ctx context.Context, limit int) ([]Entry, error) {
	query := "SELECT id, package_name, programming_dir, created_at FROM packages ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			created int64
		)
		if err := rows.Scan(&entry.ID, &entry.PackageName, &entry.ProgrammingDir, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entry.CreatedAt = time.Unix(created, 0).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}
