// Package oplog records capture, backup, restore and delete operations in
// a SQLite database for later inspection.
package oplog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pit-go/internal/oplog/migrations"
	"pit-go/internal/pit"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteLog implements pit.OperationLog backed by SQLite.
type SQLiteLog struct {
	db *sql.DB
}

// Open opens (creating if needed) the operation log at path and applies
// any pending schema migrations. path may be ":memory:" for tests.
func Open(path string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening operation log: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating operation log: %w", err)
	}

	return &SQLiteLog{db: db}, nil
}

// Record inserts one entry. A missing ID is assigned here.
func (l *SQLiteLog) Record(op pit.Operation) error {
	id := op.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := op.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := l.db.Exec(
		`INSERT INTO operations (id, kind, snapshot_id, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(op.Kind), op.SnapshotID, op.Detail, createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording operation: %w", err)
	}
	return nil
}

// List returns the most recent operations, newest first.
func (l *SQLiteLog) List(limit int) ([]pit.Operation, error) {
	rows, err := l.db.Query(
		`SELECT id, kind, snapshot_id, detail, created_at
		 FROM operations
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []pit.Operation
	for rows.Next() {
		var op pit.Operation
		var kind string
		if err := rows.Scan(&op.ID, &kind, &op.SnapshotID, &op.Detail, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		op.Kind = pit.OperationKind(kind)
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operations: %w", err)
	}
	return ops, nil
}

// Close closes the underlying database connection.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
