package pit

import "time"

// OperationKind classifies an entry in the operation log.
type OperationKind string

const (
	OpCapture OperationKind = "capture"
	OpBackup  OperationKind = "backup"
	OpRestore OperationKind = "restore"
	OpDelete  OperationKind = "delete"
)

// Operation is one entry in the operation log.
type Operation struct {
	ID         string
	Kind       OperationKind
	SnapshotID string
	Detail     string
	CreatedAt  time.Time
}

// OperationLog records every mutating operation for later inspection.
// Logging failures must never fail the operation being recorded; the
// service logs and continues.
type OperationLog interface {
	Record(op Operation) error
	// List returns the most recent operations, newest first.
	List(limit int) ([]Operation, error)
	Close() error
}

// NopOperationLog discards all entries. Use in tests.
type NopOperationLog struct{}

func (NopOperationLog) Record(Operation) error { return nil }

func (NopOperationLog) List(int) ([]Operation, error) { return nil, nil }

func (NopOperationLog) Close() error { return nil }
