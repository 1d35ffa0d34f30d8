package pit

import (
	"encoding/json"
	"fmt"
	"time"
)

// Trigger identifies why a snapshot was created.
type Trigger string

const (
	TriggerFileSave   Trigger = "file_save"
	TriggerFileCreate Trigger = "file_create"
	TriggerFileDelete Trigger = "file_delete"
	TriggerManual     Trigger = "manual"
	TriggerAuto       Trigger = "auto"
)

// FileCapture is the whole content of one file at capture time.
// It is owned by the snapshot that contains it and never mutated.
type FileCapture struct {
	Path    string `json:"path"` // workspace-relative, slash-separated
	Content string `json:"content"`
	Size    int64  `json:"size"`
}

// Snapshot is an immutable capture of one or more files at a point in time.
// The ID is unique within a workspace and sorts lexicographically by
// creation time, so listings never need to parse timestamps.
type Snapshot struct {
	ID        string
	Timestamp time.Time
	Trigger   Trigger
	Files     []FileCapture
	Revision  string // source-control revision at capture time, "" if none
}

// timestampLayout is the fixed ISO-8601 format used in persisted records.
const timestampLayout = time.RFC3339Nano

// record is the persisted form of a Snapshot. It differs from the in-memory
// form only in the timestamp representation.
type record struct {
	ID        string        `json:"id"`
	Timestamp string        `json:"timestamp"`
	Trigger   Trigger       `json:"trigger"`
	Files     []FileCapture `json:"files"`
	Revision  string        `json:"revision,omitempty"`
}

// Marshal serializes the snapshot to its persisted record form.
func (s *Snapshot) Marshal() ([]byte, error) {
	rec := record{
		ID:        s.ID,
		Timestamp: s.Timestamp.UTC().Format(timestampLayout),
		Trigger:   s.Trigger,
		Files:     s.Files,
		Revision:  s.Revision,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot %s: %w", s.ID, err)
	}
	return data, nil
}

// UnmarshalSnapshot reconstructs a Snapshot from its persisted record form.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding snapshot record: %w", err)
	}
	ts, err := time.Parse(timestampLayout, rec.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot timestamp %q: %w", rec.Timestamp, err)
	}
	return &Snapshot{
		ID:        rec.ID,
		Timestamp: ts,
		Trigger:   rec.Trigger,
		Files:     rec.Files,
		Revision:  rec.Revision,
	}, nil
}

// RestoreResult reports the outcome of a restore operation.
// It is transient and never persisted.
type RestoreResult struct {
	Success  bool
	BackupID string // ID of the pre-restore backup snapshot, "" if none was taken
	Error    string
}
