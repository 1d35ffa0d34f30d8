package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pit-go/internal/pit"
)

// recordSuffix is the storage-specific suffix appended to snapshot IDs to
// form record file names. ListIDs strips it.
const recordSuffix = ".json"

// FilesystemStore persists one JSON record per snapshot:
//
//	<root>/          (storage root inside the workspace, e.g. .pit)
//	  snapshots/
//	    <id>.json
//
// Construction is side-effect-free; Init performs the directory bootstrap.
type FilesystemStore struct {
	root         string
	snapshotsDir string
	logger       pit.Logger
}

// NewFilesystemStore creates a store rooted at the given path.
func NewFilesystemStore(root string, logger pit.Logger) *FilesystemStore {
	return &FilesystemStore{
		root:         root,
		snapshotsDir: filepath.Join(root, "snapshots"),
		logger:       logger,
	}
}

// Init creates the storage root and snapshots directory. Idempotent.
func (s *FilesystemStore) Init() error {
	if err := os.MkdirAll(s.snapshotsDir, 0755); err != nil {
		return fmt.Errorf("creating snapshots directory: %w", err)
	}
	return nil
}

func (s *FilesystemStore) Put(snap *pit.Snapshot) error {
	data, err := snap.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.recordPath(snap.ID), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// Get reports both missing and corrupt records as absent. The distinction
// only matters for diagnostics, so it goes to the log.
func (s *FilesystemStore) Get(id string) (*pit.Snapshot, bool) {
	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("snapshot record missing", "id", id)
		} else {
			s.logger.Warn("snapshot record unreadable", "id", id, "error", err)
		}
		return nil, false
	}

	snap, err := pit.UnmarshalSnapshot(data)
	if err != nil {
		s.logger.Warn("snapshot record corrupt", "id", id, "error", err)
		return nil, false
	}
	return snap, true
}

func (s *FilesystemStore) Delete(id string) bool {
	if err := os.Remove(s.recordPath(id)); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("deleting snapshot record", "id", id, "error", err)
		}
		return false
	}
	return true
}

func (s *FilesystemStore) ListIDs() []string {
	entries, err := os.ReadDir(s.snapshotsDir)
	if err != nil {
		s.logger.Debug("snapshots directory unreadable", "error", err)
		return nil
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, recordSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, recordSuffix))
	}
	return ids
}

func (s *FilesystemStore) recordPath(id string) string {
	return filepath.Join(s.snapshotsDir, id+recordSuffix)
}
