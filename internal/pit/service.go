package pit

import (
	"context"
	"fmt"
)

// Service is the orchestration layer that coordinates the store, the live
// workspace and the operation log to perform capture, restore and delete
// operations. It processes one logical operation at a time; callers that
// need concurrency own the serialization.
type Service struct {
	store     Store
	workspace Workspace
	oplog     OperationLog
	logger    Logger
	clock     Clock
	idgen     IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(store Store, workspace Workspace, oplog OperationLog, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		store:     store,
		workspace: workspace,
		oplog:     oplog,
		logger:    logger,
		clock:     clock,
		idgen:     idgen,
	}
}

// CreateSnapshot captures the given workspace-relative paths into a new
// snapshot and persists it synchronously. Ignored and unreadable paths are
// logged and skipped; when nothing remains to capture the result is
// (nil, nil). A persistence failure propagates to the caller.
func (s *Service) CreateSnapshot(trigger Trigger, relPaths []string) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        s.idgen.New(),
		Timestamp: s.clock.Now(),
		Trigger:   trigger,
		Revision:  s.workspace.Revision(),
	}

	for _, rel := range relPaths {
		if s.workspace.Ignored(rel) {
			s.logger.Debug("path ignored", "path", rel)
			continue
		}
		content, err := s.workspace.ReadFile(rel)
		if err != nil {
			s.logger.Warn("capture skipped unreadable file", "path", rel, "error", err)
			continue
		}
		snap.Files = append(snap.Files, FileCapture{
			Path:    rel,
			Content: string(content),
			Size:    int64(len(content)),
		})
	}

	if len(snap.Files) == 0 {
		return nil, nil
	}

	if err := s.store.Put(snap); err != nil {
		return nil, fmt.Errorf("persisting snapshot: %w", err)
	}

	s.recordOperation(OpCapture, snap.ID, fmt.Sprintf("trigger=%s files=%d", trigger, len(snap.Files)))
	s.logger.Info("snapshot created", "id", snap.ID, "trigger", trigger, "files", len(snap.Files))
	return snap, nil
}

// DeleteSnapshot removes the persisted record for id, reporting whether a
// record was removed.
func (s *Service) DeleteSnapshot(id string) bool {
	if !s.store.Delete(id) {
		return false
	}
	s.recordOperation(OpDelete, id, "")
	s.logger.Info("snapshot deleted", "id", id)
	return true
}

// HandleEvent consumes one file-change event. Created and changed events
// trigger a capture; deletions are observed but not captured. Failures are
// logged at this boundary and never crash the host process.
func (s *Service) HandleEvent(ev Event) {
	rel, err := s.workspace.Rel(ev.Path)
	if err != nil {
		s.logger.Debug("event outside workspace", "path", ev.Path, "error", err)
		return
	}
	if s.workspace.Ignored(rel) {
		return
	}

	var trigger Trigger
	switch ev.Kind {
	case EventCreated:
		trigger = TriggerFileCreate
	case EventChanged:
		trigger = TriggerFileSave
	case EventDeleted:
		s.logger.Debug("file deletion observed", "path", rel)
		return
	default:
		return
	}

	if _, err := s.CreateSnapshot(trigger, []string{rel}); err != nil {
		s.logger.Error("capture failed", "path", rel, "error", err)
	}
}

// Run consumes file-change events until the channel closes or ctx is done.
func (s *Service) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.HandleEvent(ev)
		}
	}
}

// recordOperation appends to the operation log. A logging failure never
// fails the operation it describes.
func (s *Service) recordOperation(kind OperationKind, snapshotID, detail string) {
	op := Operation{
		Kind:       kind,
		SnapshotID: snapshotID,
		Detail:     detail,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.oplog.Record(op); err != nil {
		s.logger.Warn("recording operation", "kind", kind, "error", err)
	}
}
