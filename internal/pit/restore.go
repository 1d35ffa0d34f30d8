package pit

import "fmt"

// Restore applies the target snapshot's file contents back onto the live
// workspace. A full-workspace backup snapshot is taken and persisted before
// any destructive write begins; it is the sole recovery mechanism. There is
// no rollback: a failure partway through the writes leaves the workspace
// partially restored, and the result carries the backup ID as the recovery
// path.
func (s *Service) Restore(targetID string) RestoreResult {
	target, ok := s.store.Get(targetID)
	if !ok {
		s.logger.Warn("restore target not found", "id", targetID)
		return RestoreResult{Error: fmt.Sprintf("snapshot not found: %s", targetID)}
	}

	backup, err := s.backupWorkspace()
	if err != nil {
		s.logger.Error("pre-restore backup failed", "target", targetID, "error", err)
		return RestoreResult{Error: fmt.Sprintf("creating pre-restore backup: %v", err)}
	}

	for _, f := range target.Files {
		if err := s.workspace.WriteFile(f.Path, []byte(f.Content)); err != nil {
			s.logger.Error("restore aborted", "target", targetID, "path", f.Path, "backup", backup.ID, "error", err)
			return RestoreResult{
				BackupID: backup.ID,
				Error:    fmt.Sprintf("writing %s: %v", f.Path, err),
			}
		}
	}

	s.recordOperation(OpRestore, targetID, fmt.Sprintf("backup=%s files=%d", backup.ID, len(target.Files)))
	s.logger.Info("snapshot restored", "id", targetID, "backup", backup.ID, "files", len(target.Files))
	return RestoreResult{Success: true, BackupID: backup.ID}
}

// backupWorkspace captures every currently tracked workspace file into a
// backup-marked snapshot and persists it. Any read or persist failure aborts
// the backup; a partial backup must never be offered as a recovery point.
func (s *Service) backupWorkspace() (*Snapshot, error) {
	rels, err := s.workspace.Tracked()
	if err != nil {
		return nil, fmt.Errorf("walking workspace: %w", err)
	}

	snap := &Snapshot{
		ID:        s.idgen.NewBackupID(),
		Timestamp: s.clock.Now(),
		Trigger:   TriggerManual,
		Revision:  s.workspace.Revision(),
	}
	for _, rel := range rels {
		content, err := s.workspace.ReadFile(rel)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		snap.Files = append(snap.Files, FileCapture{
			Path:    rel,
			Content: string(content),
			Size:    int64(len(content)),
		})
	}

	if err := s.store.Put(snap); err != nil {
		return nil, fmt.Errorf("persisting backup snapshot: %w", err)
	}

	s.recordOperation(OpBackup, snap.ID, fmt.Sprintf("files=%d", len(snap.Files)))
	s.logger.Info("backup snapshot created", "id", snap.ID, "files", len(snap.Files))
	return snap, nil
}
