// Package app is the application layer between the CLI and the snapshot
// service. It constructs all dependencies from config, exposes high-level
// operations that accept raw string paths, and manages resource lifecycles
// on Close.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pit-go/internal/config"
	"pit-go/internal/diff"
	"pit-go/internal/fs"
	"pit-go/internal/oplog"
	"pit-go/internal/pit"
	"pit-go/internal/store"
	"pit-go/internal/watcher"
)

// App wires the store, workspace, operation log and service together.
type App struct {
	cfg     *config.Config
	ignore  *fs.IgnoreMatcher
	ws      *fs.OSWorkspace
	store   pit.Store
	catalog *pit.Catalog
	log     pit.OperationLog
	service *pit.Service
	logger  pit.Logger
	logFile *os.File
}

// NewApp creates a fully wired App from the given config. operation
// identifies the CLI command being run (e.g. "Capture", "Restore").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	if cfg.Workspace == "" {
		return nil, fmt.Errorf("no workspace configured")
	}

	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	ignore := fs.NewIgnoreMatcher(cfg.StorageRoot(), cfg.Filesystem.Ignore)
	ws, err := fs.NewOSWorkspace(cfg.Workspace, ignore)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening workspace: %w", err)
	}

	st, err := store.NewStoreFromConfig(cfg.Storage, ws.Root(), logger)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating snapshot store: %w", err)
	}
	if err := st.Init(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("initializing snapshot store: %w", err)
	}

	log, err := newOperationLog(cfg, ws.Root())
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening operation log: %w", err)
	}

	clock := pit.RealClock{}
	svc := pit.NewService(st, ws, log, logger, clock, pit.NewWallClockIDGenerator(clock))

	return &App{
		cfg:     cfg,
		ignore:  ignore,
		ws:      ws,
		store:   st,
		catalog: pit.NewCatalog(st),
		log:     log,
		service: svc,
		logger:  logger,
		logFile: logFile,
	}, nil
}

// newOperationLog creates the operation log from config.
func newOperationLog(cfg *config.Config, workspaceRoot string) (pit.OperationLog, error) {
	switch cfg.Database.Type {
	case "", "sqlite":
		dataDir := cfg.Database.DataDir
		if dataDir == "" {
			dataDir = filepath.Join(workspaceRoot, cfg.StorageRoot())
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return oplog.Open(filepath.Join(dataDir, "oplog.db"))
	case "memory":
		return oplog.Open(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Database.Type)
	}
}

// Capture resolves the given raw paths against the workspace and captures
// them into a new manual snapshot. Returns nil when nothing was captured.
func (a *App) Capture(rawPaths []string) (*pit.Snapshot, error) {
	var rels []string
	for _, raw := range rawPaths {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		rel, err := a.ws.Rel(abs)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return a.service.CreateSnapshot(pit.TriggerManual, rels)
}

// ListIDs returns all snapshot IDs, newest first.
func (a *App) ListIDs() []string { return a.catalog.ListIDs() }

// ListAll returns all snapshots, newest first, skipping unreadable records.
func (a *App) ListAll() []*pit.Snapshot { return a.catalog.ListAll() }

// Count returns the number of stored snapshots.
func (a *App) Count() int { return a.catalog.Count() }

// Get returns the snapshot for id, or absent.
func (a *App) Get(id string) (*pit.Snapshot, bool) { return a.store.Get(id) }

// Delete removes the snapshot for id, reporting whether a record was removed.
func (a *App) Delete(id string) bool { return a.service.DeleteSnapshot(id) }

// Diff computes the per-file differences between two stored snapshots.
func (a *App) Diff(oldID, newID string) ([]diff.FileDiff, error) {
	oldSnap, ok := a.store.Get(oldID)
	if !ok {
		return nil, fmt.Errorf("snapshot not found: %s", oldID)
	}
	newSnap, ok := a.store.Get(newID)
	if !ok {
		return nil, fmt.Errorf("snapshot not found: %s", newID)
	}
	return diff.Snapshots(oldSnap, newSnap), nil
}

// Restore applies the target snapshot onto the workspace, preceded by a
// full-workspace backup snapshot.
func (a *App) Restore(targetID string) pit.RestoreResult {
	return a.service.Restore(targetID)
}

// History returns the most recent operations, newest first.
func (a *App) History(limit int) ([]pit.Operation, error) {
	return a.log.List(limit)
}

// Watch monitors the workspace and captures a snapshot for every created
// or changed file until ctx is done.
func (a *App) Watch(ctx context.Context) error {
	w, err := watcher.New(time.Duration(a.cfg.Debounce())*time.Millisecond, a.ignore, a.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(a.ws.Root()); err != nil {
		return fmt.Errorf("watching workspace: %w", err)
	}

	go w.Run(ctx)
	a.logger.Info("watching workspace", "root", a.ws.Root())
	a.service.Run(ctx, w.Events())
	return nil
}

// Close closes the operation log and the log file.
func (a *App) Close() error {
	var firstErr error
	if err := a.log.Close(); err != nil {
		firstErr = fmt.Errorf("closing operation log: %w", err)
	}
	if err := a.logFile.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing log file: %w", err)
	}
	return firstErr
}
