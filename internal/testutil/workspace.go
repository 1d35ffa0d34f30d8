package testutil

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// MemWorkspace is an in-memory pit.Workspace for tests. It tracks every
// write and supports injecting read/write failures per path.
type MemWorkspace struct {
	mu        sync.Mutex
	root      string
	files     map[string][]byte
	ignored   map[string]bool
	readErrs  map[string]error
	writeErrs map[string]error
	writes    []string
	revision  string
}

// NewMemWorkspace creates an empty workspace rooted at /workspace.
func NewMemWorkspace() *MemWorkspace {
	return &MemWorkspace{
		root:      "/workspace",
		files:     make(map[string][]byte),
		ignored:   make(map[string]bool),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// AddFile installs a file at the given relative path.
func (w *MemWorkspace) AddFile(relPath string, content []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[relPath] = content
}

// Ignore marks a relative path as excluded from tracking.
func (w *MemWorkspace) Ignore(relPath string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignored[relPath] = true
}

// FailReads makes ReadFile fail for the given path.
func (w *MemWorkspace) FailReads(relPath string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.readErrs[relPath] = fmt.Errorf("injected read failure: %s", relPath)
}

// FailWrites makes WriteFile fail for the given path.
func (w *MemWorkspace) FailWrites(relPath string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeErrs[relPath] = fmt.Errorf("injected write failure: %s", relPath)
}

// SetRevision sets the revision reported by Revision.
func (w *MemWorkspace) SetRevision(rev string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.revision = rev
}

// Writes returns the relative paths written so far, in order.
func (w *MemWorkspace) Writes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.writes)
}

// Content returns the current content of relPath and whether it exists.
func (w *MemWorkspace) Content(relPath string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[relPath]
	return data, ok
}

func (w *MemWorkspace) Root() string { return w.root }

func (w *MemWorkspace) Rel(absPath string) (string, error) {
	rel, err := filepath.Rel(w.root, absPath)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path is outside the workspace: %s", absPath)
	}
	return filepath.ToSlash(rel), nil
}

func (w *MemWorkspace) Ignored(relPath string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ignored[relPath]
}

func (w *MemWorkspace) Tracked() ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var paths []string
	for p := range w.files {
		if !w.ignored[p] {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)
	return paths, nil
}

func (w *MemWorkspace) ReadFile(relPath string) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.readErrs[relPath]; err != nil {
		return nil, err
	}
	data, ok := w.files[relPath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", relPath)
	}
	return data, nil
}

func (w *MemWorkspace) WriteFile(relPath string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.writeErrs[relPath]; err != nil {
		return err
	}
	w.files[relPath] = content
	w.writes = append(w.writes, relPath)
	return nil
}

func (w *MemWorkspace) Revision() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.revision
}
