package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// OSWorkspace is the real-filesystem implementation of pit.Workspace.
type OSWorkspace struct {
	root   string
	ignore *IgnoreMatcher
}

// NewOSWorkspace creates a workspace rooted at the given directory.
func NewOSWorkspace(root string, ignore *IgnoreMatcher) (*OSWorkspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	return &OSWorkspace{root: abs, ignore: ignore}, nil
}

// Root returns the absolute workspace root.
func (w *OSWorkspace) Root() string { return w.root }

// Rel converts an absolute path inside the workspace to its relative form.
func (w *OSWorkspace) Rel(absPath string) (string, error) {
	rel, err := filepath.Rel(w.root, absPath)
	if err != nil {
		return "", fmt.Errorf("calculating relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path is outside the workspace: %s", absPath)
	}
	return filepath.ToSlash(rel), nil
}

// Ignored reports whether relPath is excluded from tracking.
func (w *OSWorkspace) Ignored(relPath string) bool {
	return w.ignore.Match(relPath)
}

// Tracked walks the workspace and returns the relative path of every
// regular file that is not ignored, sorted for determinism. Ignored
// directories are pruned rather than descended into.
func (w *OSWorkspace) Tracked() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(w.root, p)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && w.ignore.Match(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || w.ignore.Match(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking workspace: %w", err)
	}
	slices.Sort(paths)
	return paths, nil
}

// ReadFile reads the content of the file at relPath.
func (w *OSWorkspace) ReadFile(relPath string) ([]byte, error) {
	data, err := os.ReadFile(w.abs(relPath))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", relPath, err)
	}
	return data, nil
}

// WriteFile overwrites relPath with content, creating parent directories.
func (w *OSWorkspace) WriteFile(relPath string, content []byte) error {
	dest := w.abs(relPath)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(dest, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}
	return nil
}

func (w *OSWorkspace) abs(relPath string) string {
	return filepath.Join(w.root, filepath.FromSlash(relPath))
}
