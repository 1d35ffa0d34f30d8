package fs

import (
	"path/filepath"
	"slices"
	"strings"
)

// defaultIgnoreSubstrings excludes paths that should never be tracked:
// dependency directories, version-control metadata, build output and
// lockfiles. The tool's own storage root is appended at construction.
var defaultIgnoreSubstrings = []string{
	"node_modules",
	".git",
	".svn",
	".hg",
	"dist/",
	"build/",
	"out/",
	"target/",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
}

// IgnoreMatcher checks paths against a substring denylist. The same matcher
// is shared by live file-change capture and the full-workspace backup walk,
// so both track the same file set.
type IgnoreMatcher struct {
	substrings []string
}

// NewIgnoreMatcher builds a matcher from the built-in denylist, the storage
// root name, and any extra substrings from config. Blank entries are skipped.
func NewIgnoreMatcher(storageRoot string, extra []string) *IgnoreMatcher {
	subs := slices.Clone(defaultIgnoreSubstrings)
	if storageRoot != "" {
		subs = append(subs, storageRoot)
	}
	for _, e := range extra {
		e = strings.TrimSpace(e)
		if e != "" {
			subs = append(subs, e)
		}
	}
	return &IgnoreMatcher{substrings: subs}
}

// Match reports whether relPath is excluded from tracking.
func (m *IgnoreMatcher) Match(relPath string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, sub := range m.substrings {
		if strings.Contains(normalized, sub) {
			return true
		}
	}
	return false
}
