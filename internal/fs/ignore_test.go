package fs_test

import (
	"testing"

	"pit-go/internal/fs"
)

func TestIgnoreMatcher_Match(t *testing.T) {
	m := fs.NewIgnoreMatcher(".pit", nil)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"dependency directory", "node_modules/lodash/index.js", true},
		{"version control metadata", ".git/HEAD", true},
		{"nested version control metadata", "vendor/.git/config", true},
		{"build output", "dist/bundle.js", true},
		{"nested build output", "packages/web/build/main.css", true},
		{"lockfile", "package-lock.json", true},
		{"yarn lockfile", "yarn.lock", true},
		{"tool storage root", ".pit/snapshots/x.json", true},
		{"ordinary source file", "src/main.go", false},
		{"file name containing a denylist word", "src/router.go", false},
		{"directory name sharing a prefix", "distance/report.txt", false},
		{"readme", "README.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.path); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIgnoreMatcher_Extra(t *testing.T) {
	t.Parallel()
	m := fs.NewIgnoreMatcher(".pit", []string{"*.tmp", "  ", "coverage/"})

	if !m.Match("coverage/lcov.info") {
		t.Error("extra substring from config not applied")
	}
	if m.Match("src/ok.go") {
		t.Error("unrelated path matched")
	}
}
