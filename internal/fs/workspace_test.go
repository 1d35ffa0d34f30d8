package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"pit-go/internal/fs"
)

func newWorkspace(t *testing.T) (*fs.OSWorkspace, string) {
	t.Helper()
	root := t.TempDir()
	ws, err := fs.NewOSWorkspace(root, fs.NewIgnoreMatcher(".pit", nil))
	if err != nil {
		t.Fatalf("NewOSWorkspace: %v", err)
	}
	return ws, root
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	dest := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

func TestOSWorkspace_Tracked(t *testing.T) {
	t.Parallel()
	ws, root := newWorkspace(t)

	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "src/util.go", "package util\n")
	writeFile(t, root, "node_modules/pkg/index.js", "ignored")
	writeFile(t, root, ".git/HEAD", "ref: refs/heads/main\n")
	writeFile(t, root, ".pit/snapshots/a.json", "{}")
	writeFile(t, root, "docs/readme.md", "# hi")

	got, err := ws.Tracked()
	if err != nil {
		t.Fatalf("Tracked() error: %v", err)
	}
	want := []string{"docs/readme.md", "main.go", "src/util.go"}
	if !slices.Equal(got, want) {
		t.Errorf("Tracked() = %v, want %v", got, want)
	}
}

func TestOSWorkspace_Tracked_EmptyWorkspace(t *testing.T) {
	t.Parallel()
	ws, _ := newWorkspace(t)

	got, err := ws.Tracked()
	if err != nil {
		t.Fatalf("Tracked() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Tracked() = %v, want empty", got)
	}
}

func TestOSWorkspace_Rel(t *testing.T) {
	t.Parallel()
	ws, root := newWorkspace(t)

	rel, err := ws.Rel(filepath.Join(root, "src", "main.go"))
	if err != nil {
		t.Fatalf("Rel() error: %v", err)
	}
	if rel != "src/main.go" {
		t.Errorf("Rel() = %q, want %q", rel, "src/main.go")
	}

	if _, err := ws.Rel(filepath.Join(root, "..", "elsewhere.txt")); err == nil {
		t.Error("expected error for path outside the workspace")
	}
}

func TestOSWorkspace_ReadWriteFile(t *testing.T) {
	t.Parallel()
	ws, _ := newWorkspace(t)

	if err := ws.WriteFile("deep/nested/file.txt", []byte("content")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := ws.ReadFile("deep/nested/file.txt")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("ReadFile() = %q, want %q", data, "content")
	}

	if _, err := ws.ReadFile("missing.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func commit(t *testing.T, root, rel, content string) (*git.Repository, plumbing.Hash) {
	t.Helper()
	repo, err := git.PlainOpen(root)
	if err != nil {
		repo, err = git.PlainInit(root, false)
		if err != nil {
			t.Fatalf("PlainInit: %v", err)
		}
	}
	writeFile(t, root, rel, content)

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := wt.Add(rel); err != nil {
		t.Fatalf("Add(%s): %v", rel, err)
	}
	hash, err := wt.Commit("snapshot fixture", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return repo, hash
}

func TestOSWorkspace_Revision(t *testing.T) {
	t.Parallel()

	t.Run("no git checkout", func(t *testing.T) {
		ws, _ := newWorkspace(t)
		if rev := ws.Revision(); rev != "" {
			t.Errorf("Revision() = %q, want empty", rev)
		}
	})

	t.Run("repository with no commits", func(t *testing.T) {
		ws, root := newWorkspace(t)
		if _, err := git.PlainInit(root, false); err != nil {
			t.Fatalf("PlainInit: %v", err)
		}
		if rev := ws.Revision(); rev != "" {
			t.Errorf("Revision() = %q, want empty", rev)
		}
	})

	t.Run("current branch head", func(t *testing.T) {
		ws, root := newWorkspace(t)
		_, hash := commit(t, root, "a.txt", "v1")
		if rev := ws.Revision(); rev != hash.String() {
			t.Errorf("Revision() = %q, want %q", rev, hash.String())
		}
	})

	t.Run("detached head", func(t *testing.T) {
		ws, root := newWorkspace(t)
		repo, first := commit(t, root, "a.txt", "v1")
		commit(t, root, "a.txt", "v2")

		wt, err := repo.Worktree()
		if err != nil {
			t.Fatalf("Worktree: %v", err)
		}
		if err := wt.Checkout(&git.CheckoutOptions{Hash: first}); err != nil {
			t.Fatalf("Checkout: %v", err)
		}
		if rev := ws.Revision(); rev != first.String() {
			t.Errorf("Revision() = %q, want %q", rev, first.String())
		}
	})
}
