package fs

import (
	git "github.com/go-git/go-git/v5"
)

// Revision resolves the workspace's current git revision. Returns "" when
// the workspace is not a git checkout or HEAD cannot be resolved, such as
// a freshly initialized repository with no commits.
func (w *OSWorkspace) Revision() string {
	repo, err := git.PlainOpen(w.root)
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
