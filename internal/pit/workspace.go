package pit

// Workspace abstracts the live file tree the service captures from and
// restores into. Implementations apply the shared ignore rules so live
// capture and the full-workspace backup walk track the same file set.
type Workspace interface {
	// Root returns the absolute workspace root.
	Root() string

	// Rel converts an absolute path inside the workspace to its
	// slash-separated relative form. Paths outside the root are an error.
	Rel(absPath string) (string, error)

	// Ignored reports whether relPath is excluded from tracking.
	Ignored(relPath string) bool

	// Tracked returns the relative path of every trackable regular file
	// under the root, sorted for determinism.
	Tracked() ([]string, error)

	// ReadFile reads the content of the file at relPath.
	ReadFile(relPath string) ([]byte, error)

	// WriteFile overwrites relPath with content, creating any missing
	// parent directories.
	WriteFile(relPath string, content []byte) error

	// Revision returns the current source-control revision of the
	// workspace, or "" when there is none.
	Revision() string
}
