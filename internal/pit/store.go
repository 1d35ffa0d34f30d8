package pit

// Store provides durable persistence of snapshot records keyed by ID.
type Store interface {
	// Init creates the storage root and snapshots directory, including any
	// missing ancestors. Idempotent; must be called before first use.
	Init() error

	// Put serializes the snapshot and writes its record keyed by ID.
	// Overwrites are not expected (IDs are unique) but are not rejected.
	Put(snap *Snapshot) error

	// Get reads and deserializes the record for id. Missing and unreadable
	// (corrupt) records are both reported as absent; the distinction is
	// logged for diagnostics, never returned.
	Get(id string) (*Snapshot, bool)

	// Delete removes the record for id, reporting whether a record was
	// removed. A missing record is a non-fatal false.
	Delete(id string) bool

	// ListIDs enumerates all stored snapshot IDs in no particular order,
	// with storage-specific suffixes stripped. An empty or unreadable store
	// yields an empty result, never an error.
	ListIDs() []string
}
