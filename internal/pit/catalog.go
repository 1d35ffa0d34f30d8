package pit

import "slices"

// Catalog is the read side over a Store: ordering of identifiers and bulk
// materialization into full snapshots.
type Catalog struct {
	store Store
}

// NewCatalog creates a catalog over the given store.
func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// ListIDs returns all stored snapshot IDs sorted descending, newest first.
// Identifier generation guarantees lexicographic order tracks creation
// time, so no timestamp parsing is needed.
func (c *Catalog) ListIDs() []string {
	ids := c.store.ListIDs()
	slices.Sort(ids)
	slices.Reverse(ids)
	return ids
}

// ListAll resolves ListIDs through the store, skipping any identifier that
// resolves to absent. Partial corruption never fails the whole listing.
func (c *Catalog) ListAll() []*Snapshot {
	var snaps []*Snapshot
	for _, id := range c.ListIDs() {
		if snap, ok := c.store.Get(id); ok {
			snaps = append(snaps, snap)
		}
	}
	return snaps
}

// Count returns the number of stored snapshots.
func (c *Catalog) Count() int {
	return len(c.store.ListIDs())
}
