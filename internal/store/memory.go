package store

import (
	"pit-go/internal/pit"
)

// MemoryStore is an in-memory implementation of the Store interface,
// useful for tests and ephemeral runs. Records pass through the same
// serialized form as the filesystem store so round-trip behavior matches.
type MemoryStore struct {
	records map[string][]byte
	logger  pit.Logger
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore(logger pit.Logger) *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
		logger:  logger,
	}
}

// Init is a no-op; the map is allocated at construction.
func (m *MemoryStore) Init() error { return nil }

func (m *MemoryStore) Put(snap *pit.Snapshot) error {
	data, err := snap.Marshal()
	if err != nil {
		return err
	}
	m.records[snap.ID] = data
	return nil
}

func (m *MemoryStore) Get(id string) (*pit.Snapshot, bool) {
	data, ok := m.records[id]
	if !ok {
		m.logger.Debug("snapshot record missing", "id", id)
		return nil, false
	}
	snap, err := pit.UnmarshalSnapshot(data)
	if err != nil {
		m.logger.Warn("snapshot record corrupt", "id", id, "error", err)
		return nil, false
	}
	return snap, true
}

func (m *MemoryStore) Delete(id string) bool {
	if _, ok := m.records[id]; !ok {
		return false
	}
	delete(m.records, id)
	return true
}

func (m *MemoryStore) ListIDs() []string {
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	return ids
}

// SetRecord installs a raw record, bypassing serialization. Tests use it to
// simulate corrupt records.
func (m *MemoryStore) SetRecord(id string, data []byte) {
	m.records[id] = data
}
