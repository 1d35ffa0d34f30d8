package testutil

import (
	"fmt"
	"sync"

	"pit-go/internal/pit"
)

// StubIDGenerator returns sequential, lexicographically sortable IDs:
// "id-00000001", "id-00000002", etc. Backup IDs carry the real prefix.
type StubIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("id-%08d", g.counter)
}

func (g *StubIDGenerator) NewBackupID() string {
	return pit.BackupIDPrefix + g.New()
}
