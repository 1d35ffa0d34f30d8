package pit

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// BackupIDPrefix marks identifiers of snapshots taken by the pre-restore
// backup path. The prefix makes backups distinguishable from ordinary
// snapshots without a separate index.
const BackupIDPrefix = "backup-"

// idTimeLayout is the sortable wall-clock component of a snapshot ID:
// calendar date and 24h time, each without separators.
const idTimeLayout = "20060102150405"

// IDGenerator produces snapshot identifiers.
type IDGenerator interface {
	// New returns an identifier that sorts lexicographically by creation
	// time at second granularity.
	New() string
	// NewBackupID returns a backup-marked identifier.
	NewBackupID() string
}

// WallClockIDGenerator produces identifiers of the form
// yyyymmddhhmmss-xxxxxxxx: the wall-clock second plus an 8-character
// lowercase hex suffix. The suffix makes same-second identifiers distinct
// with overwhelming probability; it does not order them, and ordering ties
// within a second are acceptable.
type WallClockIDGenerator struct {
	clock Clock
}

// NewWallClockIDGenerator creates a generator backed by the given clock.
func NewWallClockIDGenerator(clock Clock) *WallClockIDGenerator {
	return &WallClockIDGenerator{clock: clock}
}

func (g *WallClockIDGenerator) New() string {
	var suffix [4]byte
	rand.Read(suffix[:])
	return g.clock.Now().Format(idTimeLayout) + "-" + hex.EncodeToString(suffix[:])
}

func (g *WallClockIDGenerator) NewBackupID() string {
	return BackupIDPrefix + g.New()
}

// IsBackupID reports whether id was produced by the backup path.
func IsBackupID(id string) bool {
	return strings.HasPrefix(id, BackupIDPrefix)
}
