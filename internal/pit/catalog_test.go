package pit_test

import (
	"slices"
	"testing"
	"time"

	"pit-go/internal/pit"
	"pit-go/internal/store"
	"pit-go/internal/testutil"
)

// seedSnapshots stores n snapshots created one second apart and returns
// their IDs in creation order.
func seedSnapshots(t *testing.T, st pit.Store, n int) []string {
	t.Helper()

	clock := testutil.FixedClock()
	gen := pit.NewWallClockIDGenerator(clock)

	var ids []string
	for i := 0; i < n; i++ {
		snap := &pit.Snapshot{
			ID:        gen.New(),
			Timestamp: clock.Now(),
			Trigger:   pit.TriggerFileSave,
			Files:     []pit.FileCapture{{Path: "a.txt", Content: "x", Size: 1}},
		}
		if err := st.Put(snap); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		ids = append(ids, snap.ID)
		clock.Advance(time.Second)
	}
	return ids
}

func TestCatalog_ListIDs(t *testing.T) {
	t.Run("returns IDs newest first", func(t *testing.T) {
		t.Parallel()
		st := store.NewMemoryStore(pit.NewNopLogger())
		ids := seedSnapshots(t, st, 3)

		got := pit.NewCatalog(st).ListIDs()

		want := []string{ids[2], ids[1], ids[0]}
		if !slices.Equal(got, want) {
			t.Errorf("ListIDs() = %v, want %v", got, want)
		}
	})

	t.Run("empty store yields an empty listing", func(t *testing.T) {
		t.Parallel()
		st := store.NewMemoryStore(pit.NewNopLogger())

		if got := pit.NewCatalog(st).ListIDs(); len(got) != 0 {
			t.Errorf("ListIDs() = %v, want empty", got)
		}
	})

	t.Run("is idempotent with no intervening writes", func(t *testing.T) {
		t.Parallel()
		st := store.NewMemoryStore(pit.NewNopLogger())
		seedSnapshots(t, st, 5)
		catalog := pit.NewCatalog(st)

		first := catalog.ListIDs()
		second := catalog.ListIDs()
		if !slices.Equal(first, second) {
			t.Errorf("listings differ: %v vs %v", first, second)
		}
	})
}

func TestCatalog_ListAll(t *testing.T) {
	t.Run("materializes snapshots newest first", func(t *testing.T) {
		t.Parallel()
		st := store.NewMemoryStore(pit.NewNopLogger())
		ids := seedSnapshots(t, st, 3)

		snaps := pit.NewCatalog(st).ListAll()

		if len(snaps) != 3 {
			t.Fatalf("got %d snapshots, want 3", len(snaps))
		}
		for i, snap := range snaps {
			if want := ids[len(ids)-1-i]; snap.ID != want {
				t.Errorf("snapshot[%d].ID = %s, want %s", i, snap.ID, want)
			}
		}
	})

	t.Run("skips corrupt records without failing", func(t *testing.T) {
		t.Parallel()
		st := store.NewMemoryStore(pit.NewNopLogger())
		seedSnapshots(t, st, 2)
		st.SetRecord("zzz-corrupt", []byte("not json"))

		catalog := pit.NewCatalog(st)
		if got := catalog.Count(); got != 3 {
			t.Errorf("Count() = %d, want 3", got)
		}
		if snaps := catalog.ListAll(); len(snaps) != 2 {
			t.Errorf("ListAll() returned %d snapshots, want 2", len(snaps))
		}
	})

	t.Run("identical calls return identical sequences", func(t *testing.T) {
		t.Parallel()
		st := store.NewMemoryStore(pit.NewNopLogger())
		seedSnapshots(t, st, 4)
		catalog := pit.NewCatalog(st)

		first := catalog.ListAll()
		second := catalog.ListAll()
		if len(first) != len(second) {
			t.Fatalf("listings differ in length: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Errorf("listing[%d] differs: %s vs %s", i, first[i].ID, second[i].ID)
			}
		}
	})
}

func TestCatalog_Count(t *testing.T) {
	t.Parallel()
	st := store.NewMemoryStore(pit.NewNopLogger())
	catalog := pit.NewCatalog(st)

	if got := catalog.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
	seedSnapshots(t, st, 4)
	if got := catalog.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
}
