package store_test

import (
	"testing"

	"pit-go/internal/config"
	"pit-go/internal/pit"
	"pit-go/internal/store"
)

func newStoreForTest(t *testing.T, storeType string, logger pit.Logger) (pit.Store, error) {
	t.Helper()
	cfg := config.StorageConfig{Type: storeType}
	return store.NewStoreFromConfig(cfg, t.TempDir(), logger)
}
