package store

import (
	"fmt"
	"path/filepath"

	"pit-go/internal/config"
	"pit-go/internal/pit"
)

// NewStoreFromConfig creates a Store based on the storage configuration.
func NewStoreFromConfig(cfg config.StorageConfig, workspace string, logger pit.Logger) (pit.Store, error) {
	switch cfg.Type {
	case "", "filesystem":
		root := cfg.RootDir
		if root == "" {
			root = config.DefaultStorageRoot
		}
		return NewFilesystemStore(filepath.Join(workspace, root), logger), nil
	case "memory":
		return NewMemoryStore(logger), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
