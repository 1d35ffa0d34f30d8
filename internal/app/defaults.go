package app

import (
	"fmt"
	"os"
	"path/filepath"

	"pit-go/internal/config"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PIT_WORKSPACE: workspace root (default: current directory)
//   - PIT_CONFIG_PATH: config file location (default: <workspace>/.pit.toml)
func GetDefaults() (map[string]string, error) {
	workspace, err := getWorkspace()
	if err != nil {
		return nil, err
	}

	configPath := os.Getenv("PIT_CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(workspace, ".pit.toml")
	}

	return map[string]string{
		"config_path": configPath,
		"workspace":   workspace,
		"log_dir":     filepath.Join(workspace, config.DefaultStorageRoot, "log"),
	}, nil
}

// getWorkspace returns the workspace root, checking PIT_WORKSPACE first,
// then falling back to the current directory.
func getWorkspace() (string, error) {
	if path := os.Getenv("PIT_WORKSPACE"); path != "" {
		return filepath.Abs(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine current directory: %w", err)
	}
	return cwd, nil
}
