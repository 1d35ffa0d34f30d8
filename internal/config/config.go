package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultStorageRoot is the directory created inside the workspace to hold
// snapshot records, the operation log and logs.
const DefaultStorageRoot = ".pit"

// DefaultDebounceMillis is the window within which rapid successive change
// events for one path collapse to the last one.
const DefaultDebounceMillis = 500

// Config represents the main configuration for pit.
type Config struct {
	Workspace  string           `toml:"workspace"`
	LogDir     string           `toml:"log_dir"`
	Storage    StorageConfig    `toml:"storage"`
	Database   DatabaseConfig   `toml:"database"`
	Watcher    WatcherConfig    `toml:"watcher"`
	Filesystem FilesystemConfig `toml:"filesystem"`
}

// StorageConfig represents configuration for the snapshot store backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StorageConfig struct {
	Type    string `toml:"type"`               // "filesystem" (default) or "memory"
	RootDir string `toml:"root_dir,omitempty"` // storage root name inside the workspace; only used for type=filesystem
}

// DatabaseConfig represents configuration for the operation log database.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" (default) or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// WatcherConfig holds file-watcher settings.
type WatcherConfig struct {
	DebounceMillis int `toml:"debounce_millis"`
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	Ignore []string `toml:"ignore"` // extra ignore substrings on top of the built-in denylist
}

// NewConfig creates a new Config for the given workspace with defaults.
func NewConfig(workspace string) *Config {
	return &Config{
		Workspace: workspace,
		LogDir:    filepath.Join(workspace, DefaultStorageRoot, "log"),
		Storage: StorageConfig{
			Type:    "filesystem",
			RootDir: DefaultStorageRoot,
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(workspace, DefaultStorageRoot),
		},
		Watcher: WatcherConfig{
			DebounceMillis: DefaultDebounceMillis,
		},
	}
}

// StorageRoot returns the configured storage root name, falling back to the
// default. The ignore rules always exclude this directory.
func (c *Config) StorageRoot() string {
	if c.Storage.RootDir != "" {
		return c.Storage.RootDir
	}
	return DefaultStorageRoot
}

// Debounce returns the configured debounce window in milliseconds, falling
// back to the default for zero or negative values.
func (c *Config) Debounce() int {
	if c.Watcher.DebounceMillis > 0 {
		return c.Watcher.DebounceMillis
	}
	return DefaultDebounceMillis
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Refuse to clobber an existing config.
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
