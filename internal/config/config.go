// ABOUTME: Swim configuration management with backend selection.
// ABOUTME: Layers defaults, config file and SWIM_* env vars through viper.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/swimbook/internal/kv"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	envPrefix         = "SWIM"
	defaultBackend    = kv.BackendBadger
	defaultPoolLength = models.DefaultPoolLength
)

// Config stores swim tool configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default), "sqlite" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local backends.
	// Supports ~ expansion. Defaults to $XDG_DATA_HOME/swim.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel enables diagnostic logging on stderr when set.
	LogLevel string `json:"log_level,omitempty"`

	// PoolLength is the lap length in meters used for splits.
	PoolLength int `json:"pool_length,omitempty"`

	// Timezone names the IANA zone used for calendar days. Empty means local time.
	Timezone string `json:"timezone,omitempty"`
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	v := viper.New()
	ApplyDefaults(v)
	return v
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", defaultBackend)
	v.SetDefault("data_dir", "")
	v.SetDefault("log_level", "")
	v.SetDefault("pool_length", defaultPoolLength)
	v.SetDefault("timezone", "")
}

// ReadFile merges the JSON config file at path into v. A missing file is not
// an error; an empty path means GetConfigPath.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		path = GetConfigPath()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// FromViper builds a Config from the values resolved by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Backend:    v.GetString("backend"),
		DataDir:    v.GetString("data_dir"),
		LogLevel:   v.GetString("log_level"),
		PoolLength: v.GetInt("pool_length"),
		Timezone:   v.GetString("timezone"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config file and environment into a Config.
func Load() (*Config, error) {
	v := NewViper()
	if err := ReadFile(v, ""); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// Validate checks the enumerated and numeric settings.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case kv.BackendBadger, kv.BackendSQLite, kv.BackendCharm:
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	if c.PoolLength < 0 {
		return fmt.Errorf("pool_length must not be negative, got %d", c.PoolLength)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// GetBackend returns the configured backend, defaulting to badger.
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return defaultBackend
	}
	return c.Backend
}

// GetPoolLength returns the configured pool length, defaulting to 50 m.
func (c *Config) GetPoolLength() int {
	if c.PoolLength <= 0 {
		return defaultPoolLength
	}
	return c.PoolLength
}

// Location resolves Timezone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// DefaultDataDir returns $XDG_DATA_HOME/swim, or ~/.local/share/swim.
func DefaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, _ := os.UserHomeDir()
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "swim")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the kv backend selected by the config.
func (c *Config) OpenStore(logger *zap.Logger) (kv.Store, error) {
	dataDir := c.GetDataDir()

	switch backend := c.GetBackend(); backend {
	case kv.BackendBadger:
		dir := filepath.Join(dataDir, "badger")
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return kv.OpenBadger(dir, logger)
	case kv.BackendSQLite:
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return kv.OpenSQLite(filepath.Join(dataDir, "swim.db"))
	case kv.BackendCharm:
		return kv.OpenCharm(kv.DefaultCharmDB)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "swim", "config.json")
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
