package domain

import (
	"fmt"
	"time"
)

// StoreDriver identifies the SQL backend holding the products table.
type StoreDriver string

const (
	DriverSQLite   StoreDriver = "sqlite"
	DriverMySQL    StoreDriver = "mysql"
	DriverPostgres StoreDriver = "postgres"
)

// ValidStoreDrivers enumerates all recognized store drivers.
var ValidStoreDrivers = []StoreDriver{DriverSQLite, DriverMySQL, DriverPostgres}

// StoreMode controls how the store treats a code that is already recorded.
type StoreMode string

const (
	// ModeMultiset accepts repeated codes; each insert adds a row.
	ModeMultiset StoreMode = "multiset"
	// ModeUnique rejects a batch containing a code that is already stored.
	ModeUnique StoreMode = "unique"
)

// ValidStoreModes enumerates all recognized store modes.
var ValidStoreModes = []StoreMode{ModeMultiset, ModeUnique}

// ValidLogLevels enumerates the log levels accepted in log.level.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

const (
	DefaultDSN     = "inventario.db"
	DefaultLogPath = "inventario.log"
)

// Config holds the settings loaded from .inventario.yaml and the environment.
type Config struct {
	Store  StoreConfig  `yaml:"store"  json:"store"`
	Device DeviceConfig `yaml:"device" json:"device"`
	Log    LogConfig    `yaml:"log"    json:"log"`
}

// StoreConfig describes where product codes are persisted.
type StoreConfig struct {
	Driver StoreDriver `yaml:"driver" json:"driver"`
	DSN    string      `yaml:"dsn"    json:"dsn"`
	Mode   StoreMode   `yaml:"mode"   json:"mode"`
	// AutoCommit commits after every successful batch instead of only on exit.
	AutoCommit bool `yaml:"autocommit" json:"autocommit"`
}

// DeviceConfig describes the capture device. Command runs an external
// reader; Codes replays a fixed capture instead. Neither set means no device.
type DeviceConfig struct {
	Command []string      `yaml:"command,omitempty" json:"command,omitempty"`
	Codes   []string      `yaml:"codes,omitempty"   json:"codes,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// LogConfig configures the structured log file.
type LogConfig struct {
	Level    string `yaml:"level"    json:"level"`
	Path     string `yaml:"path"     json:"path"`
	Encoding string `yaml:"encoding" json:"encoding"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides exist: a local SQLite file that accepts duplicates.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
			DSN:    DefaultDSN,
			Mode:   ModeMultiset,
		},
		Log: LogConfig{
			Level:    "info",
			Path:     DefaultLogPath,
			Encoding: "json",
		},
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if !isValidDriver(c.Store.Driver) {
		return fmt.Errorf("unknown store.driver %q (valid: sqlite, mysql, postgres)", c.Store.Driver)
	}
	if c.Store.DSN == "" {
		return fmt.Errorf("store.dsn must not be empty")
	}
	if !isValidMode(c.Store.Mode) {
		return fmt.Errorf("unknown store.mode %q (valid: multiset, unique)", c.Store.Mode)
	}

	if c.Device.Timeout < 0 {
		return fmt.Errorf("device.timeout must be >= 0, got %s", c.Device.Timeout)
	}
	if len(c.Device.Command) > 0 && c.Device.Command[0] == "" {
		return fmt.Errorf("device.command must start with a program name")
	}
	if len(c.Device.Command) > 0 && len(c.Device.Codes) > 0 {
		return fmt.Errorf("device.command and device.codes are mutually exclusive")
	}

	if c.Log.Level != "" && !contains(ValidLogLevels, c.Log.Level) {
		return fmt.Errorf("unknown log.level %q (valid: debug, info, warn, error)", c.Log.Level)
	}
	if c.Log.Encoding != "" && c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		return fmt.Errorf("unknown log.encoding %q (valid: json, console)", c.Log.Encoding)
	}

	return nil
}

// HasDevice reports whether a capture device is configured.
func (c Config) HasDevice() bool {
	return len(c.Device.Command) > 0 || len(c.Device.Codes) > 0
}

func isValidDriver(d StoreDriver) bool {
	for _, v := range ValidStoreDrivers {
		if v == d {
			return true
		}
	}
	return false
}

func isValidMode(m StoreMode) bool {
	for _, v := range ValidStoreModes {
		if v == m {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
