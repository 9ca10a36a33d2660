package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/abdidvp/inventario/internal/domain"
)

// FileName is the config file looked up in the working directory.
const FileName = ".inventario.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .inventario.yaml and
// then applying INVENTARIO_* environment overrides.
type YAMLLoader struct {
	envFile string
}

// New creates a YAMLLoader that also reads a .env file when one exists.
func New() *YAMLLoader { return &YAMLLoader{envFile: ".env"} }

// NewWithEnvFile creates a YAMLLoader reading the given dotenv file.
// An empty path disables dotenv loading.
func NewWithEnvFile(path string) *YAMLLoader { return &YAMLLoader{envFile: path} }

// Load reads the config file at path.
// Returns DefaultConfig (plus env overrides) if the file does not exist.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	if err := l.loadDotEnv(); err != nil {
		return domain.Config{}, err
	}

	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.Config{}, err
	default:
		// fields absent from the file keep their defaults
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv never overrides variables already set in the process.
func (l *YAMLLoader) loadDotEnv() error {
	if l.envFile == "" {
		return nil
	}
	if _, err := os.Stat(l.envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		return fmt.Errorf("loading %s: %w", l.envFile, err)
	}
	return nil
}

func applyEnv(cfg *domain.Config) error {
	if v, ok := os.LookupEnv("INVENTARIO_STORE_DRIVER"); ok {
		cfg.Store.Driver = domain.StoreDriver(v)
	}
	if v, ok := os.LookupEnv("INVENTARIO_DB"); ok {
		cfg.Store.DSN = v
	}
	if v, ok := os.LookupEnv("INVENTARIO_STORE_MODE"); ok {
		cfg.Store.Mode = domain.StoreMode(v)
	}
	if v, ok := os.LookupEnv("INVENTARIO_AUTOCOMMIT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("INVENTARIO_AUTOCOMMIT: %w", err)
		}
		cfg.Store.AutoCommit = b
	}
	if v, ok := os.LookupEnv("INVENTARIO_DEVICE_COMMAND"); ok {
		argv, err := shellquote.Split(v)
		if err != nil {
			return fmt.Errorf("INVENTARIO_DEVICE_COMMAND: %w", err)
		}
		cfg.Device.Command = argv
	}
	if v, ok := os.LookupEnv("INVENTARIO_DEVICE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("INVENTARIO_DEVICE_TIMEOUT: %w", err)
		}
		cfg.Device.Timeout = d
	}
	if v, ok := os.LookupEnv("INVENTARIO_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("INVENTARIO_LOG_PATH"); ok {
		cfg.Log.Path = v
	}
	return nil
}
