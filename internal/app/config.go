package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDB is the backing file used when nothing else is configured.
	DefaultDB = "kv.db"

	// DefaultAddr is where serve listens by default.
	DefaultAddr = ":8080"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	DB    string      `yaml:"db"`   // backing file path
	Sync  bool        `yaml:"sync"` // fsync after every flush
	Log   LogConfig   `yaml:"log"`
	Serve ServeConfig `yaml:"serve"`
}

// LogConfig configures the logger.
type LogConfig struct {
	File       string `yaml:"file"`
	Debug      bool   `yaml:"debug"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		DB: DefaultDB,
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Serve: ServeConfig{Addr: DefaultAddr},
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults; a path that does not exist is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.DB == "" {
		return errors.New("db path cannot be empty")
	}
	if c.Serve.Addr == "" {
		return errors.New("serve address cannot be empty")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.New("log rotation settings cannot be negative")
	}
	return nil
}
