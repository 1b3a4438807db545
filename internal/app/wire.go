package app

import (
	"kvstore/internal/domain"
	"kvstore/internal/logger"
	kvsvc "kvstore/internal/services/kv"
	"kvstore/internal/store"
)

// Wire bundles the logger, services and store options for the CLI.
type Wire struct {
	Config Config
	Log    *logger.Logger
	KV     domain.KVService
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Debug:      cfg.Log.Debug,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	log.Debugf("db=%s sync=%t", cfg.DB, cfg.Sync)

	w := &Wire{Config: cfg, Log: log}
	w.KV = kvsvc.New(cfg.DB, log, w.storeOptions()...)
	return w, nil
}

func (w *Wire) storeOptions() []store.Option {
	return []store.Option{store.WithSync(w.Config.Sync)}
}

// OpenStore opens the configured store for a long-lived owner such as the
// HTTP server. The caller must Release it.
func (w *Wire) OpenStore() (*store.Store, error) {
	opts := append([]store.Option{store.WithLogger(w.Log)}, w.storeOptions()...)
	return store.Open(w.Config.DB, opts...)
}

// Close flushes and closes the log sinks.
func (w *Wire) Close() error {
	return w.Log.Close()
}
