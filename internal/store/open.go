package store

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/tessro/heimdall/internal/config"
)

// Open returns the KV selected by cfg. Files live under dataDir unless
// cfg.Path is set. The closer must be called when done.
func Open(cfg config.StorageConfig, dataDir string) (KV, io.Closer, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryKV(), io.NopCloser(nil), nil

	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = filepath.Join(dataDir, DefaultDatabaseFileName)
		}
		kv, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil

	case "", "file":
		path := cfg.Path
		if path == "" {
			path = filepath.Join(dataDir, DefaultStateFileName)
		}
		kv, err := NewFileKV(path)
		if err != nil {
			return nil, nil, err
		}
		return kv, io.NopCloser(nil), nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
