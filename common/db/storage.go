// Package db provides the key-value storage port used for favorites and
// sessions, with JSON file, LevelDB and in-memory backends.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/narender/anime-explorer/common/config"
)

// ErrClosed is returned by a storage used after Close.
var ErrClosed = errors.New("storage is closed")

// Storage is a string key-value store. GetItem reports found=false for a
// missing key; err is reserved for backend failures.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// Open builds the storage backend selected by cfg.StorageDriver.
func Open(cfg *config.Config, logger *slog.Logger) (Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.StorageDriver {
	case config.StorageFile:
		return NewFileDatabase(cfg.StoragePath, logger)
	case config.StorageLevelDB:
		return OpenLevelDB(cfg.StoragePath, logger)
	case config.StorageMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
