package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

// LevelDB stores items in an embedded LevelDB database.
type LevelDB struct {
	db     *leveldb.DB
	path   string
	logger *slog.Logger
}

// OpenLevelDB opens or creates the database directory at path.
func OpenLevelDB(path string, logger *slog.Logger) (*LevelDB, error) {
	handle, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LevelDB{db: handle, path: path, logger: logger}, nil
}

func (l *LevelDB) span(ctx context.Context, op string) (context.Context, func(*error)) {
	ctx, span := commontrace.StartNamedSpan(ctx, "leveldb."+op, 0,
		semconv.DBSystemKey.String("leveldb"),
		attribute.String("db.operation", op),
	)
	return ctx, func(errPtr *error) { commontrace.EndSpan(span, errPtr, nil) }
}

// GetItem returns the value stored under key.
func (l *LevelDB) GetItem(ctx context.Context, key string) (value string, found bool, err error) {
	ctx, end := l.span(ctx, "GET")
	defer end(&err)

	raw, err := l.db.Get([]byte(key), nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return "", false, nil
	case errors.Is(err, leveldb.ErrClosed):
		return "", false, ErrClosed
	case err != nil:
		l.logger.ErrorContext(ctx, "LevelDB: Failed to read item", slog.String("key", key), slog.Any("error", err))
		return "", false, err
	}
	return string(raw), true, nil
}

// SetItem stores value under key.
func (l *LevelDB) SetItem(ctx context.Context, key, value string) (err error) {
	ctx, end := l.span(ctx, "PUT")
	defer end(&err)

	if err = l.db.Put([]byte(key), []byte(value), nil); err != nil {
		if errors.Is(err, leveldb.ErrClosed) {
			return ErrClosed
		}
		l.logger.ErrorContext(ctx, "LevelDB: Failed to write item", slog.String("key", key), slog.Any("error", err))
	}
	return err
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (l *LevelDB) RemoveItem(ctx context.Context, key string) (err error) {
	_, end := l.span(ctx, "DELETE")
	defer end(&err)

	err = l.db.Delete([]byte(key), nil)
	if errors.Is(err, leveldb.ErrClosed) {
		return ErrClosed
	}
	return err
}

// Close releases the database files.
func (l *LevelDB) Close() error {
	return l.db.Close()
}
