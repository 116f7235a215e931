package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

// FileDatabase keeps every item in a single JSON object on disk. The whole
// file is rewritten on each change.
type FileDatabase struct {
	mu       sync.Mutex
	filePath string
	logger   *slog.Logger
	closed   bool
}

// NewFileDatabase creates a FileDatabase at filePath, creating its directory.
func NewFileDatabase(filePath string, logger *slog.Logger) (*FileDatabase, error) {
	if filePath == "" {
		return nil, errors.New("file database path is empty")
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileDatabase{filePath: filePath, logger: logger}, nil
}

// Read loads data from the JSON file into dest.
func (db *FileDatabase) Read(ctx context.Context, dest any) (opErr error) {
	ctx, span := commontrace.StartSpan(ctx,
		semconv.DBSystemKey.String("file"),
		attribute.String("db.operation", "READ"),
	)
	defer commontrace.EndSpan(span, &opErr, nil)

	db.logger.DebugContext(ctx, "FileDB: Reading data from file", slog.String("file_path", db.filePath))

	fileContent, err := os.ReadFile(db.filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			db.logger.ErrorContext(ctx, "FileDB: Failed to read data file", slog.String("file_path", db.filePath), slog.Any("error", err))
		}
		return err
	}

	if err := json.Unmarshal(fileContent, dest); err != nil {
		db.logger.WarnContext(ctx, "FileDB: Failed to unmarshal JSON data", slog.String("file_path", db.filePath), slog.Any("error", err))
		return err
	}
	return nil
}

// Write marshals data to JSON and replaces the file atomically.
func (db *FileDatabase) Write(ctx context.Context, data any) (opErr error) {
	ctx, span := commontrace.StartSpan(ctx,
		semconv.DBSystemKey.String("file"),
		attribute.String("db.operation", "WRITE"),
	)
	defer commontrace.EndSpan(span, &opErr, nil)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		db.logger.ErrorContext(ctx, "FileDB: Failed to marshal data to JSON", slog.String("file_path", db.filePath), slog.Any("error", err))
		return err
	}

	tmp := db.filePath + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0o644); err != nil {
		db.logger.ErrorContext(ctx, "FileDB: Failed to write data file", slog.String("file_path", tmp), slog.Any("error", err))
		return err
	}
	if err := os.Rename(tmp, db.filePath); err != nil {
		db.logger.ErrorContext(ctx, "FileDB: Failed to replace data file", slog.String("file_path", db.filePath), slog.Any("error", err))
		return err
	}

	db.logger.DebugContext(ctx, "FileDB: Data written successfully", slog.String("file_path", db.filePath))
	return nil
}

// FilePath returns the path to the database file.
func (db *FileDatabase) FilePath() string {
	return db.filePath
}

// CorruptSuffix is appended to the name of a data file that could not be
// decoded when it is moved aside.
const CorruptSuffix = ".corrupt"

// load reads the item map. A missing file is empty. A file that is not a JSON
// object is moved aside and treated as empty so the next write replaces it.
func (db *FileDatabase) load(ctx context.Context) (map[string]string, error) {
	items := map[string]string{}
	err := db.Read(ctx, &items)
	if err == nil {
		return items, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
		return nil, err
	}

	aside := db.filePath + CorruptSuffix
	if renameErr := os.Rename(db.filePath, aside); renameErr != nil {
		db.logger.WarnContext(ctx, "FileDB: Failed to move corrupt data file aside",
			slog.String("file_path", db.filePath),
			slog.Any("error", renameErr))
	} else {
		db.logger.WarnContext(ctx, "FileDB: Corrupt data file moved aside, starting empty",
			slog.String("file_path", db.filePath),
			slog.String("moved_to", aside))
	}
	return map[string]string{}, nil
}

// GetItem returns the value stored under key.
func (db *FileDatabase) GetItem(ctx context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return "", false, ErrClosed
	}

	items, err := db.load(ctx)
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

// SetItem stores value under key.
func (db *FileDatabase) SetItem(ctx context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}

	items, err := db.load(ctx)
	if err != nil {
		return err
	}
	items[key] = value
	return db.Write(ctx, items)
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (db *FileDatabase) RemoveItem(ctx context.Context, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}

	items, err := db.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return db.Write(ctx, items)
}

// Close marks the database closed.
func (db *FileDatabase) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.closed = true
	return nil
}
