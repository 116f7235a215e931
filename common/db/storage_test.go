package db

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narender/anime-explorer/common/config"
)

func backends(t *testing.T) map[string]func(t *testing.T) Storage {
	return map[string]func(t *testing.T) Storage{
		"file": func(t *testing.T) Storage {
			s, err := NewFileDatabase(filepath.Join(t.TempDir(), "nested", "store.json"), nil)
			require.NoError(t, err)
			return s
		},
		"leveldb": func(t *testing.T) Storage {
			s, err := OpenLevelDB(filepath.Join(t.TempDir(), "ldb"), nil)
			require.NoError(t, err)
			return s
		},
		"memory": func(*testing.T) Storage {
			return NewMemoryStorage()
		},
	}
}

func TestStorageContract(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			_, found, err := s.GetItem(ctx, "anime-favorites:1")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.SetItem(ctx, "anime-favorites:1", `[{"mal_id":1}]`))
			require.NoError(t, s.SetItem(ctx, "session:abc", `{"id":"1"}`))

			value, found, err := s.GetItem(ctx, "anime-favorites:1")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[{"mal_id":1}]`, value)

			require.NoError(t, s.SetItem(ctx, "anime-favorites:1", `[]`))
			value, _, err = s.GetItem(ctx, "anime-favorites:1")
			require.NoError(t, err)
			assert.Equal(t, `[]`, value)

			require.NoError(t, s.RemoveItem(ctx, "anime-favorites:1"))
			require.NoError(t, s.RemoveItem(ctx, "missing"))
			_, found, err = s.GetItem(ctx, "anime-favorites:1")
			require.NoError(t, err)
			assert.False(t, found)

			_, found, err = s.GetItem(ctx, "session:abc")
			require.NoError(t, err)
			assert.True(t, found)

			require.NoError(t, s.Close())
			_, _, err = s.GetItem(ctx, "session:abc")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, s.SetItem(ctx, "k", "v"), ErrClosed)
		})
	}
}

func TestStorageConcurrentWrites(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, s.SetItem(ctx, "shared", "v"))
				}(i)
			}
			wg.Wait()

			value, found, err := s.GetItem(ctx, "shared")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "v", value)
		})
	}
}

func TestFileDatabase_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFileDatabase(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.SetItem(ctx, "session:tok", "alice"))

	second, err := NewFileDatabase(path, nil)
	require.NoError(t, err)
	value, found, err := second.GetItem(ctx, "session:tok")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", value)
	assert.Equal(t, path, second.FilePath())
}

func TestFileDatabase_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewFileDatabase(path, nil)
	require.NoError(t, err)

	_, found, err := s.GetItem(ctx, "any")
	require.NoError(t, err)
	assert.False(t, found)

	moved, err := os.ReadFile(path + CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(moved))

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SetItem(ctx, "session:tok", "alice"))
	}
	value, found, err := s.GetItem(ctx, "session:tok")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", value)

	require.NoError(t, os.WriteFile(path, []byte(`["not","an","object"]`), 0o644))
	require.NoError(t, s.RemoveItem(ctx, "session:tok"))
	_, found, err = s.GetItem(ctx, "session:tok")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewFileDatabase_EmptyPath(t *testing.T) {
	_, err := NewFileDatabase("", nil)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(config.NewConfig(config.WithStorage(config.StorageMemory, "")), nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(config.NewConfig(config.WithStorage(config.StorageFile, filepath.Join(dir, "a.json"))), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileDatabase{}, s)

	s, err = Open(config.NewConfig(config.WithStorage(config.StorageLevelDB, filepath.Join(dir, "ldb"))), nil)
	require.NoError(t, err)
	assert.IsType(t, &LevelDB{}, s)
	require.NoError(t, s.Close())

	_, err = Open(config.NewConfig(config.WithStorage("redis", "")), nil)
	assert.Error(t, err)
}
