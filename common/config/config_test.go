package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	assert.Empty(t, NewDefaultConfig().Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "anime-service", cfg.ServiceName)
	assert.Equal(t, "https://api.jikan.moe/v4", cfg.JikanBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, StorageFile, cfg.StorageDriver)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, time.Minute, cfg.LoginAttemptWindow)
	assert.Equal(t, 100, cfg.MaxFavorites)
	assert.False(t, cfg.OtelEnabled)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(KeyPort, "9090")
	t.Setenv(KeyLogLevel, "DEBUG")
	t.Setenv(KeyStorageDriver, "memory")
	t.Setenv(KeyHTTPClientTimeoutMS, "2500")
	t.Setenv(KeyJikanBaseURL, "http://localhost:3000/v4/")
	t.Setenv(KeyOtelEnabled, "true")
	t.Setenv(KeyOtelSampleRatio, "0.25")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 2500*time.Millisecond, cfg.HTTPClientTimeout)
	assert.Equal(t, "http://localhost:3000/v4", cfg.JikanBaseURL)
	assert.True(t, cfg.OtelEnabled)
	assert.InDelta(t, 0.25, cfg.OtelSampleRatio, 1e-9)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anime.yaml")
	content := "service_name: catalog\nmax_favorites: 10\nstorage_driver: leveldb\nstorage_path: /tmp/anime-db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(KeyMaxFavorites, "20")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "catalog", cfg.ServiceName)
	assert.Equal(t, StorageLevelDB, cfg.StorageDriver)
	assert.Equal(t, "/tmp/anime-db", cfg.StoragePath)
	assert.Equal(t, 20, cfg.MaxFavorites, "environment overrides the file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(KeyLogFormat, "xml")
	t.Setenv(KeyPort, "99999")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogFormat")
	assert.Contains(t, err.Error(), "Port")
}

func TestOptions(t *testing.T) {
	cfg := NewConfig(
		WithPort("7000"),
		WithStorage(StorageMemory, ""),
		WithMaxFavorites(3),
		WithAuthSimulatedDelay(0),
		WithOtel(true, "collector:4317"),
	)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 3, cfg.MaxFavorites)
	assert.Zero(t, cfg.AuthSimulatedDelay)
	assert.Equal(t, "collector:4317", cfg.OtelEndpoint)
	assert.Empty(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := NewConfig(WithStorage(StorageFile, ""), WithMaxFavorites(0))
	errs := cfg.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "StoragePath")
	assert.Contains(t, errs[1].Error(), "MaxFavorites")
}

func TestRequireInRange(t *testing.T) {
	v := NewValidator()
	RequireInRange(v, "ratio", 1.5, 0.0, 1.0)
	RequireInRange(v, "count", 3, 1, 5)
	RequireInRange(v, "name", "m", "a", "k")

	errs := v.Errors()
	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], "ratio: must be between 0 and 1")
	assert.EqualError(t, errs[1], "name: must be between a and k")
}

func TestValidator_Rules(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Err())

	v.RequireNonEmpty("ServiceName", "  ")
	v.RequireOneOf("StorageDriver", "redis", []string{StorageFile, StorageMemory})
	v.RequireAbsoluteURL("JikanBaseURL", "https://api.jikan.moe/v4")
	v.RequireAbsoluteURL("JikanBaseURL", "api.jikan.moe/v4")
	v.RequireAbsoluteURL("JikanBaseURL", "ftp://api.jikan.moe")

	errs := v.Errors()
	require.Len(t, errs, 4)
	assert.EqualError(t, errs[0], "ServiceName: cannot be empty")
	assert.EqualError(t, errs[1], "StorageDriver: must be one of: file, memory")

	var fieldErr *FieldError
	require.ErrorAs(t, v.Err(), &fieldErr)
	assert.Equal(t, "ServiceName", fieldErr.Field)
	assert.Contains(t, v.Err().Error(), "JikanBaseURL: must be an absolute http(s) URL")
}

func TestValidate_RejectsRelativeCatalogURL(t *testing.T) {
	errs := NewConfig(WithJikanBaseURL("localhost:3000")).Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "JikanBaseURL")
}
