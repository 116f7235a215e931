package config

import "time"

// NewDefaultConfig provides a configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		// Service information
		ServiceName:    "anime-service",
		ServiceVersion: "dev",
		Environment:    "development",

		// Logging configuration
		LogLevel:  "info",
		LogFormat: "text",

		Port: "8080",

		JikanBaseURL:      "https://api.jikan.moe/v4",
		HTTPClientTimeout: 10 * time.Second,

		StorageDriver: StorageFile,
		StoragePath:   "data/anime-store.json",

		AuthSimulatedDelay: time.Second,
		LoginMaxAttempts:   5,
		LoginAttemptWindow: time.Minute,
		MaxFavorites:       100,

		// OpenTelemetry configuration
		OtelEnabled:     false,
		OtelEndpoint:    "localhost:4317",
		OtelInsecure:    true,
		OtelSampleRatio: 1.0,

		// Shutdown timeouts
		ShutdownTotalTimeout:  30 * time.Second,
		ShutdownServerTimeout: 10 * time.Second,
		ShutdownOtelTimeout:   5 * time.Second,
	}
}
