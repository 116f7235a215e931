package config

import "time"

// Option is a function that configures a Config
type Option func(*Config)

// WithServiceName sets the service name
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithEnvironment sets the deployment environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithLogFormat sets the log format
func WithLogFormat(format string) Option {
	return func(c *Config) {
		c.LogFormat = format
	}
}

// WithPort sets the HTTP listen port
func WithPort(port string) Option {
	return func(c *Config) {
		c.Port = port
	}
}

// WithJikanBaseURL sets the catalog API base URL
func WithJikanBaseURL(url string) Option {
	return func(c *Config) {
		c.JikanBaseURL = url
	}
}

// WithStorage sets the storage driver and its path
func WithStorage(driver, path string) Option {
	return func(c *Config) {
		c.StorageDriver = driver
		c.StoragePath = path
	}
}

// WithAuthSimulatedDelay sets the delay of the mock auth provider
func WithAuthSimulatedDelay(d time.Duration) Option {
	return func(c *Config) {
		c.AuthSimulatedDelay = d
	}
}

// WithMaxFavorites sets the per-user favorites limit
func WithMaxFavorites(n int) Option {
	return func(c *Config) {
		c.MaxFavorites = n
	}
}

// WithOtel enables or disables telemetry export
func WithOtel(enabled bool, endpoint string) Option {
	return func(c *Config) {
		c.OtelEnabled = enabled
		c.OtelEndpoint = endpoint
	}
}
