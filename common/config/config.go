package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Initialize a minimal logger for config loading phase
var configLogger = logrus.New()

func init() {
	configLogger.SetOutput(os.Stderr)
	configLogger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	configLogger.SetLevel(logrus.InfoLevel)
}

// Keys read from the environment or a config file.
const (
	KeyServiceName          = "SERVICE_NAME"
	KeyServiceVersion       = "SERVICE_VERSION"
	KeyEnvironment          = "ENVIRONMENT"
	KeyLogLevel             = "LOG_LEVEL"
	KeyLogFormat            = "LOG_FORMAT"
	KeyPort                 = "PORT"
	KeyJikanBaseURL         = "JIKAN_BASE_URL"
	KeyHTTPClientTimeoutMS  = "HTTP_CLIENT_TIMEOUT_MS"
	KeyStorageDriver        = "STORAGE_DRIVER"
	KeyStoragePath          = "STORAGE_PATH"
	KeyAuthSimulatedDelayMS = "AUTH_SIMULATED_DELAY_MS"
	KeyLoginMaxAttempts     = "LOGIN_MAX_ATTEMPTS"
	KeyLoginWindowSec       = "LOGIN_ATTEMPT_WINDOW_SEC"
	KeyMaxFavorites         = "MAX_FAVORITES"
	KeyOtelEnabled          = "OTEL_ENABLED"
	KeyOtelEndpoint         = "OTEL_EXPORTER_OTLP_ENDPOINT"
	KeyOtelInsecure         = "OTEL_EXPORTER_INSECURE"
	KeyOtelSampleRatio      = "OTEL_SAMPLE_RATIO"
	KeyShutdownTotalSec     = "SHUTDOWN_TOTAL_TIMEOUT_SEC"
	KeyShutdownServerSec    = "SHUTDOWN_SERVER_TIMEOUT_SEC"
	KeyShutdownOtelSec      = "SHUTDOWN_OTEL_TIMEOUT_SEC"
)

// Storage drivers.
const (
	StorageFile    = "file"
	StorageLevelDB = "leveldb"
	StorageMemory  = "memory"
)

// Config holds all configuration settings
type Config struct {
	// Service information
	ServiceName    string
	ServiceVersion string
	Environment    string

	// Logging configuration
	LogLevel  string
	LogFormat string

	// HTTP server
	Port string

	// Catalog API client
	JikanBaseURL      string
	HTTPClientTimeout time.Duration

	// Persistence
	StorageDriver string
	StoragePath   string

	// Authentication and favorites
	AuthSimulatedDelay time.Duration
	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration
	MaxFavorites       int

	// OpenTelemetry configuration
	OtelEnabled     bool
	OtelEndpoint    string
	OtelInsecure    bool
	OtelSampleRatio float64

	// Shutdown timeouts
	ShutdownTotalTimeout  time.Duration
	ShutdownServerTimeout time.Duration
	ShutdownOtelTimeout   time.Duration
}

// NewConfig creates a new Config with the provided options applied on top of the defaults.
func NewConfig(opts ...Option) *Config {
	c := NewDefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads configuration from a .env file, an optional config file and the
// environment, in increasing order of precedence. path may be empty.
func Load(path string, opts ...Option) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		configLogger.WithError(err).Warn("Failed to read .env file, continuing with environment")
	}

	v := viper.New()
	setDefaults(v, NewDefaultConfig())
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		configLogger.WithField("file", v.ConfigFileUsed()).Info("Config file loaded")
	}

	c := fromViper(v)
	for _, opt := range opts {
		opt(c)
	}

	if errs := c.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault(KeyServiceName, d.ServiceName)
	v.SetDefault(KeyServiceVersion, d.ServiceVersion)
	v.SetDefault(KeyEnvironment, d.Environment)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyPort, d.Port)
	v.SetDefault(KeyJikanBaseURL, d.JikanBaseURL)
	v.SetDefault(KeyHTTPClientTimeoutMS, d.HTTPClientTimeout.Milliseconds())
	v.SetDefault(KeyStorageDriver, d.StorageDriver)
	v.SetDefault(KeyStoragePath, d.StoragePath)
	v.SetDefault(KeyAuthSimulatedDelayMS, d.AuthSimulatedDelay.Milliseconds())
	v.SetDefault(KeyLoginMaxAttempts, d.LoginMaxAttempts)
	v.SetDefault(KeyLoginWindowSec, int(d.LoginAttemptWindow.Seconds()))
	v.SetDefault(KeyMaxFavorites, d.MaxFavorites)
	v.SetDefault(KeyOtelEnabled, d.OtelEnabled)
	v.SetDefault(KeyOtelEndpoint, d.OtelEndpoint)
	v.SetDefault(KeyOtelInsecure, d.OtelInsecure)
	v.SetDefault(KeyOtelSampleRatio, d.OtelSampleRatio)
	v.SetDefault(KeyShutdownTotalSec, int(d.ShutdownTotalTimeout.Seconds()))
	v.SetDefault(KeyShutdownServerSec, int(d.ShutdownServerTimeout.Seconds()))
	v.SetDefault(KeyShutdownOtelSec, int(d.ShutdownOtelTimeout.Seconds()))
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ServiceName:           v.GetString(KeyServiceName),
		ServiceVersion:        v.GetString(KeyServiceVersion),
		Environment:           strings.ToLower(v.GetString(KeyEnvironment)),
		LogLevel:              strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:             strings.ToLower(v.GetString(KeyLogFormat)),
		Port:                  v.GetString(KeyPort),
		JikanBaseURL:          strings.TrimRight(v.GetString(KeyJikanBaseURL), "/"),
		HTTPClientTimeout:     time.Duration(v.GetInt64(KeyHTTPClientTimeoutMS)) * time.Millisecond,
		StorageDriver:         strings.ToLower(v.GetString(KeyStorageDriver)),
		StoragePath:           v.GetString(KeyStoragePath),
		AuthSimulatedDelay:    time.Duration(v.GetInt64(KeyAuthSimulatedDelayMS)) * time.Millisecond,
		LoginMaxAttempts:      v.GetInt(KeyLoginMaxAttempts),
		LoginAttemptWindow:    time.Duration(v.GetInt(KeyLoginWindowSec)) * time.Second,
		MaxFavorites:          v.GetInt(KeyMaxFavorites),
		OtelEnabled:           v.GetBool(KeyOtelEnabled),
		OtelEndpoint:          v.GetString(KeyOtelEndpoint),
		OtelInsecure:          v.GetBool(KeyOtelInsecure),
		OtelSampleRatio:       v.GetFloat64(KeyOtelSampleRatio),
		ShutdownTotalTimeout:  time.Duration(v.GetInt(KeyShutdownTotalSec)) * time.Second,
		ShutdownServerTimeout: time.Duration(v.GetInt(KeyShutdownServerSec)) * time.Second,
		ShutdownOtelTimeout:   time.Duration(v.GetInt(KeyShutdownOtelSec)) * time.Second,
	}
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate validates the configuration
func (c *Config) Validate() []error {
	validator := NewValidator()

	validator.RequireNonEmpty("ServiceName", c.ServiceName)
	validator.RequireNonEmpty("ServiceVersion", c.ServiceVersion)
	validator.RequireAbsoluteURL("JikanBaseURL", c.JikanBaseURL)
	validator.RequireNonEmpty("Port", c.Port)

	validator.RequireOneOf("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "error"})
	validator.RequireOneOf("LogFormat", c.LogFormat, []string{"text", "json"})
	validator.RequireOneOf("StorageDriver", c.StorageDriver, []string{StorageFile, StorageLevelDB, StorageMemory})

	if port, err := strconv.Atoi(c.Port); err == nil {
		RequireInRange(validator, "Port", port, 1, 65535)
	} else {
		validator.AddError("Port", "must be a valid integer")
	}

	if c.StorageDriver != StorageMemory {
		validator.RequireNonEmpty("StoragePath", c.StoragePath)
	}

	RequireInRange(validator, "HTTPClientTimeout", c.HTTPClientTimeout, time.Millisecond, 5*time.Minute)
	RequireInRange(validator, "AuthSimulatedDelay", c.AuthSimulatedDelay, 0, 10*time.Second)
	RequireInRange(validator, "LoginMaxAttempts", c.LoginMaxAttempts, 1, 1000)
	RequireInRange(validator, "LoginAttemptWindow", c.LoginAttemptWindow, time.Second, 24*time.Hour)
	RequireInRange(validator, "MaxFavorites", c.MaxFavorites, 1, 10000)
	RequireInRange(validator, "OtelSampleRatio", c.OtelSampleRatio, 0.0, 1.0)

	if c.OtelEnabled {
		validator.RequireNonEmpty("OtelEndpoint", c.OtelEndpoint)
	}

	return validator.Errors()
}

// Log logs the current configuration
func (c *Config) Log() {
	logrus.WithFields(logrus.Fields{
		"service_name":      c.ServiceName,
		"service_version":   c.ServiceVersion,
		"environment":       c.Environment,
		"log_level":         c.LogLevel,
		"log_format":        c.LogFormat,
		"port":              c.Port,
		"jikan_base_url":    c.JikanBaseURL,
		"http_timeout":      c.HTTPClientTimeout,
		"storage_driver":    c.StorageDriver,
		"storage_path":      c.StoragePath,
		"max_favorites":     c.MaxFavorites,
		"login_attempts":    c.LoginMaxAttempts,
		"login_window":      c.LoginAttemptWindow,
		"otel_enabled":      c.OtelEnabled,
		"otel_endpoint":     c.OtelEndpoint,
		"otel_insecure":     c.OtelInsecure,
		"otel_sample_ratio": c.OtelSampleRatio,
		"shutdown_total":    c.ShutdownTotalTimeout,
		"shutdown_server":   c.ShutdownServerTimeout,
		"shutdown_otel":     c.ShutdownOtelTimeout,
	}).Info("Configuration loaded")
}
