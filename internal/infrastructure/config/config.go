package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/common/model"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Instance InstanceConfig `mapstructure:"instance"`
	Docs     DocsConfig     `mapstructure:"docs"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Locale      string `mapstructure:"locale"`
}

// StorageConfig controls where and how documents are persisted
type StorageConfig struct {
	// DirName is the hidden folder created under the home directory.
	DirName string `mapstructure:"dir_name"`
	// DataDir overrides the home-relative location when set.
	DataDir string `mapstructure:"data_dir"`
	// StrictRead turns unparseable documents into errors instead of defaults.
	StrictRead bool `mapstructure:"strict_read"`
}

// ServerConfig holds the loopback bridge configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DocsConfig controls the Swagger UI served by the bridge
type DocsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// InstanceConfig names the single-instance lock
type InstanceConfig struct {
	LockName string `mapstructure:"lock_name"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "todoapp")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "production")
	viper.SetDefault("app.locale", "en")

	// Storage defaults
	viper.SetDefault("storage.dir_name", ".todo-app")
	viper.SetDefault("storage.data_dir", "")
	viper.SetDefault("storage.strict_read", false)

	// Server defaults
	viper.SetDefault("server.port", 17420)
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.shutdown_timeout", "5s")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output", "stderr")
	viper.SetDefault("logger.filename", "")

	// Security defaults
	viper.SetDefault("security.cors_allowed_origins", "tauri://localhost,http://localhost:1420")
	viper.SetDefault("security.rate_limit_requests", 50)
	viper.SetDefault("security.rate_limit_window", "1m")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)

	// Docs defaults
	viper.SetDefault("docs.enabled", false)

	// Instance defaults
	viper.SetDefault("instance.lock_name", "todoapp")
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("app.locale", "APP_LOCALE")

	// Storage
	viper.BindEnv("storage.dir_name", "TODO_DIR_NAME")
	viper.BindEnv("storage.data_dir", "TODO_DATA_DIR")
	viper.BindEnv("storage.strict_read", "TODO_STRICT_READ")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	viper.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	viper.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")

	// Metrics
	viper.BindEnv("metrics.enabled", "ENABLE_METRICS")

	// Docs
	viper.BindEnv("docs.enabled", "ENABLE_SWAGGER")

	// Instance
	viper.BindEnv("instance.lock_name", "INSTANCE_LOCK_NAME")
}

func validateConfig(cfg *Config) error {
	// app.name doubles as the metrics namespace
	if cfg.Metrics.Enabled && !model.IsValidMetricName(model.LabelValue(cfg.App.Name)) {
		return fmt.Errorf("app name %q must be a valid metrics namespace (letters, digits and underscores)", cfg.App.Name)
	}

	if cfg.Storage.DirName == "" && cfg.Storage.DataDir == "" {
		return fmt.Errorf("storage dir_name or data_dir is required")
	}

	if cfg.Storage.DataDir != "" && !filepath.IsAbs(cfg.Storage.DataDir) {
		return fmt.Errorf("storage data_dir must be an absolute path")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if cfg.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("rate limit requests must be positive")
	}

	if cfg.Instance.LockName == "" {
		return fmt.Errorf("instance lock name is required")
	}

	return nil
}

// GetAddr returns the bridge listen address
func (cfg *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// AllowedOrigins splits the configured CORS origin list
func (cfg *SecurityConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}
