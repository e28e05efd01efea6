package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	IDs        IDsConfig        `mapstructure:"ids"`
	DataAccess DataAccessConfig `mapstructure:"dataaccess"`
	Status     StatusConfig     `mapstructure:"status"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// TrustProxy honours X-Forwarded-For; enable only behind a proxy that sets it.
	TrustProxy      bool          `mapstructure:"trust_proxy"`
}

// Addr is the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StorageConfig struct {
	Driver         string `mapstructure:"driver"`
	SQLitePath     string `mapstructure:"sqlite_path"`
	MaxConnections int    `mapstructure:"max_connections"`
	Seed           bool   `mapstructure:"seed"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type IDsConfig struct {
	Strategy string `mapstructure:"strategy"`
}

type DataAccessConfig struct {
	Workers int `mapstructure:"workers"`
}

type StatusConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

type RateLimitConfig struct {
	WritePerMinute int `mapstructure:"write_per_minute"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Load reads configuration from path (or configs/config.yaml when empty),
// environment variables prefixed BLOCKSTREAM_ and any .env files in envDir.
// A missing config file is not an error.
func Load(path string, envDir string) (*Config, error) {
	loadEnv(envDir)

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs/")
	}
	v.SetEnvPrefix("BLOCKSTREAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.DataAccess.Workers <= 0 {
		return errors.New("dataaccess.workers must be positive")
	}
	if c.Status.RefreshInterval < 0 {
		return errors.New("status.refresh_interval must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.sqlite_path", "data/blockstream.db")
	v.SetDefault("storage.max_connections", 4)
	v.SetDefault("storage.seed", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("ids.strategy", "uuid")
	v.SetDefault("dataaccess.workers", 8)
	v.SetDefault("status.refresh_interval", "0s")
	v.SetDefault("rate_limit.write_per_minute", 60)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "blockstream")
}

func loadEnv(envDir string) {
	if envDir == "" {
		envDir = "."
	}
	for _, name := range []string{".env", ".env.local"} {
		// Later files override earlier ones.
		_ = godotenv.Overload(filepath.Join(envDir, name))
	}
}
