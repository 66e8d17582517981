package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bazaarhq/adminapi/internal/logger"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Data    DataConfig    `mapstructure:"data"`
	Misc    MiscConfig    `mapstructure:"misc"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	ShutDownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
}

// BackendConfig selects and tunes the marketplace backend client.
type BackendConfig struct {
	Mode     string        `mapstructure:"mode"` // "http" or "mock"
	BaseURL  string        `mapstructure:"base_url"`
	APIToken string        `mapstructure:"api_token"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CacheConfig tunes the resource cache.
type CacheConfig struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Dedupe bool          `mapstructure:"dedupe"`
}

// NotifyConfig tunes the notification feed.
type NotifyConfig struct {
	FeedLimit int `mapstructure:"feed_limit"`
}

// DataConfig holds mock catalog persistence settings (mock mode only).
type DataConfig struct {
	FilePath        string        `mapstructure:"file_path"`
	PersistInterval time.Duration `mapstructure:"persist_interval"`
}

// MiscConfig holds everything else.
type MiscConfig struct {
	GinMode  string `mapstructure:"gin_mode"`
	LogLevel string `mapstructure:"log_level"`
}

// LoadConfig reads config.yaml (plus .env and ADMINAPI_* environment
// overrides) and validates the result.
func LoadConfig() (*Config, error) {
	// .env is optional; env vars win either way.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Environment variables automatically override config file values,
	// e.g. ADMINAPI_SERVER_PORT overrides server.port.
	v.AutomaticEnv()
	v.SetEnvPrefix("ADMINAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.WithComponent("config").Info("no config file found, using defaults and env vars")
		} else {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("server.cors_allowed_origins", "*")

	v.SetDefault("backend.mode", "mock")
	v.SetDefault("backend.base_url", "http://localhost:9000/api/")
	v.SetDefault("backend.timeout", 30*time.Second)

	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.dedupe", true)

	v.SetDefault("notify.feed_limit", 100)

	v.SetDefault("data.file_path", "./config/data/catalog.json")
	v.SetDefault("data.persist_interval", 5*time.Second)

	v.SetDefault("misc.gin_mode", "release")
	v.SetDefault("misc.log_level", "info")
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return errors.New("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return errors.New("server write timeout must be positive")
	}
	if c.Server.IdleTimeout <= 0 {
		return errors.New("server idle timeout must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return errors.New("server shutdown timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server request timeout must be positive")
	}

	switch c.Backend.Mode {
	case "http":
		if c.Backend.BaseURL == "" {
			return errors.New("backend base url is required in http mode")
		}
	case "mock":
		if c.Data.FilePath == "" {
			return errors.New("data file path is required in mock mode")
		}
		if c.Data.PersistInterval <= 0 {
			return errors.New("data persist interval must be positive")
		}
	default:
		return fmt.Errorf("invalid backend mode: %q (want http or mock)", c.Backend.Mode)
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache ttl must be positive")
	}
	if c.Notify.FeedLimit <= 0 {
		return errors.New("notify feed limit must be positive")
	}
	return nil
}
