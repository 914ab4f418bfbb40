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
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时字段，不来自配置文件
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Driver string
	DSN    string `mapstructure:"dsn"`
	Seed   bool
	Debug  bool
}

type LogConfig struct {
	Level      string
	File       string
	MaxSize    int `mapstructure:"max_size"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAge     int `mapstructure:"max_age"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// Window returns the rate limit window as a duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "quiz.db")
	v.SetDefault("database.seed", true)
	v.SetDefault("database.debug", false)

	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.collector_endpoint", "http://localhost:14268/api/traces")

	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig reads config.yaml from path. A missing file is not an error;
// defaults and environment variables still apply.
func LoadConfig(path string) (*Config, error) {
	// .env 文件可选
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("QUIZAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Database
	v.BindEnv("database.driver", "QUIZAPP_DATABASE_DRIVER", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "QUIZAPP_DATABASE_DSN", "DATABASE_DSN")

	// Server
	v.BindEnv("server.port", "QUIZAPP_SERVER_PORT", "SERVER_PORT")
	v.BindEnv("server.mode", "QUIZAPP_SERVER_MODE", "SERVER_MODE")

	// Tracing
	v.BindEnv("tracing.enabled", "QUIZAPP_TRACING_ENABLED", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "QUIZAPP_TRACING_COLLECTOR_ENDPOINT", "TRACING_COLLECTOR_ENDPOINT")

	var file string
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	} else {
		file = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.File = file

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigFile returns the path LoadConfig looks at inside dir.
func ConfigFile(dir string) string {
	return filepath.Join(dir, "config.yaml")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return errors.New("database dsn must not be empty")
	}

	if c.Server.Port == "" {
		return errors.New("server port must not be empty")
	}

	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d per %d minutes",
			c.RateLimit.MaxRequests, c.RateLimit.WindowMinutes)
	}

	return nil
}
