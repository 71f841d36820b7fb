package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultEnvFile is the dotenv file read from the working directory when present
const DefaultEnvFile = ".env"

// DatabaseConfig holds connection and pool settings for the todo store
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	// Path is the database file, used only by the sqlite driver
	Path string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LogConfig holds log level and rotation settings
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Config is the full process configuration
type Config struct {
	Port     int
	Bind     string
	Database DatabaseConfig
	Log      LogConfig
	Timeouts TimeoutConfig
}

// New returns a viper instance with defaults applied and environment lookup
// enabled. Keys map to env vars by upper-casing and replacing dots with
// underscores, e.g. db.host -> DB_HOST.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("bind", "")

	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "todoapp")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "password")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "./todoapp.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "todoapi.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)

	defaults := DefaultTimeoutConfig()
	v.SetDefault("http.read_timeout", defaults.Read)
	v.SetDefault("http.idle_timeout", defaults.Idle)
	v.SetDefault("http.request_timeout", defaults.Request)
	v.SetDefault("http.shutdown_timeout", defaults.Shutdown)
}

// LoadEnvFile reads a dotenv file into the process environment. Variables
// already set in the environment win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port: v.GetInt("port"),
		Bind: v.GetString("bind"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("db.driver")),
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			Name:            v.GetString("db.name"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			SSLMode:         v.GetString("db.sslmode"),
			Path:            v.GetString("db.path"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Log: LogConfig{
			Level:      strings.ToLower(v.GetString("log.level")),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
			Compress:   v.GetBool("log.compress"),
		},
		Timeouts: TimeoutConfig{
			Read:     v.GetDuration("http.read_timeout"),
			Idle:     v.GetDuration("http.idle_timeout"),
			Request:  v.GetDuration("http.request_timeout"),
			Shutdown: v.GetDuration("http.shutdown_timeout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at startup
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if c.Bind != "" {
		if ip := net.ParseIP(c.Bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", c.Bind)
		}
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port %d", c.Database.Port)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("db.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (want %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database pool limits must not be negative")
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	if c.Bind != "" {
		return net.JoinHostPort(c.Bind, fmt.Sprintf("%d", c.Port))
	}
	return fmt.Sprintf(":%d", c.Port)
}
