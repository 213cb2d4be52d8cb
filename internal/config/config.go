package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server and week view configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Calendar  CalendarConfig  `yaml:"calendar"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// TransportConfig selects how the RPC server is exposed: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// AuthConfig controls bearer API key checks on the HTTP transport. When
// disabled every request acts as DefaultUser.
type AuthConfig struct {
	Enabled     bool   `yaml:"enabled"`
	DefaultUser string `yaml:"default_user"`
}

// CalendarConfig describes the visible week grid.
type CalendarConfig struct {
	StartHour      int     `yaml:"start_hour"`
	EndHour        int     `yaml:"end_hour"`
	SnapMinutes    int     `yaml:"snap_minutes"`
	WeekStart      string  `yaml:"week_start"`
	ClickThreshold float64 `yaml:"click_threshold"`
}

// FirstWeekday parses WeekStart, defaulting to Monday.
func (c CalendarConfig) FirstWeekday() time.Weekday {
	switch strings.ToLower(c.WeekStart) {
	case "sunday":
		return time.Sunday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "weekgrid.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Auth: AuthConfig{
			DefaultUser: "local",
		},
		Calendar: CalendarConfig{
			StartHour:   8,
			EndHour:     18,
			SnapMinutes: 15,
			WeekStart:   "monday",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	return LoadFile(os.Getenv("WEEKGRID_CONFIG_PATH"))
}

// LoadFile reads configuration from path, if non-empty, and then applies
// environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}

	cal := c.Calendar
	if cal.StartHour < 0 || cal.EndHour > 24 || cal.EndHour <= cal.StartHour {
		return fmt.Errorf("invalid calendar hours %d-%d", cal.StartHour, cal.EndHour)
	}
	if cal.SnapMinutes <= 0 || 60%cal.SnapMinutes != 0 {
		return fmt.Errorf("invalid calendar snap_minutes %d", cal.SnapMinutes)
	}
	if cal.ClickThreshold < 0 {
		return fmt.Errorf("invalid calendar click_threshold %v", cal.ClickThreshold)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("WEEKGRID_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("WEEKGRID_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid WEEKGRID_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("WEEKGRID_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("WEEKGRID_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("WEEKGRID_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("WEEKGRID_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if enabled := os.Getenv("WEEKGRID_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid WEEKGRID_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if user := os.Getenv("WEEKGRID_DEFAULT_USER"); user != "" {
		cfg.Auth.DefaultUser = user
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
