package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/Makepad-fr/bloco/internal/feedback"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	DefaultBackend     = BackendJSON
	DefaultRedisAddr   = "localhost:6379"
	DefaultRedisPrefix = "bloco:"
	DefaultLogLevel    = "info"
	DefaultTheme       = "classic"
	appName            = "bloco"
)

type Config struct {
	DataDir  string         `toml:"data_dir"`
	Backend  string         `toml:"backend"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Redis    RedisConfig    `toml:"redis"`
	Feedback FeedbackConfig `toml:"feedback"`
	Log      LogConfig      `toml:"log"`
	UI       UIConfig       `toml:"ui"`

	// Flag-only settings.
	ConfigFile string `toml:"-"`
	Yes        bool   `toml:"-"` // answer yes to confirmations
}

type SQLiteConfig struct {
	Path string `toml:"path"` // default <data_dir>/bloco.db
}

type RedisConfig struct {
	Addr   string `toml:"addr"`
	DB     int    `toml:"db"`
	Prefix string `toml:"prefix"`
}

type FeedbackConfig struct {
	Endpoint    string `toml:"endpoint"`
	Platform    string `toml:"platform"`
	BackDelayMS int    `toml:"back_delay_ms"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // default <data_dir>/bloco.log
}

type UIConfig struct {
	Theme string `toml:"theme"` // classic | neon | mono
	Group bool   `toml:"group"`
}

// BackDelay returns the feedback back-navigation delay.
func (c *Config) BackDelay() time.Duration {
	return time.Duration(c.Feedback.BackDelayMS) * time.Millisecond
}

func setDefaults(cfg *Config) {
	cfg.DataDir = defaultDataDir()
	cfg.Backend = DefaultBackend
	cfg.Redis = RedisConfig{Addr: DefaultRedisAddr, Prefix: DefaultRedisPrefix}
	cfg.Feedback = FeedbackConfig{
		Endpoint:    feedback.DefaultEndpoint,
		Platform:    runtime.GOOS,
		BackDelayMS: int(feedback.DefaultBackDelay / time.Millisecond),
	}
	cfg.Log.Level = DefaultLogLevel
	cfg.UI.Theme = DefaultTheme
}

// finalizeConfig validates values and fills paths derived from data_dir.
func finalizeConfig(cfg *Config) error {
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendJSON, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want json, sqlite, redis or memory)", cfg.Backend)
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = filepath.Join(cfg.DataDir, appName+".db")
	}
	cfg.SQLite.Path = expandPath(cfg.SQLite.Path)
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, appName+".log")
	}
	cfg.Log.File = expandPath(cfg.Log.File)
	if cfg.Feedback.BackDelayMS < 0 {
		return fmt.Errorf("feedback.back_delay_ms must be >= 0, got %d", cfg.Feedback.BackDelayMS)
	}
	if cfg.Feedback.Endpoint == "" {
		cfg.Feedback.Endpoint = feedback.DefaultEndpoint
	}
	return nil
}

// defaultDataDir is $XDG_DATA_HOME/bloco, falling back to ~/.bloco.
func defaultDataDir() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// expandPath expands ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
