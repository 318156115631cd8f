package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration from defaults, the config file, the
// environment and the flags in args. fs receives the flag definitions;
// fs.Args() holds the remaining arguments afterwards.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}
	cfg := &Config{}

	// 1. Defaults
	setDefaults(cfg)

	// 2. Config file. --config has to be known before the file is read.
	path, explicit := findConfigFile(args)
	if path != "" {
		if err := loadConfigFile(cfg, path, explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 3. Environment
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	// 4. Flags
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string, explicit bool) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.ConfigFile = path
	return nil
}

// findConfigFile returns the config path and whether the user named it.
// The root flags are parsed once into a scratch set so --config is found
// wherever it sits among them.
func findConfigFile(args []string) (string, bool) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	var configFile string
	defineFlags(&Config{}, fs, &configFile)
	_ = fs.Parse(args) // errors are reported by the real parse
	if configFile != "" {
		return configFile, true
	}
	return findDefaultConfigFile()
}

func findDefaultConfigFile() (string, bool) {
	if v := os.Getenv("BLOCO_CONFIG"); v != "" {
		return expandPath(v), true
	}
	if _, err := os.Stat(appName + ".toml"); err == nil {
		return appName + ".toml", false
	}
	if dir := userConfigDir(); dir != "" {
		p := filepath.Join(dir, appName, appName+".toml")
		if _, err := os.Stat(p); err == nil {
			return p, false
		}
	}
	return "", false
}

func userConfigDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}

// loadFromEnv overrides config from BLOCO_* variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("BLOCO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BLOCO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("BLOCO_SQLITE_PATH"); v != "" {
		cfg.SQLite.Path = v
	}
	if v := os.Getenv("BLOCO_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("BLOCO_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BLOCO_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}
	if v := os.Getenv("BLOCO_REDIS_PREFIX"); v != "" {
		cfg.Redis.Prefix = v
	}
	if v := os.Getenv("BLOCO_FEEDBACK_ENDPOINT"); v != "" {
		cfg.Feedback.Endpoint = v
	}
	if v := os.Getenv("BLOCO_PLATFORM"); v != "" {
		cfg.Feedback.Platform = v
	}
	if v := os.Getenv("BLOCO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BLOCO_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("BLOCO_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// parseFlags defines the root flags on fs and parses args.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	var configFile string
	defineFlags(cfg, fs, &configFile)
	return fs.Parse(args)
}

func defineFlags(cfg *Config, fs *flag.FlagSet, configFile *string) {
	fs.StringVar(configFile, "config", "", "Path to config file")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for data and logs")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend: json, sqlite, redis or memory")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.UI.Theme, "theme", cfg.UI.Theme, "Output theme: classic, neon or mono")
	fs.BoolVar(&cfg.UI.Group, "group", cfg.UI.Group, "Group task listings by pending/done")
	fs.BoolVar(&cfg.Yes, "yes", false, "Answer yes to confirmation prompts")
}
