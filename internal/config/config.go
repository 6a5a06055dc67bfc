// Package config loads runtime settings from TOML files and the environment.
//
// Sources are applied in order, later ones winning:
//  1. Defaults
//  2. User config file ($XDG_CONFIG_HOME/todo/config.toml)
//  3. Project config file (todo.toml in the working directory)
//  4. Explicit file passed with --config
//  5. Environment variables (TODO_*)
//
// Flags are applied by the CLI on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var ErrInvalid = errors.New("invalid config")

const (
	envTheme     = "TODO_THEME"
	envColor     = "TODO_COLOR"
	envLogLevel  = "TODO_LOG_LEVEL"
	envLogFormat = "TODO_LOG_FORMAT"
	envLogFile   = "TODO_LOG_FILE"
	envAddr      = "TODO_ADDR"
	envCharLimit = "TODO_CHAR_LIMIT"

	projectFileName = "todo.toml"
)

type Config struct {
	Theme string `toml:"theme"` // classic|neon|mono
	Color string `toml:"color"` // auto|always|never

	Log   Log   `toml:"log"`
	Web   Web   `toml:"web"`
	Input Input `toml:"input"`
}

type Log struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // text|json|logfmt
	File   string `toml:"file"`
}

type Web struct {
	Addr string `toml:"addr"`
}

type Input struct {
	// CharLimit caps TUI input in runes; 0 means no limit.
	CharLimit int `toml:"char_limit"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme: "classic",
		Color: "auto",
		Log:   Log{Level: "info", Format: "text"},
		Web:   Web{Addr: "127.0.0.1:8080"},
	}
}

// Load reads every source. explicit may be empty.
func Load(explicit string) (Config, error) {
	return LoadFrom(userConfigFile(), projectFileName, explicit, os.Environ())
}

// LoadFrom lets tests choose the files and environment. Missing user and
// project files are skipped; a missing explicit file is an error.
func LoadFrom(userFile, projectFile, explicit string, environ []string) (Config, error) {
	cfg := Default()

	for _, path := range []string{userFile, projectFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	if explicit != "" {
		if err := loadFile(&cfg, explicit); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg, parseEnv(environ)); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects values no component understands.
func (c Config) Validate() error {
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalid, c.Theme)
	}
	switch strings.ToLower(c.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color %q", ErrInvalid, c.Color)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	if c.Input.CharLimit < 0 {
		return fmt.Errorf("%w: char_limit %d", ErrInvalid, c.Input.CharLimit)
	}
	if strings.TrimSpace(c.Web.Addr) == "" {
		return fmt.Errorf("%w: empty web addr", ErrInvalid)
	}
	return nil
}

func applyEnv(cfg *Config, env map[string]string) error {
	if v := env[envTheme]; v != "" {
		cfg.Theme = v
	}
	if v := env[envColor]; v != "" {
		cfg.Color = v
	}
	if v := env[envLogLevel]; v != "" {
		cfg.Log.Level = v
	}
	if v := env[envLogFormat]; v != "" {
		cfg.Log.Format = v
	}
	if v := env[envLogFile]; v != "" {
		cfg.Log.File = v
	}
	if v := env[envAddr]; v != "" {
		cfg.Web.Addr = v
	}
	if v := env[envCharLimit]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, envCharLimit, v)
		}
		cfg.Input.CharLimit = n
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = strings.TrimSpace(v)
	}
	return env
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todo", "config.toml")
}
