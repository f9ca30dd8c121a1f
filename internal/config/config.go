// Package config loads settings for the cuesheet command.
//
// Settings come from three layers, later ones winning: built-in defaults,
// an optional TOML file, and the environment (including a .env file in the
// working directory). Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvConfig = "CUESHEET_CONFIG"
	EnvStrict = "CUESHEET_STRICT"
	EnvOutput = "CUESHEET_OUTPUT"
	EnvDB     = "CUESHEET_DB"
)

const (
	defaultOutput = "text"
	defaultDBName = "cuesheet.db"
)

// Config holds the command settings.
type Config struct {
	Parse   ParseConfig   `toml:"parse"`
	Catalog CatalogConfig `toml:"catalog"`
	Watch   WatchConfig   `toml:"watch"`

	// Path is the file the settings were read from, empty if none.
	Path string `toml:"-"`
}

// ParseConfig controls how sheets are read and printed.
type ParseConfig struct {
	Strict bool   `toml:"strict"`
	Output string `toml:"output"` // text, json, yaml, toml
}

// CatalogConfig locates the SQLite catalog.
type CatalogConfig struct {
	DB string `toml:"db"`
}

// WatchConfig tunes the directory watcher.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads settings from path, or from CUESHEET_CONFIG or the default
// locations when path is empty, then applies environment overrides.
//
// A missing file is only an error when it was asked for explicitly.
func Load(path string) (*Config, error) {
	// A .env file is optional.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = findDefault()
	}

	cfg := &Config{}
	if path != "" {
		path = os.ExpandEnv(path)
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if explicit {
					return nil, fmt.Errorf("config file not found: %s", path)
				}
			} else {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else {
			cfg.Path = path
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// findDefault returns the first default config location that exists.
func findDefault() string {
	candidates := []string{"./cuesheet.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "cuesheet", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvStrict, v, err)
		}
		c.Parse.Strict = strict
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Parse.Output = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Catalog.DB = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Parse.Output == "" {
		c.Parse.Output = defaultOutput
	}
	if c.Catalog.DB == "" {
		c.Catalog.DB = defaultDBPath()
	}
	if c.Watch.Debounce.Duration <= 0 {
		c.Watch.Debounce.Duration = defaultDebounce
	}
}

// defaultDBPath puts the catalog in the user's cache directory, falling back
// to the working directory.
func defaultDBPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "cuesheet", defaultDBName)
	}
	return defaultDBName
}
