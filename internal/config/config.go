// Package config provides configuration types, defaults, loading and
// persistence for jjcolor.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"time"

	"github.com/spf13/viper"

	"jjcolor/internal/log"
	"jjcolor/internal/prefs"
	"jjcolor/internal/scanner"
)

// Config holds all configuration options for jjcolor.
type Config struct {
	Theme      string                    `mapstructure:"theme"`
	Categories map[string]prefs.Override `mapstructure:"categories"`
	Highlight  HighlightConfig           `mapstructure:"highlight"`
	Viewer     ViewerConfig              `mapstructure:"viewer"`
	Log        LogConfig                 `mapstructure:"log"`
}

type HighlightConfig struct {
	Workers   int `mapstructure:"workers"`
	CacheSize int `mapstructure:"cache_size"`
	ChunkSize int `mapstructure:"chunk_size"` // range length per scan; 0 scans line by line
}

type ViewerConfig struct {
	Watch    bool          `mapstructure:"watch"`
	TabWidth int           `mapstructure:"tab_width"`
	Debounce time.Duration `mapstructure:"debounce"`
	// Editor is the command run by the viewer's "e" key, with {file},
	// {line} and {col} substituted. Empty falls back to $EDITOR.
	Editor string `mapstructure:"editor"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme: "nord",
		Highlight: HighlightConfig{
			Workers:   4,
			CacheSize: 4096,
			ChunkSize: 0,
		},
		Viewer: ViewerConfig{
			Watch:    true,
			TabWidth: 4,
			Debounce: 150 * time.Millisecond,
		},
		Log: LogConfig{
			File:  "debug.log",
			Level: "debug",
		},
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("highlight.workers", d.Highlight.Workers)
	v.SetDefault("highlight.cache_size", d.Highlight.CacheSize)
	v.SetDefault("highlight.chunk_size", d.Highlight.ChunkSize)
	v.SetDefault("viewer.watch", d.Viewer.Watch)
	v.SetDefault("viewer.tab_width", d.Viewer.TabWidth)
	v.SetDefault("viewer.debounce", d.Viewer.Debounce)
	v.SetDefault("viewer.editor", d.Viewer.Editor)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// LocalPath and UserPath are the config locations tried, in order, when no
// file is given explicitly.
const LocalPath = ".jjcolor/config.yaml"

func UserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jjcolor", "config.yaml")
}

// Resolve picks the config file to read: explicit wins, then LocalPath,
// then UserPath. It returns "" when none exists.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, p := range []string{LocalPath, UserPath()} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads path into v (defaults only when path is empty) and decodes it.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
			log.Debug(log.CatConfig, "config file not found, using defaults", "path", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Reload reads path into a fresh viper instance.
func Reload(path string) (Config, error) {
	return Load(viper.New(), path)
}

func Validate(cfg Config) error {
	if cfg.Highlight.Workers < 1 {
		return fmt.Errorf("highlight.workers must be at least 1, got %d", cfg.Highlight.Workers)
	}
	if cfg.Highlight.CacheSize < 0 {
		return fmt.Errorf("highlight.cache_size must not be negative, got %d", cfg.Highlight.CacheSize)
	}
	if cfg.Highlight.ChunkSize < 0 {
		return fmt.Errorf("highlight.chunk_size must not be negative, got %d", cfg.Highlight.ChunkSize)
	}
	if cfg.Viewer.TabWidth < 1 || cfg.Viewer.TabWidth > 16 {
		return fmt.Errorf("viewer.tab_width must be between 1 and 16, got %d", cfg.Viewer.TabWidth)
	}
	for name := range cfg.Categories {
		if _, err := scanner.ParseCategory(name); err != nil {
			return fmt.Errorf("categories: %w", err)
		}
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Diff describes what a reload changed as a preference change. Only
// presentation settings are compared.
func Diff(old Config, next Config) prefs.Change {
	var c prefs.Change
	if old.Theme != next.Theme {
		c.Theme = next.Theme
	}
	for name, o := range next.Categories {
		if prev, ok := old.Categories[name]; !ok || !reflect.DeepEqual(prev, o) {
			if c.Overrides == nil {
				c.Overrides = make(map[string]prefs.Override)
			}
			c.Overrides[name] = o
		}
	}
	for name := range old.Categories {
		if _, ok := next.Categories[name]; !ok {
			c.Removed = append(c.Removed, name)
		}
	}
	sort.Strings(c.Removed)
	return c
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# jjcolor configuration

# Chroma style used to color grammar files (see: jjcolor themes)
theme: nord

# Per-category overrides. Keys are category names as printed by
# "jjcolor tokens"; every field is optional.
# categories:
#   javacc-keyword:
#     fg: "#81A1C1"
#     bold: true
#   token-label-private-definition:
#     italic: true
#   bnf-production-name:
#     fg: "#88C0D0"
#     underline: true

highlight:
  workers: 4          # background highlighting workers
  cache_size: 4096    # highlighted spans kept in memory
  chunk_size: 0       # characters per scan range; 0 scans line by line

viewer:
  watch: true         # reload the file and this config when they change
  tab_width: 4
  debounce: 150ms     # delay before reacting to a burst of file events
  # editor: "nvim +{line} {file}"   # command for the "e" key; default $EDITOR

# Debug logging, enabled with --debug or JJCOLOR_DEBUG
log:
  file: debug.log
  level: debug        # debug, info, warn or error
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
