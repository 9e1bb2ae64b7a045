// Package config loads and validates runtime settings.
//
// Settings come from defaults, an optional YAML file and command-line flags,
// in that order. The merged result is checked against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Config is the full set of runtime settings.
type Config struct {
	Database DatabaseConfig `yaml:"database" json:"database"`
	Feed     FeedConfig     `yaml:"feed" json:"feed"`
	Backup   BackupConfig   `yaml:"backup" json:"backup"`
	Log      LogConfig      `yaml:"log" json:"log"`
	Session  SessionConfig  `yaml:"session" json:"session"`
}

// DatabaseConfig selects the inventory database.
type DatabaseConfig struct {
	Path   string `yaml:"path" json:"path"`
	Driver string `yaml:"driver" json:"driver"` // "sqlite3" | "sqlite"
}

// FeedConfig locates the CSV feed imported at startup.
type FeedConfig struct {
	Path          string `yaml:"path" json:"path"`
	ImportOnStart bool   `yaml:"import_on_start" json:"import_on_start"`
}

// BackupConfig locates the backup CSV.
type BackupConfig struct {
	Path string `yaml:"path" json:"path"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format" json:"format"` // "text" | "json"
}

// SessionConfig controls the interactive session.
type SessionConfig struct {
	ClearScreen bool `yaml:"clear_screen" json:"clear_screen"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{Path: "Inventory.db", Driver: "sqlite3"},
		Feed:     FeedConfig{Path: "inventory.csv", ImportOnStart: true},
		Backup:   BackupConfig{Path: "Inventory_backup.csv"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Session:  SessionConfig{ClearScreen: true},
	}
}

// Load returns Defaults overlaid with the YAML file at path.
// An empty path returns Defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cfg against the schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Details: cueerrors.Details(err, nil)}
	}
	return nil
}

// ValidationError reports settings rejected by the schema.
type ValidationError struct {
	Details string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + e.Details
}

// SlogLevel returns the configured level, or info if it is unrecognized.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
