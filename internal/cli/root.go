package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/inventory/internal/config"
	"github.com/roach88/inventory/internal/engine"
	"github.com/roach88/inventory/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Database   string
	Driver     string
	Feed       string
	Backup     string
	NoImport   bool
	Verbose    bool
	LogFormat  string // "text" | "json"
	Format     string // "text" | "json"

	// Clock and RunIDGenerator override engine defaults (for testing).
	Clock          engine.Clock
	RunIDGenerator engine.RunIDGenerator

	// Interrupts replaces the process interrupt signal (for testing).
	Interrupts <-chan os.Signal

	// config is resolved once per invocation by PersistentPreRunE.
	config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the inventory CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Product inventory with CSV import and backup",
		Long: `Keep a product inventory in SQLite, seeded from a CSV feed.

Without a subcommand the feed is imported and the interactive menu starts.

Example:
  inventory
  inventory --db shop.db --feed weekly.csv
  inventory import weekly.csv
  inventory list --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			opts.config = cfg
			setupLogging(cfg.Log, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	pf.StringVar(&opts.Database, "db", "", "path to SQLite database (default Inventory.db)")
	pf.StringVar(&opts.Driver, "driver", "", "database driver (sqlite3|sqlite)")
	pf.StringVar(&opts.Feed, "feed", "", "CSV feed imported at startup (default inventory.csv)")
	pf.StringVar(&opts.Backup, "backup", "", "backup CSV path (default Inventory_backup.csv)")
	pf.BoolVar(&opts.NoImport, "no-import", false, "skip the startup feed import")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// resolveConfig layers flags over the config file and validates the result.
// Only flags the user actually set override file values.
func resolveConfig(cmd *cobra.Command, opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database.Path = opts.Database
	}
	if flags.Changed("driver") {
		cfg.Database.Driver = opts.Driver
	}
	if flags.Changed("feed") {
		cfg.Feed.Path = opts.Feed
	}
	if flags.Changed("backup") {
		cfg.Backup.Path = opts.Backup
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.LogFormat
	}
	if opts.NoImport {
		cfg.Feed.ImportOnStart = false
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	return cfg, nil
}

// setupLogging installs the default slog logger.
func setupLogging(lc config.LogConfig, w io.Writer) {
	handlerOpts := &slog.HandlerOptions{Level: lc.SlogLevel()}

	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}

// commandContext returns the command's context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openStore opens the configured database.
func openStore(db config.DatabaseConfig) (*store.Store, error) {
	slog.Debug("opening database", "path", db.Path, "driver", db.Driver)
	st, err := store.OpenWithDriver(db.Driver, db.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// newEngine creates an engine honoring test overrides.
func newEngine(st *store.Store, opts *RootOptions) *engine.Engine {
	engineOpts := []engine.Option{engine.WithLogger(slog.Default())}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(opts.Clock))
	}
	if opts.RunIDGenerator != nil {
		engineOpts = append(engineOpts, engine.WithRunIDGenerator(opts.RunIDGenerator))
	}
	return engine.New(st, engineOpts...)
}
