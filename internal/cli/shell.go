package cli

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/roach88/inventory/internal/feed"
	"github.com/roach88/inventory/internal/product"
	"github.com/roach88/inventory/internal/prompt"
	"github.com/roach88/inventory/internal/session"
)

// NewShellCommand creates the shell command.
func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Import the feed and start the interactive menu",
		Long: `Import the configured CSV feed, then start the interactive menu.

A missing feed is skipped with a warning. A malformed feed aborts startup
before the database is opened.

Press Ctrl-C at any prompt to be asked whether to exit.

Example:
  inventory shell
  inventory shell --no-import --db shop.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

func runShell(cmd *cobra.Command, opts *RootOptions) error {
	cfg := opts.config
	ctx := commandContext(cmd)

	// Read the feed before touching the database so a malformed feed leaves it alone.
	var candidates []product.Candidate
	if cfg.Feed.ImportOnStart {
		var err error
		candidates, err = feed.ReadFile(cfg.Feed.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Warn("feed not found, skipping import", "path", cfg.Feed.Path)
		case err != nil:
			return WrapExitError(ExitFailure, "failed to read feed", err)
		}
	}

	st, err := openStore(cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	eng := newEngine(st, opts)
	if len(candidates) > 0 {
		if _, err := eng.ImportBatch(ctx, candidates); err != nil {
			return WrapExitError(ExitFailure, "import failed", err)
		}
	}

	interrupts := opts.Interrupts
	if interrupts == nil {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt)
		defer signal.Stop(sigChan) // Prevent signal handler leak
		interrupts = sigChan
	}

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout(), interrupts)
	defer p.Close()

	s := session.New(st, eng, p, session.Config{
		BackupPath:  cfg.Backup.Path,
		ClearScreen: cfg.Session.ClearScreen,
	})
	if err := s.Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "session error", err)
	}
	return nil
}
