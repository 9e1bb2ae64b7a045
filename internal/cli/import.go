package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/inventory/internal/engine"
	"github.com/roach88/inventory/internal/feed"
)

// ImportResult is the printable outcome of an import run.
type ImportResult struct {
	RunID    string `json:"run_id"`
	Feed     string `json:"feed"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
	Total    int    `json:"total"`
}

func newImportResult(path string, r engine.Report) ImportResult {
	return ImportResult{
		RunID:    r.RunID,
		Feed:     path,
		Inserted: r.Inserted,
		Updated:  r.Updated,
		Skipped:  r.Skipped,
		Total:    r.Total(),
	}
}

func (r ImportResult) String() string {
	return fmt.Sprintf("imported %d rows from %s: %d inserted, %d updated, %d skipped (run %s)",
		r.Total, r.Feed, r.Inserted, r.Updated, r.Skipped, r.RunID)
}

// NewImportCommand creates the import command.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import [csv]",
		Short: "Import a CSV feed into the inventory",
		Long: `Import a CSV feed into the inventory and report what changed.

Rows are applied in file order. A row replaces the stored product of the same
name only when its date is strictly newer. The feed is parsed completely
before any row is applied; a malformed row aborts the import.

Without an argument the configured feed is imported.

Example:
  inventory import
  inventory import weekly.csv --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.config.Feed.Path
			if len(args) == 1 {
				path = args[0]
			}
			return runImport(cmd, opts, path)
		},
	}
}

func runImport(cmd *cobra.Command, opts *RootOptions, path string) error {
	out := newFormatter(opts, cmd.OutOrStdout())

	candidates, err := feed.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return WrapExitError(ExitCommandError, "feed not found", err)
	}
	if err != nil {
		_ = out.Error(CodeMalformedFeed, err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to read feed", err)
	}

	st, err := openStore(opts.config.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := newEngine(st, opts).ImportBatch(commandContext(cmd), candidates)
	result := newImportResult(path, report)
	if err != nil {
		_ = out.Error(CodeImportFailed, err.Error(), result)
		return WrapExitError(ExitFailure, "import failed", err)
	}

	slog.Debug("import command finished", "feed", path, "run_id", report.RunID)
	return out.Success(result)
}
