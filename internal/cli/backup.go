package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/inventory/internal/feed"
)

// BackupResult is the printable outcome of a backup.
type BackupResult struct {
	Path     string `json:"path"`
	Products int    `json:"products"`
}

func (r BackupResult) String() string {
	return fmt.Sprintf("backup successful: %d products written to %s", r.Products, r.Path)
}

// NewBackupCommand creates the backup command.
func NewBackupCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [path]",
		Short: "Write every product to a backup CSV",
		Long: `Write every product to a backup CSV with the feed's columns.

Prices are written as $D.DD and dates as YYYY-MM-DD. The file is replaced
atomically, so an interrupted backup never truncates the previous one.

Example:
  inventory backup
  inventory backup /srv/backups/inventory.csv`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.config.Backup.Path
			if len(args) == 1 {
				path = args[0]
			}
			return runBackup(cmd, opts, path)
		},
	}
}

func runBackup(cmd *cobra.Command, opts *RootOptions, path string) error {
	st, err := openStore(opts.config.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	products, err := st.ListAll(commandContext(cmd))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list products", err)
	}
	if err := feed.WriteFile(path, products); err != nil {
		return WrapExitError(ExitFailure, "backup failed", err)
	}

	return newFormatter(opts, cmd.OutOrStdout()).Success(BackupResult{Path: path, Products: len(products)})
}
