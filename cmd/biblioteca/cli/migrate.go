package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/biblioteca/internal/storage/sqlite"
)

func newMigrateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			// Opening the store applies pending migrations.
			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			logger.Info("Database schema is up to date", "database", cfg.DBPath)
			fmt.Fprintln(cmd.OutOrStdout(), cfg.DBPath)
			return nil
		},
	}
}
