// Package cli holds the biblioteca commands.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/biblioteca/internal/config"
	"github.com/mmynk/biblioteca/pkg/logging"
)

type rootOptions struct {
	dbPath   string
	logLevel string
}

// NewRootCommand builds the biblioteca command tree. Flags override the
// environment.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "biblioteca",
		Short:         "Library catalog and loan server",
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (default $DB_PATH or ./data/biblioteca.db)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (default $LOG_LEVEL)")

	cmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newCreateSuperuserCommand(opts),
	)
	return cmd
}

// load resolves the configuration and installs the logger.
func (o *rootOptions) load(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		level, err := logging.ParseLevel(o.logLevel)
		if err != nil {
			return cfg, nil, err
		}
		cfg.LogLevel = level
	}
	return cfg, logging.SetupWithWriter(cmd.ErrOrStderr(), cfg.LogLevel), nil
}
