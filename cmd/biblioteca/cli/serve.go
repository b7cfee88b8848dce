package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/biblioteca/internal/server"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if cfg.InsecureSecret() {
				logger.Warn("JWT_SECRET not set, using the development secret")
			}

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $ADDR or :8080)")
	return cmd
}
