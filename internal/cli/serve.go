package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/garland/internal/api"
	"github.com/example/garland/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API exposing the deployment lifecycle, including the
/metrics endpoint for Prometheus scraping.

Examples:
  garland serve
  garland serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = wire.Config().APIAddr
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			srv := api.NewServer(
				wire.DeploymentService(),
				wire.SessionService(),
				wire.ConnectionService(),
				wire.StagingService(),
				wire.TeardownService(),
				logger,
			)

			logger.Info("starting API server", "addr", addr)
			if err := srv.Router().Run(addr); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to config api_addr)")
	return cmd
}
