package ui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/fleetdesk/internal/api"
	"github.com/javiermolinar/fleetdesk/internal/logging"
	"github.com/javiermolinar/fleetdesk/internal/metrics"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard data as a JSON API",
		Long: `Start the HTTP API used by the web dashboard. Prometheus metrics are
served on /metrics. Stops cleanly on SIGINT or SIGTERM.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if addr != "" {
				a.config.Server.Addr = addr
			}

			logger := logging.NewServer()
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.New(a.repo, a.config, logger, metrics.New("fleetdesk"))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
