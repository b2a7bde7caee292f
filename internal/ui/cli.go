// Package ui implements the fleetdesk command line.
package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/config"
	"github.com/javiermolinar/fleetdesk/internal/db"
	"github.com/javiermolinar/fleetdesk/internal/logging"
	"github.com/javiermolinar/fleetdesk/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     booking.Repository
	config   *config.Config
	root     *cobra.Command
	logger   *zap.SugaredLogger
	closeLog func()
	debug    bool // Enable debug logging
}

// NewApp creates a new CLI application. repo may be nil, in which case it is
// opened from the storage config by the first command that needs it.
func NewApp(repo booking.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, logger: zap.NewNop().Sugar(), closeLog: func() {}}

	a.root = &cobra.Command{
		Use:   "fleetdesk",
		Short: "Dispatch conflicts and fleet utilization for chauffeur services",
		Long: `Fleetdesk checks bookings for double-booked drivers and vehicles
and reports how busy every driver, vehicle and partner is.

Run without a subcommand to open the interactive dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, closeLog, err := logging.NewCLI(a.debug, logging.DebugLogPath)
			if err != nil {
				return err
			}
			a.logger, a.closeLog = logger, closeLog
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.closeLog()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, a.logger)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.bookingCmd())
	a.root.AddCommand(a.resourceCmd(booking.KindDriver))
	a.root.AddCommand(a.resourceCmd(booking.KindVehicle))
	a.root.AddCommand(a.resourceCmd(booking.KindPartner))
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.utilizationCmd())
	a.root.AddCommand(a.gapsCmd())
	a.root.AddCommand(a.freeCmd())
	a.root.AddCommand(a.statusCmd())
	a.root.AddCommand(a.suggestCmd())
	a.root.AddCommand(a.reportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("fleetdesk %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured store on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.Open(context.Background(), a.config.Storage)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", a.config.Storage.Driver, err)
	}
	a.logger.Debugw("store opened", "driver", a.config.Storage.Driver)
	a.repo = repo
	return nil
}

// Close releases the store opened by the app.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
