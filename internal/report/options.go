package report

import (
	"time"

	"github.com/javiermolinar/fleetdesk/internal/config"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

// OptionsFromConfig returns the utilization options configured for reports,
// evaluated at now.
func OptionsFromConfig(cfg *config.Config, now time.Time) utilization.Options {
	return utilization.Options{
		DateRange:        cfg.Report.DateRange,
		IncludeCompleted: cfg.Report.IncludeCompleted,
		IncludeConfirmed: cfg.Report.IncludeConfirmed,
		IncludePending:   cfg.Report.IncludePending,
		MinGapHours:      cfg.Report.MinGapHours,
		Capacity: utilization.Capacity{
			DriverHours:  cfg.Capacity.DriverHours,
			VehicleHours: cfg.Capacity.VehicleHours,
			PartnerHours: cfg.Capacity.PartnerHours,
		},
		Now: now,
	}
}
