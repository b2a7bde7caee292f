package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/fleetdesk/internal/report"
)

func (a *App) reportCmd() *cobra.Command {
	var (
		f       windowFlags
		model   string
		insight bool
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the full dispatch report",
		Long: `Show utilization, double-bookings and idle gaps for the report
window. With --insight, ask the configured LLM for dispatch advice.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if model == "" {
				model = a.config.LLM.Model
			}

			ctx := context.Background()
			r, err := report.Build(ctx, a.repo, report.Options{
				Utilization:    a.options(f, time.Now()),
				IncludeInsight: insight,
				Provider:       a.config.LLM.Provider,
				Model:          model,
				BaseURL:        a.config.LLM.BaseURL,
			})
			if err != nil {
				return fmt.Errorf("building report: %w", err)
			}

			if plain {
				return report.WriteText(os.Stdout, r)
			}

			printUtilization(os.Stdout, r.Utilization)

			fmt.Printf("\n  %s\n", formatHeader("CONFLICTS"))
			PrintConflicts(os.Stdout, r.Conflicts)

			fmt.Printf("\n  %s\n", formatHeader("GAPS"))
			printGaps(os.Stdout, r.Gaps)

			if r.Insight != nil {
				fmt.Println()
				fmt.Printf("  %s\n", formatHeader("INSIGHT"))
				fmt.Println(strings.Repeat("─", ruleWidth))
				PrintInsightWrapped(os.Stdout, r.Insight, ruleWidth-2)
			}

			fmt.Println()
			return nil
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().StringVar(&model, "model", "", "LLM model to use (default from config)")
	cmd.Flags().BoolVar(&insight, "insight", false, "Ask the LLM for dispatch advice")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print plain text without colours or bars")
	return cmd
}
