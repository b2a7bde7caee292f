package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/fleetdesk/internal/config"
	"github.com/javiermolinar/fleetdesk/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  fleetdesk config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(os.Stdout, cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Dispatch.DayStart = promptValue(reader, "Day start", cfg.Dispatch.DayStart)
	cfg.Dispatch.DayEnd = promptValue(reader, "Day end", cfg.Dispatch.DayEnd)
	cfg.Dispatch.Workdays = promptSlice(reader, "Workdays (comma-separated)", cfg.Dispatch.Workdays)
	cfg.Capacity.DriverHours = promptFloat(reader, "Driver hours per day", cfg.Capacity.DriverHours)
	cfg.Capacity.VehicleHours = promptFloat(reader, "Vehicle hours per day", cfg.Capacity.VehicleHours)
	cfg.Capacity.PartnerHours = promptFloat(reader, "Partner hours per day", cfg.Capacity.PartnerHours)
	cfg.Report.DateRange = int(promptFloat(reader, "Report window (days)", float64(cfg.Report.DateRange)))
	cfg.Report.MinGapHours = promptFloat(reader, "Shortest reported gap (hours)", cfg.Report.MinGapHours)
	cfg.LLM.Provider = promptValue(reader, "LLM provider (copilot, openai, ollama, lmstudio, none)", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, "LLM base URL (OpenAI, Ollama, LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.Driver = promptValue(reader, "Storage driver (sqlite, postgres)", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverPostgres {
		cfg.Storage.PostgresDSN = promptValue(reader, "Postgres DSN", cfg.Storage.PostgresDSN)
	} else {
		cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	}
	cfg.Server.Addr = promptValue(reader, "API listen address", cfg.Server.Addr)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[dispatch]")
	fmt.Fprintf(w, "  day_start         = %s\n", cfg.Dispatch.DayStart)
	fmt.Fprintf(w, "  day_end           = %s\n", cfg.Dispatch.DayEnd)
	fmt.Fprintf(w, "  workdays          = %s\n", strings.Join(cfg.Dispatch.Workdays, ", "))
	fmt.Fprintln(w, "\n[capacity]")
	fmt.Fprintf(w, "  driver_hours      = %g\n", cfg.Capacity.DriverHours)
	fmt.Fprintf(w, "  vehicle_hours     = %g\n", cfg.Capacity.VehicleHours)
	fmt.Fprintf(w, "  partner_hours     = %g\n", cfg.Capacity.PartnerHours)
	fmt.Fprintln(w, "\n[report]")
	fmt.Fprintf(w, "  date_range        = %d\n", cfg.Report.DateRange)
	fmt.Fprintf(w, "  min_gap_hours     = %g\n", cfg.Report.MinGapHours)
	fmt.Fprintf(w, "  include_completed = %t\n", cfg.Report.IncludeCompleted)
	fmt.Fprintf(w, "  include_confirmed = %t\n", cfg.Report.IncludeConfirmed)
	fmt.Fprintf(w, "  include_pending   = %t\n", cfg.Report.IncludePending)
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider          = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model             = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url          = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  driver            = %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverPostgres {
		fmt.Fprintf(w, "  postgres_dsn      = %s\n", redactDSN(cfg.Storage.PostgresDSN))
	} else {
		fmt.Fprintf(w, "  db_path           = %s\n", cfg.Storage.DBPath)
	}
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr              = %s\n", cfg.Server.Addr)
	fmt.Fprintf(w, "  allowed_origins   = %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme             = %s\n", cfg.UI.Theme)
}

// redactDSN hides the password of a postgres URL.
func redactDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	colon := strings.Index(creds, ":")
	if colon < 0 {
		return dsn
	}
	return dsn[:scheme+3] + creds[:colon] + ":****" + dsn[at:]
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(reader *bufio.Reader, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Printf("  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptFloat(reader *bufio.Reader, label string, current float64) float64 {
	for {
		value := promptValue(reader, label, strconv.FormatFloat(current, 'f', -1, 64))
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		fmt.Printf("  Invalid number %q.\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
