// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Dispatch DispatchConfig `toml:"dispatch"`
	Capacity CapacityConfig `toml:"capacity"`
	Report   ReportConfig   `toml:"report"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
	Server   ServerConfig   `toml:"server"`
	UI       UIConfig       `toml:"ui"`
}

// DispatchConfig holds the operating hours of the dispatch office.
type DispatchConfig struct {
	Workdays []string `toml:"workdays"`  // e.g., ["monday", "tuesday", ...]
	DayStart string   `toml:"day_start"` // e.g., "06:00"
	DayEnd   string   `toml:"day_end"`   // e.g., "22:00"
}

// CapacityConfig holds assumed bookable hours per day.
type CapacityConfig struct {
	DriverHours  float64 `toml:"driver_hours"`
	VehicleHours float64 `toml:"vehicle_hours"`
	PartnerHours float64 `toml:"partner_hours"`
}

// ReportConfig holds the default utilization report options.
type ReportConfig struct {
	DateRange        int     `toml:"date_range"` // days ahead of today
	MinGapHours      float64 `toml:"min_gap_hours"`
	IncludeCompleted bool    `toml:"include_completed"`
	IncludeConfirmed bool    `toml:"include_confirmed"`
	IncludePending   bool    `toml:"include_pending"`
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "openai", "ollama", "lmstudio", "none"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Driver      string `toml:"driver"` // "sqlite" or "postgres"
	DBPath      string `toml:"db_path"`
	PostgresDSN string `toml:"postgres_dsn"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Dispatch: DispatchConfig{
			Workdays: []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
			DayStart: "06:00",
			DayEnd:   "22:00",
		},
		Capacity: CapacityConfig{
			DriverHours:  8,
			VehicleHours: 12,
			PartnerHours: 10,
		},
		Report: ReportConfig{
			DateRange:        7,
			MinGapHours:      2,
			IncludeConfirmed: true,
			IncludePending:   true,
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fleetdesk.db"
	}
	return filepath.Join(home, ".local", "share", "fleetdesk", "fleetdesk.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "fleetdesk", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies
// env overrides. A .env file next to the working directory is read first so
// its values count as environment.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from a dotenv file if it exists. Variables
// already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("parsing env file: %w", err)
	}
	return nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	str := map[string]*string{
		"FLEETDESK_DAY_START":    &cfg.Dispatch.DayStart,
		"FLEETDESK_DAY_END":      &cfg.Dispatch.DayEnd,
		"FLEETDESK_LLM_PROVIDER": &cfg.LLM.Provider,
		"FLEETDESK_LLM_MODEL":    &cfg.LLM.Model,
		"FLEETDESK_LLM_BASE_URL": &cfg.LLM.BaseURL,
		"FLEETDESK_DB_DRIVER":    &cfg.Storage.Driver,
		"FLEETDESK_DB_PATH":      &cfg.Storage.DBPath,
		"FLEETDESK_POSTGRES_DSN": &cfg.Storage.PostgresDSN,
		"FLEETDESK_ADDR":         &cfg.Server.Addr,
		"FLEETDESK_UI_THEME":     &cfg.UI.Theme,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	// Supabase exposes the connection string as DATABASE_URL.
	if cfg.Storage.PostgresDSN == "" {
		cfg.Storage.PostgresDSN = os.Getenv("DATABASE_URL")
	}

	if v := os.Getenv("FLEETDESK_WORKDAYS"); v != "" {
		cfg.Dispatch.Workdays = splitList(v)
	}
	if v := os.Getenv("FLEETDESK_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	hours := map[string]*float64{
		"FLEETDESK_DRIVER_HOURS":  &cfg.Capacity.DriverHours,
		"FLEETDESK_VEHICLE_HOURS": &cfg.Capacity.VehicleHours,
		"FLEETDESK_PARTNER_HOURS": &cfg.Capacity.PartnerHours,
		"FLEETDESK_MIN_GAP_HOURS": &cfg.Report.MinGapHours,
	}
	for key, dst := range hours {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = f
	}

	if v := os.Getenv("FLEETDESK_DATE_RANGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FLEETDESK_DATE_RANGE: %w", err)
		}
		cfg.Report.DateRange = n
	}

	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Dispatch.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Dispatch.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Dispatch.DayStart >= c.Dispatch.DayEnd {
		return errors.New("day_start must be before day_end")
	}

	if len(c.Dispatch.Workdays) == 0 {
		return errors.New("at least one workday must be configured")
	}
	for _, day := range c.Dispatch.Workdays {
		if !isValidWeekday(day) {
			return fmt.Errorf("invalid workday: %s", day)
		}
	}

	if c.Capacity.DriverHours <= 0 || c.Capacity.VehicleHours <= 0 || c.Capacity.PartnerHours <= 0 {
		return errors.New("capacity hours must be positive")
	}
	if c.Capacity.DriverHours > 24 || c.Capacity.VehicleHours > 24 || c.Capacity.PartnerHours > 24 {
		return errors.New("capacity hours cannot exceed 24")
	}
	if c.Report.DateRange < 1 {
		return errors.New("date_range must be at least 1 day")
	}
	if c.Report.MinGapHours < 0 {
		return errors.New("min_gap_hours cannot be negative")
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("postgres_dsn must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Storage.Driver)
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' || !isDigits(t[0:2]) || !isDigits(t[3:5]) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if t[0:2] > "23" || t[3:5] > "59" {
		return fmt.Errorf("%s is not a valid time, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func isValidWeekday(day string) bool {
	return validWeekdays[strings.ToLower(day)]
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
