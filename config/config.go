// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/timesheet-engine/timesheet"
)

// DefaultProjects is the built-in project reference data, used when the
// PROJECTS variable is unset. Projects are owned externally; this seed stands
// in for whatever system of record provides them.
var DefaultProjects = []timesheet.Project{
	{ID: "p1", Name: "Main Project"},
	{ID: "p2", Name: "Side Project"},
	{ID: "p3", Name: "Client X"},
	{ID: "p4", Name: "Training"},
}

type Config struct {
	// HTTP server
	Port string

	// Storage
	DataBackend  string // jsonfile | sqlite | memory
	DataDir      string
	SQLiteDBPath string

	// Compensation
	MonthlySalary decimal.Decimal
	HourlyRate    decimal.Decimal
	ExpectedHours *decimal.Decimal // optional override; nil = contracted hours

	// Reference data
	Projects []timesheet.Project
}

// Load reads configuration from the environment, applying defaults that
// make a bare start work out of the box.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DataBackend:  getEnv("DATA_BACKEND", "jsonfile"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/timesheet.db"),
	}

	var err error
	if cfg.MonthlySalary, err = getEnvDecimal("MONTHLY_SALARY", "3500"); err != nil {
		return nil, err
	}
	if cfg.HourlyRate, err = getEnvDecimal("HOURLY_RATE", "19.89"); err != nil {
		return nil, err
	}

	if raw := os.Getenv("EXPECTED_HOURS"); raw != "" {
		expected, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid EXPECTED_HOURS %q: %w", raw, err)
		}
		cfg.ExpectedHours = &expected
	}

	if raw := os.Getenv("PROJECTS"); raw != "" {
		projects, err := parseProjects(raw)
		if err != nil {
			return nil, err
		}
		cfg.Projects = projects
	} else {
		cfg.Projects = DefaultProjects
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "jsonfile", "sqlite", "memory":
	default:
		problems = append(problems, fmt.Sprintf("invalid DATA_BACKEND %q: must be jsonfile, sqlite or memory", c.DataBackend))
	}

	if c.MonthlySalary.IsNegative() {
		problems = append(problems, "MONTHLY_SALARY must not be negative")
	}
	if c.HourlyRate.IsNegative() {
		problems = append(problems, "HOURLY_RATE must not be negative")
	}
	if c.ExpectedHours != nil && c.ExpectedHours.IsNegative() {
		problems = append(problems, "EXPECTED_HOURS must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Summary returns the compensation parameters for the summary engine.
func (c *Config) Summary() timesheet.Config {
	return timesheet.Config{
		ExpectedHoursOverride: c.ExpectedHours,
		MonthlySalary:         c.MonthlySalary,
		HourlyRate:            c.HourlyRate,
	}
}

// parseProjects decodes "id:name,id:name" reference data.
func parseProjects(raw string) ([]timesheet.Project, error) {
	var projects []timesheet.Project
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, name, ok := strings.Cut(part, ":")
		if !ok || id == "" || name == "" {
			return nil, fmt.Errorf("invalid PROJECTS element %q: want id:name", part)
		}
		projects = append(projects, timesheet.Project{ID: id, Name: name})
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("PROJECTS is set but contains no projects")
	}
	return projects, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
