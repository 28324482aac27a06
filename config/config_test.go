package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timesheet-engine/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "jsonfile", cfg.DataBackend)
	assert.True(t, decimal.NewFromInt(3500).Equal(cfg.MonthlySalary))
	assert.True(t, decimal.NewFromFloat(19.89).Equal(cfg.HourlyRate))
	assert.Nil(t, cfg.ExpectedHours)
	assert.Equal(t, config.DefaultProjects, cfg.Projects)
}

func TestLoad_ExpectedHoursOverride(t *testing.T) {
	t.Setenv("EXPECTED_HOURS", "160")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.ExpectedHours)
	assert.True(t, decimal.NewFromInt(160).Equal(*cfg.ExpectedHours))
	assert.NotNil(t, cfg.Summary().ExpectedHoursOverride)
}

func TestLoad_ProjectsParsing(t *testing.T) {
	t.Setenv("PROJECTS", "acme:Acme Corp, lab:Research Lab")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Len(t, cfg.Projects, 2)
	assert.Equal(t, "acme", cfg.Projects[0].ID)
	assert.Equal(t, "Acme Corp", cfg.Projects[0].Name)
	assert.Equal(t, "Research Lab", cfg.Projects[1].Name)
}

func TestLoad_InvalidProjects(t *testing.T) {
	t.Setenv("PROJECTS", "justanid")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":           "not-a-port",
		"DATA_BACKEND":   "postgres",
		"MONTHLY_SALARY": "-100",
		"HOURLY_RATE":    "abc",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := config.Load()
			require.Error(t, err)
		})
	}
}
