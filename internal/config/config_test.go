package config_test

import (
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/wayfinder/internal/config"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad_Defaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "metric", cfg.Units)
	assert.Equal(t, "nominatim", cfg.Geocoder)
	assert.Equal(t, "nominatim", cfg.Completer)
	assert.Equal(t, "osrm", cfg.Router)
	assert.Equal(t, 1, cfg.RateLimit)
	assert.Equal(t, time.Second, cfg.SimulatorInterval)
	assert.Equal(t, models.UnitsMetric, cfg.UnitSystem())
}

func TestMustLoad_FromEnvironment(t *testing.T) {
	t.Setenv("WAYFINDER_ENV", "local")
	t.Setenv("WAYFINDER_PORT", "9090")
	t.Setenv("WAYFINDER_API_KEY", "testAPIKey")
	t.Setenv("WAYFINDER_UNITS", "imperial")
	t.Setenv("WAYFINDER_GEOCODER", "google")
	t.Setenv("WAYFINDER_ROUTER", "google")
	t.Setenv("WAYFINDER_SIMULATOR_INTERVAL", "250ms")
	t.Setenv("WAYFINDER_DATABASE_DSN", "postgres://wayfinder@localhost:5432/wayfinder")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, "imperial", cfg.Units)
	assert.Equal(t, "google", cfg.Geocoder)
	assert.Equal(t, "google", cfg.Router)
	assert.Equal(t, 250*time.Millisecond, cfg.SimulatorInterval)
	assert.Equal(t, "postgres://wayfinder@localhost:5432/wayfinder", cfg.DatabaseDSN)
	assert.Equal(t, models.UnitsImperial, cfg.UnitSystem())
}

func TestMustLoad_FromFile(t *testing.T) {
	defer filet.CleanUp(t)

	content := "env: development\nunits: imperial\nrouter: google\napi_key: fileKey\n"
	file := filet.TmpFile(t, "", content)
	t.Setenv("WAYFINDER_CONFIG", file.Name())

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "imperial", cfg.Units)
	assert.Equal(t, "google", cfg.Router)
	assert.Equal(t, "fileKey", cfg.APIKey)
}

func TestMustLoad_EnvironmentOverridesFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", "units: imperial\n")
	t.Setenv("WAYFINDER_CONFIG", file.Name())
	t.Setenv("WAYFINDER_UNITS", "metric")

	cfg := config.MustLoad()

	assert.Equal(t, "metric", cfg.Units)
}

func TestMustLoad_MissingFileError(t *testing.T) {
	t.Setenv("WAYFINDER_CONFIG", "/nonexistent/wayfinder.yaml")

	assert.Panics(t, func() {
		config.MustLoad()
	})
}

func TestMustLoad_UnitsError(t *testing.T) {
	t.Setenv("WAYFINDER_UNITS", "error_value")

	assert.PanicsWithValue(t, "failed to parse unit system from configuration, must be metric or imperial", func() {
		config.MustLoad()
	})
}

func TestMustLoad_IntervalError(t *testing.T) {
	t.Setenv("WAYFINDER_SIMULATOR_INTERVAL", "error_value")

	assert.Panics(t, func() {
		config.MustLoad()
	})
}
