package config

import (
	"os"
	"strings"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the navigation service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port for the monitoring server.
// - APIKey: The API key for Google providers (required when any provider is "google").
// - Units: The default unit system for formatted distances.
// - Geocoder/Completer/Router: Provider selection and endpoints.
// - DatabaseDSN: Optional Postgres DSN enabling the geocode cache.
// - SimulatorInterval: The cadence of simulated position fixes.
type Config struct {
	Env               string        `mapstructure:"env"`
	Port              int           `mapstructure:"port"`
	APIKey            string        `mapstructure:"api_key"`
	Units             string        `mapstructure:"units"`
	Geocoder          string        `mapstructure:"geocoder"`
	Completer         string        `mapstructure:"completer"`
	Router            string        `mapstructure:"router"`
	NominatimURL      string        `mapstructure:"nominatim_url"`
	OSRMURL           string        `mapstructure:"osrm_url"`
	RateLimit         int           `mapstructure:"rate_limit"`
	DatabaseDSN       string        `mapstructure:"database_dsn"`
	SimulatorInterval time.Duration `mapstructure:"simulator_interval"`
	Origin            string        `mapstructure:"origin"`
	Destination       string        `mapstructure:"destination"`
}

// UnitSystem returns the parsed default unit system.
func (c *Config) UnitSystem() models.UnitSystem {
	units, err := models.ParseUnitSystem(c.Units)
	if err != nil {
		panic("failed to parse unit system from configuration, must be metric or imperial")
	}
	return units
}

// MustLoad loads the configuration from the environment, layered over an
// optional .env file and an optional YAML file named by WAYFINDER_CONFIG.
// It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetEnvPrefix("WAYFINDER")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "production")
	vpr.SetDefault("port", 8080)
	vpr.SetDefault("api_key", "")
	vpr.SetDefault("units", "metric")
	vpr.SetDefault("geocoder", "nominatim")
	vpr.SetDefault("completer", "nominatim")
	vpr.SetDefault("router", "osrm")
	vpr.SetDefault("nominatim_url", "")
	vpr.SetDefault("osrm_url", "")
	vpr.SetDefault("rate_limit", 1)
	vpr.SetDefault("database_dsn", "")
	vpr.SetDefault("simulator_interval", "1s")
	vpr.SetDefault("origin", "")
	vpr.SetDefault("destination", "")

	if path := os.Getenv("WAYFINDER_CONFIG"); path != "" {
		vpr.SetConfigFile(path)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			panic("failed to read configuration file: " + err.Error())
		}
	}

	var cfg Config
	if err := vpr.Unmarshal(&cfg); err != nil {
		panic("failed to unmarshal configuration: " + err.Error())
	}

	if _, err := models.ParseUnitSystem(cfg.Units); err != nil {
		panic("failed to parse unit system from configuration, must be metric or imperial")
	}
	if cfg.SimulatorInterval <= 0 {
		panic("failed to parse simulator interval from configuration")
	}

	return &cfg
}
