// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	// Create a new viper instance
	v := viper.New()
	v.SetConfigType("yaml")

	// Read the expanded configuration
	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set environment variable prefix
	v.SetEnvPrefix("GRIDIRON_EDGE")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal configuration into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	// Set configuration file path with default
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix("GRIDIRON_EDGE")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		// Expand environment variables in the configuration (${VAR} syntax)
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	// Unmarshal configuration into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults seeds every tunable the service can run without.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gridiron-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", 5001)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.idle_timeout_seconds", 60)

	v.SetDefault("sources.play_by_play.base_url", "https://github.com/nflverse/nflverse-data/releases/download")
	v.SetDefault("sources.play_by_play.season", 2025)
	v.SetDefault("sources.play_by_play.timeout_seconds", 120)
	v.SetDefault("sources.schedule.url", "https://github.com/nflverse/nfldata/raw/master/data/games.csv")
	v.SetDefault("sources.schedule.timeout_seconds", 60)
	v.SetDefault("sources.odds_api.base_url", "https://api.the-odds-api.com/v4")
	v.SetDefault("sources.odds_api.regions", "us")
	v.SetDefault("sources.odds_api.markets", []string{"totals", "spreads"})
	v.SetDefault("sources.odds_api.bookmakers", []string{"fanduel", "draftkings", "betmgm", "caesars", "betrivers"})
	v.SetDefault("sources.odds_api.timeout_seconds", 30)
	v.SetDefault("sources.odds_api.cache_ttl_seconds", 300)
	v.SetDefault("sources.odds_api.rate_limit", 2)

	v.SetDefault("pipeline.min_drive_plays", 2)
	v.SetDefault("pipeline.edge_weight", 0.25)
	v.SetDefault("pipeline.advantage_clamp", 0.30)
	v.SetDefault("pipeline.field_goal_factor", 0.75)
	v.SetDefault("pipeline.usage_weight", 0.85)
	v.SetDefault("pipeline.allocation_floor", 0.01)
	v.SetDefault("pipeline.baseline.red_zone_scoring", 59.0)
	v.SetDefault("pipeline.baseline.red_zone_allow", 59.0)
	v.SetDefault("pipeline.baseline.all_drives_scoring", 23.3)
	v.SetDefault("pipeline.baseline.all_drives_allow", 23.3)

	v.SetDefault("refresh.cron", "0 6 * * *")
	v.SetDefault("refresh.timeout_minutes", 15)
	v.SetDefault("refresh.archive_enabled", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("health.port", 8080)

	v.SetDefault("features.websocket_enabled", true)
	v.SetDefault("features.refresh_on_startup", true)
	v.SetDefault("features.player_odds_enabled", true)
}

// ReloadFromEnv reloads specific configuration values from environment variables
func ReloadFromEnv(cfg *Config) error {
	v := viper.New()

	// Set environment variable prefix
	v.SetEnvPrefix("GRIDIRON_EDGE")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Check for specific environment variables and update the config
	if envPath := os.Getenv("GRIDIRON_EDGE_CONFIG_PATH"); envPath != "" {
		newCfg, err := Load(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}

	return nil
}
