// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Sources  SourcesConfig  `mapstructure:"sources" validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Refresh  RefreshConfig  `mapstructure:"refresh" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Health   HealthConfig   `mapstructure:"health" validate:"required"`
	Features FeaturesConfig `mapstructure:"features"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP API server configuration
type ServerConfig struct {
	Port                int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	IdleTimeoutSeconds  int `mapstructure:"idle_timeout_seconds" validate:"required,gt=0"`
}

// DatabaseConfig represents database connection configuration. The database
// is optional; when disabled, refresh results are never archived.
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required_if=Enabled true"`
	User               string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// SourcesConfig represents the external data source configuration
type SourcesConfig struct {
	PlayByPlay PlayByPlayConfig `mapstructure:"play_by_play" validate:"required"`
	Schedule   ScheduleConfig   `mapstructure:"schedule" validate:"required"`
	OddsAPI    OddsAPIConfig    `mapstructure:"odds_api" validate:"required"`
}

// PlayByPlayConfig represents the play-by-play CSV release source
type PlayByPlayConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	Season         int    `mapstructure:"season" validate:"required,min=1999"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// ScheduleConfig represents the season schedule source
type ScheduleConfig struct {
	URL            string `mapstructure:"url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// OddsAPIConfig represents the betting odds vendor configuration
type OddsAPIConfig struct {
	BaseURL         string   `mapstructure:"base_url" validate:"required,url"`
	APIKey          string   `mapstructure:"api_key"`
	Regions         string   `mapstructure:"regions" validate:"required"`
	Markets         []string `mapstructure:"markets" validate:"required,min=1,markets"`
	Bookmakers      []string `mapstructure:"bookmakers" validate:"required,min=1"`
	TimeoutSeconds  int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds int      `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RateLimit       float64  `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// PipelineConfig represents the projection pipeline parameters
type PipelineConfig struct {
	MinDrivePlays   int            `mapstructure:"min_drive_plays" validate:"required,gt=0"`
	EdgeWeight      float64        `mapstructure:"edge_weight" validate:"required,gt=0,lte=1"`
	AdvantageClamp  float64        `mapstructure:"advantage_clamp" validate:"required,gt=0,lte=1"`
	FieldGoalFactor float64        `mapstructure:"field_goal_factor" validate:"required,gt=0,lte=1"`
	UsageWeight     float64        `mapstructure:"usage_weight" validate:"required,gt=0,lte=1"`
	AllocationFloor float64        `mapstructure:"allocation_floor" validate:"required,gt=0,lt=1"`
	Baseline        BaselineConfig `mapstructure:"baseline" validate:"required"`
}

// BaselineConfig represents the fixed league-average drive rates
type BaselineConfig struct {
	RedZoneScoring   float64 `mapstructure:"red_zone_scoring" validate:"required,gt=0"`
	RedZoneAllow     float64 `mapstructure:"red_zone_allow" validate:"required,gt=0"`
	AllDrivesScoring float64 `mapstructure:"all_drives_scoring" validate:"required,gt=0"`
	AllDrivesAllow   float64 `mapstructure:"all_drives_allow" validate:"required,gt=0"`
}

// RefreshConfig represents the scheduled refresh configuration
type RefreshConfig struct {
	Cron           string `mapstructure:"cron" validate:"required,cronexpr"`
	TimeoutMinutes int    `mapstructure:"timeout_minutes" validate:"required,gt=0"`
	ArchiveEnabled bool   `mapstructure:"archive_enabled"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the probe server configuration
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	WebsocketEnabled  bool `mapstructure:"websocket_enabled"`
	RefreshOnStartup  bool `mapstructure:"refresh_on_startup"`
	PlayerOddsEnabled bool `mapstructure:"player_odds_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
