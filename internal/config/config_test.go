// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"os"
	"testing"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	expansionConfigMissingPath   = "testdata/expansion_config_missing.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedNonNilConfig         = "expected non-nil config"
	gridironEdgeName             = "gridiron-edge"
	developmentEnv               = "development"
	invalidEnv                   = "invalid"
	localhostHost                = "localhost"
	postgresPort                 = 5432
	postgresPrefix               = "postgres://"
	testAppName                  = "test-app"
	testDBPassword               = "TEST_DB_PASSWORD"
	testMissingVar               = "TEST_MISSING_VAR"
	expandedSecretValue          = "expanded_secret_value"
	marketsValidationError       = "markets"
	marketsValidationErrorCaps   = "Markets"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != gridironEdgeName {
		t.Errorf("expected app name '%s', got '%s'", gridironEdgeName, cfg.App.Name)
	}

	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}

	if cfg.Database.Host != localhostHost {
		t.Errorf("expected database host '%s', got '%s'", localhostHost, cfg.Database.Host)
	}

	if cfg.Database.Port != postgresPort {
		t.Errorf("expected database port %d, got %d", postgresPort, cfg.Database.Port)
	}

	if cfg.Sources.PlayByPlay.Season != 2025 {
		t.Errorf("expected season 2025, got %d", cfg.Sources.PlayByPlay.Season)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	// Set an environment variable
	os.Setenv("GRIDIRON_EDGE_APP_NAME", testAppName)
	defer os.Unsetenv("GRIDIRON_EDGE_APP_NAME")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestLoadWithDefaults tests loading defaults when no file is present
func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Pipeline.EdgeWeight != 0.25 {
		t.Errorf("expected default edge weight 0.25, got %v", cfg.Pipeline.EdgeWeight)
	}
	if cfg.Pipeline.Baseline.RedZoneScoring != 59.0 {
		t.Errorf("expected default red zone baseline 59.0, got %v", cfg.Pipeline.Baseline.RedZoneScoring)
	}
	if cfg.Refresh.Cron != "0 6 * * *" {
		t.Errorf("expected default refresh cron, got %q", cfg.Refresh.Cron)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	err = Validate(cfg)
	if err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.App.Environment = invalidEnv
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidMarkets tests validation of invalid market names
func TestValidateInvalidMarkets(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	// Set invalid markets
	cfg.Sources.OddsAPI.Markets = []string{"FOO", "BAR"}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid markets")
	}

	if !containsSubstring(err.Error(), marketsValidationError) && !containsSubstring(err.Error(), marketsValidationErrorCaps) {
		t.Errorf("expected markets validation error, got: %v", err)
	}
}

// TestValidateEmptyMarkets tests validation of empty markets array
func TestValidateEmptyMarkets(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	// Set empty markets
	cfg.Sources.OddsAPI.Markets = []string{}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for empty markets")
	}
}

// TestValidateMarketsNeedTotalsAndSpreads tests the projection market requirement
func TestValidateMarketsNeedTotalsAndSpreads(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	// totals alone cannot produce implied team points
	cfg.Sources.OddsAPI.Markets = []string{"totals"}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error when spreads market is missing")
	}

	cfg.Sources.OddsAPI.Markets = []string{"totals", "spreads", "h2h"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no error for totals+spreads+h2h, got %v", err)
	}
}

// TestValidateInvalidCron tests validation of the refresh schedule
func TestValidateInvalidCron(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Refresh.Cron = "not a cron"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid cron expression")
	}
}

// TestValidateArchiveNeedsDatabase tests the archive cross-field rule
func TestValidateArchiveNeedsDatabase(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Refresh.ArchiveEnabled = true
	cfg.Database.Enabled = false
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for archive without database")
	}
}

// TestGetDatabaseDSN tests DSN generation
func TestGetDatabaseDSN(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	dsn := cfg.GetDatabaseDSN()
	if dsn == "" {
		t.Fatal("expected non-empty DSN")
	}

	if !containsSubstring(dsn, postgresPrefix) {
		t.Errorf("expected DSN to start with '%s', got '%s'", postgresPrefix, dsn)
	}
}

// TestIsDevelopment tests environment check function
func TestIsDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: developmentEnv},
	}

	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false")
	}
}

// TestIsProduction tests production environment check
func TestIsProduction(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production"},
	}

	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false")
	}
}

// TestIsStaging tests staging environment check
func TestIsStaging(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "staging"},
	}

	if !cfg.IsStaging() {
		t.Error("expected IsStaging() to return true")
	}

	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false")
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests environment variable expansion in config file
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	// Set environment variable
	os.Setenv(testDBPassword, expandedSecretValue)
	defer os.Unsetenv(testDBPassword)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config with expansion, got %v", err)
	}

	if cfg.Database.Password != expandedSecretValue {
		t.Errorf("expected password '%s' from environment expansion, got '%s'", expandedSecretValue, cfg.Database.Password)
	}
}

// TestLoadConfigMissingEnvironmentVariable tests handling of missing environment variables
func TestLoadConfigMissingEnvironmentVariable(t *testing.T) {
	// Ensure environment variable is not set
	os.Unsetenv(testMissingVar)

	cfg, err := Load(expansionConfigMissingPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	// os.ExpandEnv replaces missing variables with an empty string
	if cfg.Database.Password != "" {
		t.Logf("note: missing env var became: %q", cfg.Database.Password)
	}
}

// Helper function
func containsSubstring(str, substr string) bool {
	for i := 0; i <= len(str)-len(substr); i++ {
		if str[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
