// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("markets", validateMarkets)
	_ = v.RegisterValidation("cronexpr", validateCronExpr)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateMarkets validates the odds market keys
func validateMarkets(fl validator.FieldLevel) bool {
	markets := fl.Field().Interface().([]string)

	// Check if markets array is not empty
	if len(markets) == 0 {
		return false
	}

	validMarkets := map[string]bool{
		"totals":  true,
		"spreads": true,
		"h2h":     true,
	}

	// Check if all markets are valid
	for _, market := range markets {
		if !validMarkets[market] {
			return false
		}
	}
	return true
}

// validateCronExpr validates standard five-field cron expressions
func validateCronExpr(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// Archiving requires somewhere to archive to
	if cfg.Refresh.ArchiveEnabled && !cfg.Database.Enabled {
		return fmt.Errorf("refresh archive_enabled requires database.enabled")
	}

	// The projection market needs both a total and spreads
	hasTotals, hasSpreads := false, false
	for _, m := range cfg.Sources.OddsAPI.Markets {
		switch m {
		case "totals":
			hasTotals = true
		case "spreads":
			hasSpreads = true
		}
	}
	if !hasTotals || !hasSpreads {
		return fmt.Errorf("odds_api markets must include both 'totals' and 'spreads'")
	}

	// Validate production environment requirements
	if cfg.IsProduction() {
		if cfg.Database.Enabled && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
		if cfg.Sources.OddsAPI.APIKey == "" {
			return fmt.Errorf("odds_api api_key is required in production")
		}
	}

	// Validate connection pool settings
	if cfg.Database.Enabled && cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "cronexpr":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid cron expression, got '%v'\n", field, value)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		// Production must have SSL enabled
		if cfg.Database.Enabled && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires database SSL mode to be 'require' or 'verify-full'")
		}

		// Production should not have placeholder credentials
		if isTestCredential(cfg.Sources.OddsAPI.APIKey) {
			return fmt.Errorf("production environment should not use a placeholder odds API key")
		}
	}

	return nil
}

// isTestCredential checks if a credential looks like a test credential
func isTestCredential(credential string) bool {
	testPatterns := []string{
		"test", "demo", "example", "placeholder", "YOUR_",
	}

	for _, pattern := range testPatterns {
		if match, _ := regexp.MatchString("(?i)"+pattern, credential); match {
			return true
		}
	}

	return false
}
