package datasource

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/gridiron-edge/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// NFLVerse release file data source type
	NFLVerseSourceType SourceType = "nflverse"
	// Odds API data source type
	OddsAPISourceType SourceType = "oddsapi"
)

// Sources bundles the configured data sources for the refresh and analysis paths
type Sources struct {
	Plays    PlayByPlaySource
	Schedule ScheduleSource
	Odds     OddsSource
}

// Factory creates data source implementations based on configuration
type Factory struct {
	logger *log.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewNFLVerseSource creates the play-by-play and schedule source
func (f *Factory) NewNFLVerseSource() (*NFLVerseClient, error) {
	if f.config == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	src := f.config.Sources

	// Play-by-play exports run to hundreds of megabytes; give downloads room
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(src.PlayByPlay.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = 3

	httpClient := NewRateLimitedHTTPClient(httpCfg, f.logger)
	return NewNFLVerseClient(httpClient, src.PlayByPlay.BaseURL, src.Schedule.URL, f.logger), nil
}

// NewOddsSource creates the market odds source
func (f *Factory) NewOddsSource() (*OddsAPIClient, error) {
	if f.config == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	src := f.config.Sources.OddsAPI
	if src.APIKey == "" {
		return nil, fmt.Errorf("odds API key is required")
	}

	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(src.TimeoutSeconds) * time.Second
	httpCfg.RateLimit = src.RateLimit

	httpClient := NewRateLimitedHTTPClient(httpCfg, f.logger)

	opts := OddsAPIOptions{
		BaseURL:    src.BaseURL,
		APIKey:     src.APIKey,
		Regions:    src.Regions,
		Markets:    src.Markets,
		Bookmakers: src.Bookmakers,
		CacheTTL:   time.Duration(src.CacheTTLSeconds) * time.Second,
	}

	return NewOddsAPIClient(httpClient, opts, f.logger), nil
}

// NewSources creates all configured data sources
func (f *Factory) NewSources() (*Sources, error) {
	nflverse, err := f.NewNFLVerseSource()
	if err != nil {
		return nil, fmt.Errorf("failed to create nflverse source: %w", err)
	}

	odds, err := f.NewOddsSource()
	if err != nil {
		return nil, fmt.Errorf("failed to create odds source: %w", err)
	}

	if f.logger != nil {
		f.logger.Printf("Created data sources: %s, %s", nflverse.Name(), odds.Name())
	}

	return &Sources{
		Plays:    nflverse,
		Schedule: nflverse,
		Odds:     odds,
	}, nil
}
