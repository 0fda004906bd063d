package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/yourusername/gridiron-edge/internal/models"
)

const (
	oddsAPISourceName = "oddsapi"
	nflSportKey       = "americanfootball_nfl"

	oddsCacheKey = "odds:nfl"
)

// OddsAPIOptions configures the odds vendor client
type OddsAPIOptions struct {
	BaseURL    string
	APIKey     string
	Regions    string
	Markets    []string
	Bookmakers []string // priority order; first present wins
	CacheTTL   time.Duration
}

// OddsAPIClient implements OddsSource for the-odds-api v4. Responses are
// cached for the configured TTL because every request burns vendor quota.
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	regions    string
	markets    []string
	bookmakers []string
	cache      *cache.Cache
	cacheTTL   time.Duration
	logger     *log.Logger

	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// oddsAPIEvent is one game in the vendor payload
type oddsAPIEvent struct {
	ID           string             `json:"id"`
	SportKey     string             `json:"sport_key"`
	CommenceTime time.Time          `json:"commence_time"`
	HomeTeam     string             `json:"home_team"`
	AwayTeam     string             `json:"away_team"`
	Bookmakers   []oddsAPIBookmaker `json:"bookmakers"`
}

// oddsAPIBookmaker is one bookmaker's markets for an event
type oddsAPIBookmaker struct {
	Key        string          `json:"key"`
	Title      string          `json:"title"`
	LastUpdate time.Time       `json:"last_update"`
	Markets    []oddsAPIMarket `json:"markets"`
}

// oddsAPIMarket is one market (totals, spreads) with its outcomes
type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

// oddsAPIOutcome is one priced outcome; Point is absent for moneyline markets
type oddsAPIOutcome struct {
	Name  string           `json:"name"`
	Price float64          `json:"price"`
	Point *decimal.Decimal `json:"point,omitempty"`
}

// NewOddsAPIClient creates a new odds vendor client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, opts OddsAPIOptions, logger *log.Logger) *OddsAPIClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	markets := opts.Markets
	if len(markets) == 0 {
		markets = []string{"totals", "spreads"}
	}
	bookmakers := opts.Bookmakers
	if len(bookmakers) == 0 {
		bookmakers = []string{"fanduel", "draftkings", "betmgm", "caesars", "betrivers"}
	}
	regions := opts.Regions
	if regions == "" {
		regions = "us"
	}

	var responseCache *cache.Cache
	if opts.CacheTTL > 0 {
		responseCache = cache.New(opts.CacheTTL, opts.CacheTTL*2)
	}

	return &OddsAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		regions:    regions,
		markets:    markets,
		bookmakers: bookmakers,
		cache:      responseCache,
		cacheTTL:   opts.CacheTTL,
		logger:     logger,
	}
}

// FetchLines retrieves the current totals and spreads for all priceable games
func (c *OddsAPIClient) FetchLines(ctx context.Context) (*OddsResult, error) {
	if c.cache != nil {
		if cached, found := c.cache.Get(oddsCacheKey); found {
			if result, ok := cached.(*OddsResult); ok {
				c.recordHit()
				hit := *result
				hit.CacheHit = true
				return &hit, nil
			}
		}
		c.recordMiss()
	}

	url := fmt.Sprintf("%s/sports/%s/odds?regions=%s&markets=%s&oddsFormat=american&apiKey=%s",
		c.baseURL, nflSportKey, c.regions, strings.Join(c.markets, ","), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeNetworkError, "failed to fetch odds", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeRateLimitExceeded, "request quota exhausted", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var events []oddsAPIEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	result := &OddsResult{
		Lines:          make([]models.MarketLine, 0, len(events)),
		QuotaRemaining: parseQuotaHeader(resp.Header),
	}

	for i := range events {
		line, err := c.convertEvent(&events[i])
		if err != nil {
			result.Skipped++
			c.logger.Printf("Skipping event %s (%s @ %s): %v", events[i].ID, events[i].AwayTeam, events[i].HomeTeam, err)
			continue
		}
		result.Lines = append(result.Lines, *line)
	}

	if c.cache != nil {
		c.cache.Set(oddsCacheKey, result, c.cacheTTL)
	}

	return result, nil
}

// Name returns the data source name
func (c *OddsAPIClient) Name() string {
	return oddsAPISourceName
}

// CacheStats returns response cache hit and miss counts
func (c *OddsAPIClient) CacheStats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hitCount, c.missCount
}

func (c *OddsAPIClient) recordHit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hitCount++
}

func (c *OddsAPIClient) recordMiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.missCount++
}

// convertEvent builds a MarketLine from the first priority bookmaker present.
// When that bookmaker's markets are incomplete the event is dropped rather
// than falling back to a lower-priority book, keeping each line single-sourced.
func (c *OddsAPIClient) convertEvent(ev *oddsAPIEvent) (*models.MarketLine, error) {
	homeAbbr, ok := models.TeamAbbreviation(ev.HomeTeam)
	if !ok {
		return nil, fmt.Errorf("unmapped home team %q", ev.HomeTeam)
	}

	awayAbbr, ok := models.TeamAbbreviation(ev.AwayTeam)
	if !ok {
		return nil, fmt.Errorf("unmapped away team %q", ev.AwayTeam)
	}

	book := c.pickBookmaker(ev.Bookmakers)
	if book == nil {
		return nil, fmt.Errorf("no priority bookmaker present")
	}

	total, ok := totalPoint(book)
	if !ok {
		return nil, fmt.Errorf("bookmaker %s has no usable totals market", book.Key)
	}

	awaySpread, homeSpread, ok := spreadPoints(book, ev.AwayTeam, ev.HomeTeam)
	if !ok {
		return nil, fmt.Errorf("bookmaker %s has no usable spreads market", book.Key)
	}

	return &models.MarketLine{
		EventID:      ev.ID,
		Bookmaker:    book.Key,
		CommenceTime: ev.CommenceTime,
		AwayTeam:     awayAbbr,
		HomeTeam:     homeAbbr,
		AwayTeamName: ev.AwayTeam,
		HomeTeamName: ev.HomeTeam,
		Total:        total,
		AwaySpread:   awaySpread,
		HomeSpread:   homeSpread,
	}, nil
}

// pickBookmaker returns the first configured bookmaker present in the event
func (c *OddsAPIClient) pickBookmaker(books []oddsAPIBookmaker) *oddsAPIBookmaker {
	for _, key := range c.bookmakers {
		for i := range books {
			if books[i].Key == key {
				return &books[i]
			}
		}
	}
	return nil
}

// findMarket returns the bookmaker's market with the given key
func findMarket(book *oddsAPIBookmaker, key string) *oddsAPIMarket {
	for i := range book.Markets {
		if book.Markets[i].Key == key {
			return &book.Markets[i]
		}
	}
	return nil
}

// totalPoint extracts the game total, preferring the Over outcome's point
func totalPoint(book *oddsAPIBookmaker) (decimal.Decimal, bool) {
	market := findMarket(book, "totals")
	if market == nil || len(market.Outcomes) == 0 {
		return decimal.Decimal{}, false
	}

	for i := range market.Outcomes {
		if market.Outcomes[i].Name == "Over" && market.Outcomes[i].Point != nil {
			return *market.Outcomes[i].Point, true
		}
	}

	if market.Outcomes[0].Point != nil {
		return *market.Outcomes[0].Point, true
	}

	return decimal.Decimal{}, false
}

// spreadPoints extracts both team spreads, matched by full team name. Both
// sides must be present for the line to be usable.
func spreadPoints(book *oddsAPIBookmaker, awayName, homeName string) (away, home decimal.Decimal, ok bool) {
	market := findMarket(book, "spreads")
	if market == nil {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}

	var awayPoint, homePoint *decimal.Decimal
	for i := range market.Outcomes {
		switch market.Outcomes[i].Name {
		case homeName:
			homePoint = market.Outcomes[i].Point
		case awayName:
			awayPoint = market.Outcomes[i].Point
		}
	}

	if awayPoint == nil || homePoint == nil {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}

	return *awayPoint, *homePoint, true
}

// parseQuotaHeader reads the vendor's remaining-request counter when present
func parseQuotaHeader(h http.Header) *int {
	raw := h.Get("X-Requests-Remaining")
	if raw == "" {
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	n := int(f)
	return &n
}
