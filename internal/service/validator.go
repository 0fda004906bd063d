package service

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// DataValidator validates play and market line data
type DataValidator struct {
	logger *log.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *log.Logger) *DataValidator {
	return &DataValidator{logger: logger}
}

// ValidatePlay validates play data for required fields and constraints
func (v *DataValidator) ValidatePlay(play *models.Play) []string {
	var errors []string

	// Check required fields
	if play.GameID == "" {
		errors = append(errors, "game_id is required")
	}

	if play.Season <= 0 {
		errors = append(errors, fmt.Sprintf("season must be positive, got %d", play.Season))
	}

	if play.Week < 0 || play.Week > 22 {
		errors = append(errors, fmt.Sprintf("week out of range (0-22), got %d", play.Week))
	}

	// A snap cannot be scored as both a rush and a pass
	if play.IsRush && play.IsPass {
		errors = append(errors, "play flagged as both rush and pass")
	}

	// Validate optional fields if present
	if play.Drive != nil && *play.Drive <= 0 {
		errors = append(errors, fmt.Sprintf("drive must be positive, got %d", *play.Drive))
	}

	if play.YardsToGoal != nil && (*play.YardsToGoal < 0 || *play.YardsToGoal > 100) {
		errors = append(errors, fmt.Sprintf("yards_to_goal out of range (0-100), got %g", *play.YardsToGoal))
	}

	return errors
}

// ValidateDataset validates a freshly fetched play set as a whole. Individual
// bad rows are tolerated; the dataset is rejected only when it is empty, from
// the wrong season, or broken across the board.
func (v *DataValidator) ValidateDataset(plays []models.Play, season int) []string {
	var errors []string

	if len(plays) == 0 {
		errors = append(errors, "dataset contains no plays")
		return errors
	}

	wrongSeason := 0
	missingGame := 0
	badPlays := 0
	for i := range plays {
		if plays[i].Season != season {
			wrongSeason++
		}
		if plays[i].GameID == "" {
			missingGame++
		}
		if len(v.ValidatePlay(&plays[i])) > 0 {
			badPlays++
		}
	}

	if wrongSeason > 0 {
		errors = append(errors, fmt.Sprintf("%d plays belong to a season other than %d", wrongSeason, season))
	}

	if missingGame == len(plays) {
		errors = append(errors, "every play is missing a game_id")
	}

	// Vendor exports always carry some malformed rows; only a majority is fatal
	if badPlays > len(plays)/2 {
		errors = append(errors, fmt.Sprintf("%d of %d plays failed validation", badPlays, len(plays)))
	}

	if badPlays > 0 && v.logger != nil {
		v.logger.Printf("Dataset validation: %d of %d plays carry field-level issues", badPlays, len(plays))
	}

	return errors
}

// ValidateLine validates a market line for required fields and constraints
func (v *DataValidator) ValidateLine(line *models.MarketLine) []string {
	var errors []string

	// Check required fields
	if line.AwayTeam == "" || line.HomeTeam == "" {
		errors = append(errors, "both team abbreviations are required")
	}

	if line.AwayTeam == line.HomeTeam {
		errors = append(errors, fmt.Sprintf("away and home team are identical: %s", line.AwayTeam))
	}

	if line.Bookmaker == "" {
		errors = append(errors, "bookmaker is required")
	}

	if !line.Total.IsPositive() {
		errors = append(errors, fmt.Sprintf("game total must be positive, got %s", line.Total))
	}

	if line.Total.LessThan(decimal.NewFromInt(20)) || line.Total.GreaterThan(decimal.NewFromInt(80)) {
		errors = append(errors, fmt.Sprintf("game total out of range (20-80), got %s", line.Total))
	}

	// Spreads from a single book mirror each other; a half-point of shade
	// is the most ever seen in practice
	if line.AwaySpread.Add(line.HomeSpread).Abs().GreaterThan(decimal.NewFromInt(1)) {
		errors = append(errors, fmt.Sprintf("spreads do not mirror: away %s, home %s", line.AwaySpread, line.HomeSpread))
	}

	return errors
}

// IsValidTeamAbbreviation checks if a team abbreviation is in expected format
func (v *DataValidator) IsValidTeamAbbreviation(team string) bool {
	if len(team) < 2 || len(team) > 3 {
		return false
	}
	for _, r := range team {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// IsValidSeasonType checks if a season type code is valid
func (v *DataValidator) IsValidSeasonType(seasonType string) bool {
	validTypes := map[string]bool{
		"REG":  true,
		"POST": true,
		"PRE":  true,
	}

	return validTypes[seasonType]
}
