package models

// teamAbbreviations maps the full franchise names used by odds vendors to the
// abbreviations used in play-by-play data.
var teamAbbreviations = map[string]string{
	"Arizona Cardinals":     "ARI",
	"Atlanta Falcons":       "ATL",
	"Baltimore Ravens":      "BAL",
	"Buffalo Bills":         "BUF",
	"Carolina Panthers":     "CAR",
	"Chicago Bears":         "CHI",
	"Cincinnati Bengals":    "CIN",
	"Cleveland Browns":      "CLE",
	"Dallas Cowboys":        "DAL",
	"Denver Broncos":        "DEN",
	"Detroit Lions":         "DET",
	"Green Bay Packers":     "GB",
	"Houston Texans":        "HOU",
	"Indianapolis Colts":    "IND",
	"Jacksonville Jaguars":  "JAX",
	"Kansas City Chiefs":    "KC",
	"Las Vegas Raiders":     "LV",
	"Los Angeles Chargers":  "LAC",
	"Los Angeles Rams":      "LA",
	"Miami Dolphins":        "MIA",
	"Minnesota Vikings":     "MIN",
	"New England Patriots":  "NE",
	"New Orleans Saints":    "NO",
	"New York Giants":       "NYG",
	"New York Jets":         "NYJ",
	"Philadelphia Eagles":   "PHI",
	"Pittsburgh Steelers":   "PIT",
	"San Francisco 49ers":   "SF",
	"Seattle Seahawks":      "SEA",
	"Tampa Bay Buccaneers":  "TB",
	"Tennessee Titans":      "TEN",
	"Washington Commanders": "WAS",
}

// TeamAbbreviation resolves a vendor's full franchise name to its
// play-by-play abbreviation. The second return is false for unknown names.
func TeamAbbreviation(fullName string) (string, bool) {
	abbr, ok := teamAbbreviations[fullName]
	return abbr, ok
}

// TeamAbbreviations returns a copy of the full-name to abbreviation mapping.
func TeamAbbreviations() map[string]string {
	out := make(map[string]string, len(teamAbbreviations))
	for name, abbr := range teamAbbreviations {
		out[name] = abbr
	}
	return out
}
