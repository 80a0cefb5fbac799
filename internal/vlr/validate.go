package vlr

import "fmt"

// ValidationResult classifies a parse as trustworthy or suspect. Errors mean
// the selectors are presumed broken; warnings flag degraded extraction but
// never affect validity.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

func newValidationResult(warnings, errors []string) ValidationResult {
	if warnings == nil {
		warnings = []string{}
	}
	if errors == nil {
		errors = []string{}
	}
	return ValidationResult{
		Valid:    len(errors) == 0,
		Warnings: warnings,
		Errors:   errors,
	}
}

// validateMatches checks a match-listing parse. An empty live or upcoming
// listing is normal; an empty results listing means the selectors broke,
// since the source always has historical matches.
func validateMatches(matches []MatchSummary, listType string) ValidationResult {
	var warnings, errors []string

	if len(matches) == 0 && listType == "results" {
		errors = append(errors, "No matches found - selectors may be broken")
	}

	missingNames := 0
	for _, m := range matches {
		if m.Team1.Name == "" || m.Team2.Name == "" {
			missingNames++
		}
	}
	if len(matches) > 0 && missingNames > len(matches)/2 {
		warnings = append(warnings, fmt.Sprintf("%d/%d matches missing team names", missingNames, len(matches)))
	}

	return newValidationResult(warnings, errors)
}

// validateLeaderboard checks a stats-leaderboard parse.
func validateLeaderboard(entries []LeaderboardEntry) ValidationResult {
	var warnings, errors []string

	switch {
	case len(entries) == 0:
		errors = append(errors, "No entries found - selectors may be broken")
	case len(entries) < 5:
		warnings = append(warnings, fmt.Sprintf("Suspiciously few entries (%d)", len(entries)))
	}

	missingNames := 0
	zeroRatings := 0
	noAgents := 0
	for _, e := range entries {
		if e.Player.Name == "" {
			missingNames++
		}
		if e.Stats.Rating == 0 {
			zeroRatings++
		}
		if len(e.Agents) == 0 {
			noAgents++
		}
	}

	if missingNames > 0 {
		warnings = append(warnings, fmt.Sprintf("%d entries missing player names", missingNames))
	}
	if zeroRatings > len(entries)/2 && len(entries) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d/%d entries have zero rating", zeroRatings, len(entries)))
	}
	if noAgents > len(entries)/2 && len(entries) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d/%d entries missing agent data", noAgents, len(entries)))
	}

	return newValidationResult(warnings, errors)
}

// validateRankings checks a team-rankings parse.
func validateRankings(teams []Team, region string) ValidationResult {
	var warnings, errors []string

	if len(teams) == 0 {
		errors = append(errors, fmt.Sprintf("No teams found for region %q - selectors may be broken", region))
	}
	if region == "all" && len(teams) > 0 && len(teams) < 5 {
		warnings = append(warnings, fmt.Sprintf("Suspiciously few teams (%d) in global rankings", len(teams)))
	}

	missingNames := 0
	for _, t := range teams {
		if t.Name == "" {
			missingNames++
		}
	}
	if missingNames > 0 {
		warnings = append(warnings, fmt.Sprintf("%d teams missing names", missingNames))
	}

	return newValidationResult(warnings, errors)
}
