package vlr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateMatches(t *testing.T) {
	// empty live and upcoming listings are normal
	v := validateMatches(nil, "live")
	require.True(t, v.Valid)
	require.Empty(t, v.Errors)

	v = validateMatches(nil, "upcoming")
	require.True(t, v.Valid)

	// an empty results listing means broken selectors
	v = validateMatches(nil, "results")
	require.False(t, v.Valid)
	require.Len(t, v.Errors, 1)

	// mostly-missing team names only warns
	matches := []MatchSummary{
		{ID: "1", Team1: MatchTeam{Name: "A"}, Team2: MatchTeam{Name: "B"}},
		{ID: "2"},
		{ID: "3"},
	}
	v = validateMatches(matches, "results")
	require.True(t, v.Valid)
	require.Len(t, v.Warnings, 1)
}

func TestValidateLeaderboard(t *testing.T) {
	v := validateLeaderboard(nil)
	require.False(t, v.Valid)

	few := []LeaderboardEntry{
		{Player: Player{Name: "a"}, Stats: PlayerStats{Rating: 1.1}, Agents: []string{"jett"}},
		{Player: Player{Name: "b"}, Stats: PlayerStats{Rating: 0.9}, Agents: []string{"omen"}},
	}
	v = validateLeaderboard(few)
	require.True(t, v.Valid)
	require.Len(t, v.Warnings, 1) // suspiciously few

	zeroed := make([]LeaderboardEntry, 6)
	for i := range zeroed {
		zeroed[i] = LeaderboardEntry{Player: Player{Name: "p"}, Agents: []string{}}
	}
	v = validateLeaderboard(zeroed)
	require.True(t, v.Valid)
	// zero ratings and missing agents across the board
	require.Len(t, v.Warnings, 2)
}

func TestValidateRankings(t *testing.T) {
	v := validateRankings(nil, "na")
	require.False(t, v.Valid)

	regional := []Team{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	v = validateRankings(regional, "na")
	require.True(t, v.Valid)
	require.Empty(t, v.Warnings)

	// the global listing should never be that small
	v = validateRankings(regional, "all")
	require.True(t, v.Valid)
	require.Len(t, v.Warnings, 1)

	unnamed := []Team{{ID: "1"}, {ID: "2", Name: "B"}}
	v = validateRankings(unnamed, "na")
	require.True(t, v.Valid)
	require.Len(t, v.Warnings, 1)
}

func TestNewValidationResultNonNilSlices(t *testing.T) {
	v := newValidationResult(nil, nil)
	require.True(t, v.Valid)
	require.NotNil(t, v.Warnings)
	require.NotNil(t, v.Errors)
}
