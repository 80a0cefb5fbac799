package debug

// CaptureType names one source page family a sample can be taken from.
type CaptureType string

const (
	CaptureMatchesLive     CaptureType = "matches-live"
	CaptureMatchesUpcoming CaptureType = "matches-upcoming"
	CaptureMatchesResults  CaptureType = "matches-results"
	CaptureMatchDetail     CaptureType = "match-detail"
	CapturePlayerSearch    CaptureType = "player-search"
	CapturePlayerProfile   CaptureType = "player-profile"
	CapturePlayerStats     CaptureType = "player-stats"
	CapturePlayerAgents    CaptureType = "player-agents"
	CapturePlayerMatches   CaptureType = "player-matches"
	CaptureTeamSearch      CaptureType = "team-search"
	CaptureTeamRankings    CaptureType = "team-rankings"
	CaptureTeamProfile     CaptureType = "team-profile"
	CaptureTeamMatches     CaptureType = "team-matches"
	CaptureEventsList      CaptureType = "events-list"
	CaptureEventDetail     CaptureType = "event-detail"
	CaptureEventSearch     CaptureType = "event-search"
)

// CapturePaths maps each capture type to the default source path template
// used by the manual capture endpoint. ":id" and ":matchId" are substituted
// from query parameters.
var CapturePaths = map[CaptureType]string{
	CaptureMatchesLive:     "/matches",
	CaptureMatchesUpcoming: "/matches",
	CaptureMatchesResults:  "/matches/results",
	CaptureMatchDetail:     "/:matchId",
	CapturePlayerSearch:    "/search?type=players&q=",
	CapturePlayerProfile:   "/player/:id",
	CapturePlayerStats:     "/stats",
	CapturePlayerAgents:    "/player/:id",
	CapturePlayerMatches:   "/player/matches/:id",
	CaptureTeamSearch:      "/search?type=teams&q=",
	CaptureTeamRankings:    "/rankings",
	CaptureTeamProfile:     "/team/:id",
	CaptureTeamMatches:     "/team/matches/:id",
	CaptureEventsList:      "/events",
	CaptureEventDetail:     "/event/:id",
	CaptureEventSearch:     "/search?type=events&q=",
}

// CaptureTypes lists every capture type in display order.
var CaptureTypes = []CaptureType{
	CaptureMatchesLive,
	CaptureMatchesUpcoming,
	CaptureMatchesResults,
	CaptureMatchDetail,
	CapturePlayerSearch,
	CapturePlayerProfile,
	CapturePlayerStats,
	CapturePlayerAgents,
	CapturePlayerMatches,
	CaptureTeamSearch,
	CaptureTeamRankings,
	CaptureTeamProfile,
	CaptureTeamMatches,
	CaptureEventsList,
	CaptureEventDetail,
	CaptureEventSearch,
}

// Valid reports whether t is one of the known capture types.
func (t CaptureType) Valid() bool {
	_, ok := CapturePaths[t]
	return ok
}
