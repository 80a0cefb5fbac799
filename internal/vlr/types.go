package vlr

// Domain models reconstructed fresh on every uncached fetch. All records are
// plain values with no shared state; optional fields marshal away when empty.
// Score is the one pointer field: nil means the source still shows a dash
// placeholder, which is different from a real 0.

// MatchStatus classifies a match by page context and score presence.
type MatchStatus string

const (
	StatusUpcoming  MatchStatus = "upcoming"
	StatusLive      MatchStatus = "live"
	StatusCompleted MatchStatus = "completed"
)

// MatchTeam is one side of a match card.
type MatchTeam struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Tag         string `json:"tag,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Score       *int   `json:"score,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// MatchSummary is a single row from a match listing page.
type MatchSummary struct {
	ID        string      `json:"id"`
	Team1     MatchTeam   `json:"team1"`
	Team2     MatchTeam   `json:"team2"`
	Status    MatchStatus `json:"status"`
	Event     string      `json:"event"`
	EventLogo string      `json:"eventLogo,omitempty"`
	Stage     string      `json:"stage,omitempty"`
	MatchTime string      `json:"matchTime,omitempty"`
	ETA       string      `json:"eta,omitempty"`
}

// MatchDetails extends a summary with per-map results from the match page.
type MatchDetails struct {
	MatchSummary
	Format  string      `json:"format,omitempty"`
	Maps    []MapResult `json:"maps"`
	Streams []Stream    `json:"streams,omitempty"`
	VODs    []string    `json:"vods,omitempty"`
}

// Stream is a broadcast link on a match page.
type Stream struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MapResult holds one map of a series, ordered as shown on the source. The
// aggregate "all maps" pseudo-row is excluded.
type MapResult struct {
	Map          string             `json:"map"`
	Team1Score   int                `json:"team1Score"`
	Team2Score   int                `json:"team2Score"`
	Team1Players []PlayerMatchStats `json:"team1Players"`
	Team2Players []PlayerMatchStats `json:"team2Players"`
	Picked       string             `json:"picked,omitempty"`
}

// PlayerStats is the full performance line of a player. The per-round and
// clutch aggregates are only populated from the stats leaderboard; match pages
// carry the core fields only.
type PlayerStats struct {
	Rounds        int     `json:"rounds"`
	Rating        float64 `json:"rating"`
	ACS           float64 `json:"acs"`
	Kills         int     `json:"kills"`
	Deaths        int     `json:"deaths"`
	Assists       int     `json:"assists"`
	KillDeathDiff int     `json:"killDeathDiff"`
	KAST          float64 `json:"kast"`
	ADR           float64 `json:"adr"`
	Headshot      float64 `json:"headshot"`
	FirstKills    int     `json:"firstKills"`
	FirstDeaths   int     `json:"firstDeaths"`

	KPR  float64 `json:"kpr,omitempty"`
	APR  float64 `json:"apr,omitempty"`
	FKPR float64 `json:"fkpr,omitempty"`
	FDPR float64 `json:"fdpr,omitempty"`

	ClutchWins     int     `json:"clutchWins,omitempty"`
	ClutchAttempts int     `json:"clutchAttempts,omitempty"`
	ClutchPercent  float64 `json:"clutchPercent,omitempty"`
	KillsMax       int     `json:"killsMax,omitempty"`
}

// PlayerMatchStats is one player's line on one map of a match.
type PlayerMatchStats struct {
	PlayerName string    `json:"playerName"`
	Agent      string    `json:"agent"`
	AgentRole  AgentRole `json:"agentRole"`
	PlayerStats
}

// Player identifies a player across listings.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RealName    string `json:"realName,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	Team        string `json:"team,omitempty"`
	TeamID      string `json:"teamId,omitempty"`
	Image       string `json:"image,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Twitch      string `json:"twitch,omitempty"`
}

// PlayerProfile is a player page with history sections.
type PlayerProfile struct {
	Player
	Earnings    float64            `json:"earnings,omitempty"`
	TeamHistory []TeamHistoryEntry `json:"teamHistory"`
	PastEvents  []EventPlacement   `json:"pastEvents"`
}

// TeamHistoryEntry is a past-teams row, de-duplicated by team ID.
type TeamHistoryEntry struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Logo     string `json:"logo,omitempty"`
	JoinDate string `json:"joinDate,omitempty"`
}

// EventPlacement is a past-events row, de-duplicated by event ID.
type EventPlacement struct {
	EventID   string  `json:"eventId"`
	EventName string  `json:"eventName"`
	Placement string  `json:"placement,omitempty"`
	Prize     float64 `json:"prize,omitempty"`
}

// PlayerMatchEntry is a row from a player's match-history page.
type PlayerMatchEntry struct {
	MatchID string           `json:"matchId"`
	Event   string           `json:"event"`
	Date    string           `json:"date"`
	Team1   PlayerMatchTeam  `json:"team1"`
	Team2   PlayerMatchTeam  `json:"team2"`
}

// PlayerMatchTeam is the reduced team shape on history rows.
type PlayerMatchTeam struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// AgentStat is one agent row from a player page.
type AgentStat struct {
	Name   string    `json:"name"`
	Img    string    `json:"img,omitempty"`
	Role   AgentRole `json:"role"`
	Rounds int       `json:"rounds"`
	Rating float64   `json:"rating"`
	ACS    float64   `json:"acs"`
	KD     float64   `json:"kd"`
}

// Team is a team as it appears on rankings and search listings.
type Team struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Tag         string      `json:"tag,omitempty"`
	Logo        string      `json:"logo,omitempty"`
	Country     string      `json:"country,omitempty"`
	CountryCode string      `json:"countryCode,omitempty"`
	Rank        int         `json:"rank,omitempty"`
	Rating      float64     `json:"rating,omitempty"`
	Earnings    float64     `json:"earnings,omitempty"`
	Record      *TeamRecord `json:"record,omitempty"`
}

// TeamRecord is a win/loss pair.
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// RosterMember is one row of a team roster. Role carries the tag text shown
// on the page ("IGL", "coach", ...).
type RosterMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RealName    string `json:"realName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	Role        string `json:"role,omitempty"`
}

// TeamRoster partitions members into players and staff by matching the role
// tag against a fixed staff-keyword set. Best effort: unlisted labels
// classify as players.
type TeamRoster struct {
	Players []RosterMember `json:"players"`
	Staff   []RosterMember `json:"staff"`
}

// TeamProfile is a full team page.
type TeamProfile struct {
	Team
	Website         string         `json:"website,omitempty"`
	Twitter         string         `json:"twitter,omitempty"`
	Roster          *TeamRoster    `json:"roster,omitempty"`
	RecentMatches   []MatchSummary `json:"recentMatches,omitempty"`
	UpcomingMatches []MatchSummary `json:"upcomingMatches,omitempty"`
}

// EventStatus classifies an event by its free-text status label.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

// Event is a row from the events listing.
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    EventStatus `json:"status"`
	Region    string      `json:"region,omitempty"`
	PrizePool string      `json:"prizePool,omitempty"`
	Dates     string      `json:"dates,omitempty"`
	Logo      string      `json:"logo,omitempty"`
	Location  string      `json:"location,omitempty"`
}

// EventDetails is a full event page.
type EventDetails struct {
	Event
	Teams     []Team         `json:"teams,omitempty"`
	Matches   []MatchSummary `json:"matches,omitempty"`
	Standings []Standing     `json:"standings,omitempty"`
}

// Standing is one row of an event group table. Position falls back to the row
// index when the cell is unparsable.
type Standing struct {
	Position  int  `json:"position"`
	Team      Team `json:"team"`
	Wins      int  `json:"wins"`
	Losses    int  `json:"losses"`
	RoundDiff int  `json:"roundDiff,omitempty"`
}

// LeaderboardEntry bundles a player with their agent pool and aggregated
// stats from the leaderboard table.
type LeaderboardEntry struct {
	Player Player      `json:"player"`
	Agents []string    `json:"agents"`
	Stats  PlayerStats `json:"stats"`
}

// StatsFilter narrows the stats leaderboard query.
type StatsFilter struct {
	EventID     string
	EventSeries string
	Region      string
	Country     string
	MinRounds   int
	MinRating   float64
	Agent       string
	Map         string
	Timespan    string // "30", "60", "90" or "all"
	Tier        string // "t1" or "t2"
	TierStatus  string // "partner" or "ascended", narrows t1
}
