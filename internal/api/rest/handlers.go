package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/shreshth-s/vlr-api/internal/cache"
	"github.com/shreshth-s/vlr-api/internal/config"
	"github.com/shreshth-s/vlr-api/internal/roles"
	"github.com/shreshth-s/vlr-api/internal/scrape"
	"github.com/shreshth-s/vlr-api/internal/tiers"
	"github.com/shreshth-s/vlr-api/internal/vlr"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	scraper *vlr.Scraper
	cache   cache.Store
	cfg     *config.Config
	logger  zerolog.Logger
}

// NewHandler creates a new handler
func NewHandler(scraper *vlr.Scraper, store cache.Store, cfg *config.Config, logger zerolog.Logger) *Handler {
	return &Handler{
		scraper: scraper,
		cache:   store,
		cfg:     cfg,
		logger:  logger.With().Str("component", "rest").Logger(),
	}
}

// response is the envelope every endpoint answers with.
type response struct {
	Success   bool           `json:"success"`
	Data      any            `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	Code      string         `json:"code,omitempty"`
	Cached    bool           `json:"cached,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
	Debug     *vlr.DebugInfo `json:"debug,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, resp response) {
	resp.Timestamp = time.Now().UTC().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func respondData(w http.ResponseWriter, data any, cached bool, debug *vlr.DebugInfo) {
	respondJSON(w, http.StatusOK, response{
		Success: true,
		Data:    data,
		Cached:  cached,
		Debug:   debug,
	})
}

func respondError(w http.ResponseWriter, status int, message, code string) {
	respondJSON(w, status, response{
		Success: false,
		Error:   message,
		Code:    code,
	})
}

// respondScrapeError maps the scrape error taxonomy to HTTP statuses.
func (h *Handler) respondScrapeError(w http.ResponseWriter, err error) {
	var reqErr *scrape.RequestError

	switch {
	case errors.Is(err, scrape.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, scrape.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.As(err, &reqErr):
		respondError(w, http.StatusBadGateway, reqErr.Error(), "UPSTREAM_ERROR")
	default:
		h.logger.Error().Err(err).Msg("scrape failed")
		respondError(w, http.StatusInternalServerError, err.Error(), "SCRAPE_ERROR")
	}
}

// withCache runs fetch behind the cache. On a hit the stored JSON is replayed
// verbatim; on a miss the fresh result is stored for the class TTL. Cache
// failures degrade to a plain fetch.
func (h *Handler) withCache(w http.ResponseWriter, r *http.Request, class cache.Class, key string,
	fetch func(ctx context.Context) (any, *vlr.DebugInfo, error)) {

	if raw, ok := h.cache.Get(r.Context(), key); ok {
		respondData(w, json.RawMessage(raw), true, nil)
		return
	}

	data, debug, err := fetch(r.Context())
	if err != nil {
		h.respondScrapeError(w, err)
		return
	}

	if raw, err := json.Marshal(data); err == nil {
		h.cache.Set(r.Context(), key, raw, class)
	}

	respondData(w, data, false, debug)
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "vlr-api",
		"version": "1.0.0",
	})
}

// Index documents the API surface at the root path.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]any{
		"name": "vlr-api",
		"endpoints": []string{
			"GET /health",
			"GET /api/v1/matches/live",
			"GET /api/v1/matches/upcoming",
			"GET /api/v1/matches/results",
			"GET /api/v1/matches/{matchID}",
			"GET /api/v1/players/search?q=",
			"GET /api/v1/players/stats",
			"GET /api/v1/players/{playerID}",
			"GET /api/v1/players/{playerID}/matches?page=",
			"GET /api/v1/players/{playerID}/agents?timespan=",
			"GET /api/v1/players/{playerID}/role",
			"GET /api/v1/teams/search?q=",
			"GET /api/v1/teams/rankings",
			"GET /api/v1/teams/rankings/{region}",
			"GET /api/v1/teams/regions",
			"GET /api/v1/teams/tiers",
			"GET /api/v1/teams/{teamID}",
			"GET /api/v1/teams/{teamID}/matches?group=&page=",
			"GET /api/v1/events",
			"GET /api/v1/events/search?q=",
			"GET /api/v1/events/{eventID}",
		},
	}, false, nil)
}

// GetMatches serves the live, upcoming and results listings. listType is
// fixed per route.
func (h *Handler) GetMatches(listType string, class cache.Class) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.withCache(w, r, class, cache.Key("matches", listType), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
			matches, debug, err := h.scraper.Matches(ctx, listType)
			return matches, debug, err
		})
	}
}

// GetMatch returns full details for one match.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchID"]

	h.withCache(w, r, cache.ClassMatch, cache.Key("match", matchID), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		details, err := h.scraper.MatchDetails(ctx, matchID)
		return details, nil, err
	})
}

// SearchPlayers searches players by name.
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing query parameter 'q'", "BAD_REQUEST")
		return
	}

	players, err := h.scraper.SearchPlayers(r.Context(), query)
	if err != nil {
		h.respondScrapeError(w, err)
		return
	}
	respondData(w, players, false, nil)
}

// GetPlayerStats serves the stats leaderboard with query-string filters.
func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := vlr.StatsFilter{
		EventID:     q.Get("event_id"),
		EventSeries: q.Get("event_series"),
		Region:      q.Get("region"),
		Country:     q.Get("country"),
		Agent:       q.Get("agent"),
		Map:         q.Get("map"),
		Timespan:    q.Get("timespan"),
		Tier:        q.Get("tier"),
		TierStatus:  q.Get("tier_status"),
	}
	if v := q.Get("min_rounds"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid min_rounds", "BAD_REQUEST")
			return
		}
		filter.MinRounds = n
	}
	if v := q.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			respondError(w, http.StatusBadRequest, "invalid min_rating", "BAD_REQUEST")
			return
		}
		filter.MinRating = f
	}

	key := cache.Key("stats", filter.EventID, filter.EventSeries, filter.Region, filter.Country,
		q.Get("min_rounds"), q.Get("min_rating"), filter.Agent, filter.Map, filter.Timespan,
		filter.Tier, filter.TierStatus)

	h.withCache(w, r, cache.ClassStats, key, func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		entries, debug, err := h.scraper.Leaderboard(ctx, filter)
		return entries, debug, err
	})
}

// GetPlayer returns a player profile.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerID"]

	h.withCache(w, r, cache.ClassPlayer, cache.Key("player", playerID), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		profile, err := h.scraper.PlayerProfile(ctx, playerID)
		return profile, nil, err
	})
}

// GetPlayerMatches returns one page of a player's match history.
func (h *Handler) GetPlayerMatches(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerID"]
	page := queryPage(r)

	h.withCache(w, r, cache.ClassPlayer, cache.Key("player", playerID, "matches", strconv.Itoa(page)), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		matches, hasMore, err := h.scraper.PlayerMatches(ctx, playerID, page)
		if err != nil {
			return nil, nil, err
		}
		return map[string]any{
			"matches": matches,
			"hasMore": hasMore,
			"page":    page,
		}, nil, nil
	})
}

// GetPlayerAgents returns a player's per-agent aggregates.
func (h *Handler) GetPlayerAgents(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerID"]
	timespan := r.URL.Query().Get("timespan")

	h.withCache(w, r, cache.ClassPlayer, cache.Key("player", playerID, "agents", timespan), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		agents, err := h.scraper.PlayerAgentStats(ctx, playerID, timespan)
		return agents, nil, err
	})
}

// GetPlayerRole derives a role report from a player's recent match history.
// The limit query parameter bounds how many matches are examined (default 20,
// max 50).
func (h *Handler) GetPlayerRole(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerID"]

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 50 {
		limit = 50
	}

	h.withCache(w, r, cache.ClassPlayer, cache.Key("player", playerID, "role", strconv.Itoa(limit)), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		lines, err := h.collectPlayerLines(ctx, playerID, limit)
		if err != nil {
			return nil, nil, err
		}

		return map[string]any{
			"role": roles.Analyze(lines),
			"igl":  roles.GuessIGL(lines),
		}, nil, nil
	})
}

// collectPlayerLines pulls up to limit of the player's recent matches and
// extracts their per-map stat lines.
func (h *Handler) collectPlayerLines(ctx context.Context, playerID string, limit int) ([]vlr.PlayerMatchStats, error) {
	profile, err := h.scraper.PlayerProfile(ctx, playerID)
	if err != nil {
		return nil, err
	}

	var lines []vlr.PlayerMatchStats
	seen := 0
	for page := 1; seen < limit; page++ {
		entries, hasMore, err := h.scraper.PlayerMatches(ctx, playerID, page)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if seen >= limit {
				break
			}
			seen++
			details, err := h.scraper.MatchDetails(ctx, entry.MatchID)
			if err != nil {
				continue
			}
			for _, mapResult := range details.Maps {
				for _, line := range append(mapResult.Team1Players, mapResult.Team2Players...) {
					if line.PlayerName == profile.Name {
						lines = append(lines, line)
					}
				}
			}
		}

		if !hasMore || len(entries) == 0 {
			break
		}
	}

	return lines, nil
}

// SearchTeams searches teams by name.
func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing query parameter 'q'", "BAD_REQUEST")
		return
	}

	teams, err := h.scraper.SearchTeams(r.Context(), query)
	if err != nil {
		h.respondScrapeError(w, err)
		return
	}
	respondData(w, teams, false, nil)
}

// GetRankings serves the world rankings, or a region's when the path carries
// one.
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	region := mux.Vars(r)["region"]
	if region != "" && !vlr.ValidRegion(region) {
		respondError(w, http.StatusBadRequest, "unknown region: "+region, "BAD_REQUEST")
		return
	}

	h.withCache(w, r, cache.ClassRankings, cache.Key("rankings", region), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		teams, debug, err := h.scraper.TeamRankings(ctx, region)
		return teams, debug, err
	})
}

// GetRegions lists the ranking regions the source understands.
func (h *Handler) GetRegions(w http.ResponseWriter, r *http.Request) {
	respondData(w, vlr.Regions, false, nil)
}

// GetTiers lists the static tier-one roster, optionally filtered by status
// and region.
func (h *Handler) GetTiers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teams := tiers.List(tiers.Status(q.Get("status")), tiers.Region(q.Get("region")))
	respondData(w, teams, false, nil)
}

// GetTeam returns a team profile.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamID"]

	h.withCache(w, r, cache.ClassTeam, cache.Key("team", teamID), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		profile, err := h.scraper.TeamProfile(ctx, teamID)
		return profile, nil, err
	})
}

// GetTeamMatches returns one page of a team's match history.
func (h *Handler) GetTeamMatches(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamID"]
	group := r.URL.Query().Get("group")
	if group != "" && group != "upcoming" && group != "completed" {
		respondError(w, http.StatusBadRequest, "group must be 'upcoming' or 'completed'", "BAD_REQUEST")
		return
	}
	page := queryPage(r)

	h.withCache(w, r, cache.ClassTeam, cache.Key("team", teamID, "matches", group, strconv.Itoa(page)), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		matches, hasMore, err := h.scraper.TeamMatches(ctx, teamID, group, page)
		if err != nil {
			return nil, nil, err
		}
		return map[string]any{
			"matches": matches,
			"hasMore": hasMore,
			"page":    page,
		}, nil, nil
	})
}

// GetEvents lists events, optionally filtered by ?status=.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", "ongoing", "upcoming", "completed":
	default:
		respondError(w, http.StatusBadRequest, "status must be 'ongoing', 'upcoming' or 'completed'", "BAD_REQUEST")
		return
	}

	h.withCache(w, r, cache.ClassResults, cache.Key("events", status), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		events, err := h.scraper.Events(ctx, vlr.EventStatus(status))
		return events, nil, err
	})
}

// SearchEvents searches events by name.
func (h *Handler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing query parameter 'q'", "BAD_REQUEST")
		return
	}

	events, err := h.scraper.SearchEvents(r.Context(), query)
	if err != nil {
		h.respondScrapeError(w, err)
		return
	}
	respondData(w, events, false, nil)
}

// GetEvent returns full details for one event.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventID"]

	h.withCache(w, r, cache.ClassResults, cache.Key("event", eventID), func(ctx context.Context) (any, *vlr.DebugInfo, error) {
		details, err := h.scraper.EventDetails(ctx, eventID)
		return details, nil, err
	})
}

func queryPage(r *http.Request) int {
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		return p
	}
	return 1
}
