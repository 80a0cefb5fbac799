package vlr

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/scrape"
	"github.com/shreshth-s/vlr-api/internal/tiers"
)

var (
	dateLikeRe = regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December|joined|left|\d{4})`)
	prizeRe    = regexp.MustCompile(`\$[\d,]+`)

	// team abbreviation sometimes only survives as loose text right after
	// the player link
	teamCellRe = regexp.MustCompile(`</a>\s*(?:<[^>]+>)*\s*([A-Za-z0-9\s]+?)(?:\s*<|$)`)
)

// PlayerProfile returns a player page: identity, socials, team history and
// past events. Earnings are summed from event prizes.
func (s *Scraper) PlayerProfile(ctx context.Context, playerID string) (*PlayerProfile, error) {
	doc, err := s.client.Fetch(ctx, "/player/"+playerID)
	if err != nil {
		return nil, err
	}
	return s.parsePlayerProfile(doc, playerID), nil
}

func (s *Scraper) parsePlayerProfile(doc *goquery.Document, playerID string) *PlayerProfile {
	header := doc.Find(".player-header")

	flag := header.Find(".flag")
	teamLink := header.Find(`a[href*="/team/"]`).First()

	team := scrape.CleanText(teamLink.Find(".wf-title").Text())
	if team == "" {
		team = scrape.CleanText(teamLink.Text())
	}

	pastEvents := s.parsePastEvents(doc)
	earnings := 0.0
	for _, e := range pastEvents {
		earnings += e.Prize
	}

	return &PlayerProfile{
		Player: Player{
			ID:          playerID,
			Name:        scrape.CleanText(header.Find(".wf-title").First().Text()),
			RealName:    scrape.CleanText(header.Find(".player-real-name").Text()),
			Country:     scrape.CleanText(flag.Parent().Text()),
			CountryCode: scrape.ParseCountryCode(flag.AttrOr("class", "")),
			Team:        team,
			TeamID:      scrape.ParseID(teamLink.AttrOr("href", ""), teamIDRe),
			Image:       s.img(header.Find(".wf-avatar img").AttrOr("src", "")),
			Twitter:     header.Find(`a[href*="twitter.com"], a[href*="x.com"]`).AttrOr("href", ""),
			Twitch:      header.Find(`a[href*="twitch.tv"]`).AttrOr("href", ""),
		},
		Earnings:    earnings,
		TeamHistory: s.parseTeamHistory(doc),
		PastEvents:  pastEvents,
	}
}

// parseTeamHistory walks the past-teams sidebar. Entries de-duplicate by
// team ID since the current team shows up in multiple places.
func (s *Scraper) parseTeamHistory(doc *goquery.Document) []TeamHistoryEntry {
	history := []TeamHistoryEntry{}
	seen := map[string]bool{}

	doc.Find(`a.wf-module-item[href*="/team/"]`).Each(func(_ int, item *goquery.Selection) {
		teamID := scrape.ParseID(item.AttrOr("href", ""), teamIDRe)
		if teamID == "" || seen[teamID] {
			return
		}

		teamName := scrape.CleanText(item.Find(".wf-module-item-title, .text-of").First().Text())
		if teamName == "" {
			// fall back to the first child div that doesn't look
			// like a date range
			item.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
				text := strings.TrimSpace(div.Text())
				if text == "" || dateLikeRe.MatchString(text) {
					return true
				}
				teamName = scrape.CleanText(strings.SplitN(text, "\n", 2)[0])
				return false
			})
		}
		if teamName == "" {
			teamName = "Team " + teamID
		}

		seen[teamID] = true
		history = append(history, TeamHistoryEntry{
			TeamID:   teamID,
			TeamName: teamName,
			Logo:     s.img(item.Find("img").AttrOr("src", "")),
			JoinDate: scrape.CleanText(item.Find(".ge-text-light").Text()),
		})
	})

	return history
}

// parsePastEvents walks the event-placements section, de-duplicated by event
// ID.
func (s *Scraper) parsePastEvents(doc *goquery.Document) []EventPlacement {
	events := []EventPlacement{}
	seen := map[string]bool{}

	doc.Find(`a.wf-module-item[href*="/event/"], .mod-event`).Each(func(_ int, item *goquery.Selection) {
		href := item.AttrOr("href", "")
		if href == "" {
			href = item.Find("a").AttrOr("href", "")
		}
		eventID := scrape.ParseID(href, eventIDRe)
		if eventID == "" || seen[eventID] {
			return
		}

		eventName := scrape.CleanText(item.Find(".text-of").First().Text())
		if eventName == "" {
			eventName = scrape.CleanText(item.Find(".wf-module-item-title").Text())
		}
		if eventName == "" {
			eventName = scrape.CleanText(strings.SplitN(strings.TrimSpace(item.Text()), "\n", 2)[0])
		}
		if eventName == "" {
			return
		}

		placement := scrape.CleanText(item.Find(`.placement, .mod-placement, [class*="place"]`).Text())
		if placement == "" {
			placement = scrape.CleanText(item.Find(".ge-text-light").First().Text())
		}

		prize := 0.0
		if m := prizeRe.FindString(item.Text()); m != "" {
			prize = scrape.ParseNumber(strings.TrimPrefix(m, "$"))
		}

		seen[eventID] = true
		events = append(events, EventPlacement{
			EventID:   eventID,
			EventName: eventName,
			Placement: placement,
			Prize:     prize,
		})
	})

	return events
}

// PlayerMatches returns one page of a player's match history plus whether a
// further page exists. The source never exposes a total count.
func (s *Scraper) PlayerMatches(ctx context.Context, playerID string, page int) ([]PlayerMatchEntry, bool, error) {
	doc, err := s.client.Fetch(ctx, fmt.Sprintf("/player/matches/%s/?page=%d", playerID, page))
	if err != nil {
		return nil, false, err
	}

	matches := []PlayerMatchEntry{}
	doc.Find(".m-item").Each(func(_ int, el *goquery.Selection) {
		matchID := scrape.ParseID(el.AttrOr("href", ""), matchItemIDRe)
		if matchID == "" {
			return
		}

		teams := el.Find(".m-item-team")
		matches = append(matches, PlayerMatchEntry{
			MatchID: matchID,
			Event:   scrape.CleanText(el.Find(".m-item-event").Text()),
			Date:    scrape.CleanText(el.Find(".m-item-date").Text()),
			Team1: PlayerMatchTeam{
				Name:  scrape.CleanText(teams.Eq(0).Find(".m-item-team-name").Text()),
				Score: scrape.ParseInt(teams.Eq(0).Find(".m-item-team-score").Text()),
			},
			Team2: PlayerMatchTeam{
				Name:  scrape.CleanText(teams.Eq(1).Find(".m-item-team-name").Text()),
				Score: scrape.ParseInt(teams.Eq(1).Find(".m-item-team-score").Text()),
			},
		})
	})

	hasMore := doc.Find(".pagination .mod-next").Length() > 0
	return matches, hasMore, nil
}

// PlayerAgentStats returns a player's per-agent aggregates over the given
// timespan ("30", "60", "90" or "all").
func (s *Scraper) PlayerAgentStats(ctx context.Context, playerID, timespan string) ([]AgentStat, error) {
	doc, err := s.client.Fetch(ctx, "/player/"+playerID+"/?timespan="+timespanParam(timespan))
	if err != nil {
		return nil, err
	}
	return s.parseAgentStats(doc), nil
}

func (s *Scraper) parseAgentStats(doc *goquery.Document) []AgentStat {
	agents := []AgentStat{}
	doc.Find(".agent-item").Each(func(_ int, el *goquery.Selection) {
		name := strings.TrimSpace(el.Find(".agent-name").Text())
		if name == "" {
			name = el.Find("img").AttrOr("alt", "")
		}
		if name == "" {
			return
		}

		cells := el.Find(".agent-stats span")
		agents = append(agents, AgentStat{
			Name:   name,
			Img:    s.img(el.Find("img").AttrOr("src", "")),
			Role:   GetAgentRole(name),
			Rounds: scrape.ParseInt(cells.Eq(0).Text()),
			Rating: scrape.ParseNumber(cells.Eq(1).Text()),
			ACS:    scrape.ParseNumber(cells.Eq(2).Text()),
			KD:     scrape.ParseNumber(cells.Eq(3).Text()),
		})
	})

	return agents
}

func timespanParam(timespan string) string {
	if timespan == "" || timespan == "all" {
		return "all"
	}
	return timespan + "d"
}

// Leaderboard returns the stats leaderboard with source-side filters applied
// via the query string and the tier filter applied post-hoc from the static
// roster table.
func (s *Scraper) Leaderboard(ctx context.Context, filter StatsFilter) ([]LeaderboardEntry, *DebugInfo, error) {
	params := url.Values{}
	setIf(params, "event_id", filter.EventID)
	setIf(params, "event_series", filter.EventSeries)
	setIf(params, "region", filter.Region)
	setIf(params, "country", filter.Country)
	if filter.MinRounds > 0 {
		params.Set("min_rounds", strconv.Itoa(filter.MinRounds))
	}
	if filter.MinRating > 0 {
		params.Set("min_rating", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}
	setIf(params, "agent", filter.Agent)
	setIf(params, "map", filter.Map)
	if filter.Timespan != "" {
		params.Set("timespan", timespanParam(filter.Timespan))
	}

	path := "/stats/?" + params.Encode()
	res, err := s.client.FetchWithHTML(ctx, path)
	if err != nil {
		s.captureFetchError(debug.CapturePlayerStats, path, err, map[string]any{"filters": filter})
		return nil, nil, err
	}

	entries := s.parseLeaderboard(res.Doc)
	entries = applyTierFilter(entries, filter)

	validation := validateLeaderboard(entries)
	sampleID := s.captureInvalid(debug.CapturePlayerStats, path, res.HTML, validation, map[string]any{"filters": filter})

	return entries, s.debugInfo(sampleID, validation), nil
}

func setIf(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func (s *Scraper) parseLeaderboard(doc *goquery.Document) []LeaderboardEntry {
	entries := []LeaderboardEntry{}

	doc.Find(".wf-table tbody tr").Each(func(_ int, row *goquery.Selection) {
		if entry := s.parseLeaderboardRow(row); entry != nil {
			entries = append(entries, *entry)
		}
	})

	return entries
}

func (s *Scraper) parseLeaderboardRow(row *goquery.Selection) *LeaderboardEntry {
	playerCell := row.Find(".mod-player")
	playerID := scrape.ParseID(playerCell.Find("a").AttrOr("href", ""), playerIDRe)
	playerName := scrape.CleanText(playerCell.Find(".text-of").Text())
	if playerID == "" || playerName == "" {
		return nil
	}

	teamName, teamID := leaderboardTeam(row, playerCell)

	var agents []string
	row.Find(`td.mod-agents img, td img[src*="agent"]`).Each(func(_ int, img *goquery.Selection) {
		if agent := agentFromImg(img); agent != "" {
			agents = append(agents, agent)
		}
	})
	if agents == nil {
		agents = []string{}
	}

	// Leaderboard columns: 0 player, 1 agents, 2 rnd, 3 rating, 4 acs,
	// 5 k:d, 6 kast, 7 adr, 8 kpr, 9 apr, 10 fkpr, 11 fdpr, 12 hs%,
	// 13 cl%, 14 cl, 15 kmax, 16 k, 17 d, 18 a, 19 fk, 20 fd.
	cells := row.Find("td")
	cellText := func(i int) string { return strings.TrimSpace(cells.Eq(i).Text()) }

	clutchWins, clutchAttempts, clutchPercent := parseClutch(cellText(14), cellText(13))

	kills := scrape.ParseInt(cellText(16))
	deaths := scrape.ParseInt(cellText(17))

	return &LeaderboardEntry{
		Player: Player{
			ID:          playerID,
			Name:        playerName,
			Image:       s.img(playerCell.Find("img").AttrOr("src", "")),
			CountryCode: scrape.ParseCountryCode(playerCell.Find(".flag").AttrOr("class", "")),
			Team:        teamName,
			TeamID:      teamID,
		},
		Agents: agents,
		Stats: PlayerStats{
			Rounds:         scrape.ParseInt(cellText(2)),
			Rating:         scrape.ParseNumber(cellText(3)),
			ACS:            scrape.ParseNumber(cellText(4)),
			Kills:          kills,
			Deaths:         deaths,
			Assists:        scrape.ParseInt(cellText(18)),
			KillDeathDiff:  kills - deaths,
			KAST:           scrape.ParseNumber(cellText(6)),
			ADR:            scrape.ParseNumber(cellText(7)),
			Headshot:       scrape.ParseNumber(cellText(12)),
			FirstKills:     scrape.ParseInt(cellText(19)),
			FirstDeaths:    scrape.ParseInt(cellText(20)),
			KPR:            scrape.ParseNumber(cellText(8)),
			APR:            scrape.ParseNumber(cellText(9)),
			FKPR:           scrape.ParseNumber(cellText(10)),
			FDPR:           scrape.ParseNumber(cellText(11)),
			ClutchWins:     clutchWins,
			ClutchAttempts: clutchAttempts,
			ClutchPercent:  clutchPercent,
			KillsMax:       scrape.ParseInt(cellText(15)),
		},
	}
}

// leaderboardTeam recovers the team of a leaderboard row. The site has
// rendered this cell several different ways over time, so the strategies are
// tried in order until one yields text.
func leaderboardTeam(row, playerCell *goquery.Selection) (name, id string) {
	// 1: dedicated team cell
	if teamCell := row.Find(".mod-team"); teamCell.Length() > 0 {
		name = scrape.CleanText(teamCell.Text())
		id = scrape.ParseID(teamCell.Find("a").AttrOr("href", ""), teamIDRe)
	}

	// 2: team link inside the player cell
	if name == "" {
		if link := playerCell.Find(`a[href*="/team/"]`); link.Length() > 0 {
			name = scrape.CleanText(link.Text())
			id = scrape.ParseID(link.AttrOr("href", ""), teamIDRe)
		}
	}

	// 3: country/team div in the current layout
	if name == "" {
		name = scrape.CleanText(playerCell.Find(".stats-player-country").Text())
	}

	// 4: abbreviation in light text
	if name == "" {
		name = scrape.CleanText(playerCell.Find(".ge-text-light").Text())
	}

	// 5: loose text after the player link
	if name == "" {
		if html, err := row.Find("td").First().Html(); err == nil {
			if m := teamCellRe.FindStringSubmatch(html); m != nil {
				name = scrape.CleanText(m[1])
			}
		}
	}

	return name, id
}

// parseClutch decodes the CL ("wins/attempts" or a bare win count) and CL%
// cells. When attempts are known but the percent cell is empty, the percent
// is computed.
func parseClutch(countText, percentText string) (wins, attempts int, percent float64) {
	percent = scrape.ParseNumber(percentText)

	if strings.Contains(countText, "/") {
		parts := strings.SplitN(countText, "/", 2)
		wins = scrape.ParseInt(parts[0])
		attempts = scrape.ParseInt(parts[1])
	} else if countText != "" {
		wins = scrape.ParseInt(countText)
	}

	if attempts > 0 && percent == 0 {
		percent = math.Round(float64(wins) / float64(attempts) * 100)
	}

	return wins, attempts, percent
}

// applyTierFilter keeps tier-one entries (by team ID first, name as
// fallback) for t1, their complement for t2, and everything otherwise. The
// two subsets partition the unfiltered set.
func applyTierFilter(entries []LeaderboardEntry, filter StatsFilter) []LeaderboardEntry {
	switch filter.Tier {
	case "t1":
		kept := make([]LeaderboardEntry, 0, len(entries))
		for _, e := range entries {
			if !tiers.IsT1(e.Player.TeamID) && !tiers.IsT1(e.Player.Team) {
				continue
			}
			if filter.TierStatus != "" {
				team := tiers.Lookup(e.Player.TeamID)
				if team == nil {
					team = tiers.Lookup(e.Player.Team)
				}
				if team == nil || team.Status != tiers.Status(filter.TierStatus) {
					continue
				}
			}
			kept = append(kept, e)
		}
		return kept
	case "t2":
		kept := make([]LeaderboardEntry, 0, len(entries))
		for _, e := range entries {
			if !tiers.IsT1(e.Player.TeamID) && !tiers.IsT1(e.Player.Team) {
				kept = append(kept, e)
			}
		}
		return kept
	default:
		return entries
	}
}

// SearchPlayers queries the site search restricted to players.
func (s *Scraper) SearchPlayers(ctx context.Context, query string) ([]Player, error) {
	doc, err := s.client.Fetch(ctx, "/search?q="+url.QueryEscape(query)+"&type=players")
	if err != nil {
		return nil, err
	}

	players := []Player{}
	doc.Find(".search-item").Each(func(_ int, item *goquery.Selection) {
		id := scrape.ParseID(item.Find("a").AttrOr("href", ""), playerIDRe)
		name := scrape.CleanText(item.Find(".search-item-title").Text())
		if id == "" || name == "" {
			return
		}

		players = append(players, Player{
			ID:          id,
			Name:        name,
			Team:        scrape.CleanText(item.Find(".search-item-desc").Text()),
			Image:       s.img(item.Find("img").AttrOr("src", "")),
			CountryCode: scrape.ParseCountryCode(item.Find(".flag").AttrOr("class", "")),
		})
	})

	return players, nil
}
