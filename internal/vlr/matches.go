package vlr

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/scrape"
)

// Matches returns the requested listing: "live", "upcoming" or "results".
// Live and upcoming both come from the schedule page and are filtered by
// status; results come from the historical page where every match is
// completed.
func (s *Scraper) Matches(ctx context.Context, listType string) ([]MatchSummary, *DebugInfo, error) {
	path := "/matches"
	if listType == "results" {
		path = "/matches/results"
	}

	res, err := s.client.FetchWithHTML(ctx, path)
	if err != nil {
		s.captureFetchError(matchCaptureType(listType), path, err, map[string]any{"type": listType})
		return nil, nil, err
	}

	matches := s.parseMatchList(res.Doc, path)

	filtered := matches
	switch listType {
	case "live":
		filtered = filterByStatus(matches, StatusLive)
	case "upcoming":
		filtered = filterByStatus(matches, StatusUpcoming)
	}

	validation := validateMatches(filtered, listType)
	sampleID := s.captureInvalid(matchCaptureType(listType), path, res.HTML, validation, map[string]any{"type": listType})

	return filtered, s.debugInfo(sampleID, validation), nil
}

func matchCaptureType(listType string) debug.CaptureType {
	switch listType {
	case "results":
		return debug.CaptureMatchesResults
	case "live":
		return debug.CaptureMatchesLive
	default:
		return debug.CaptureMatchesUpcoming
	}
}

func filterByStatus(matches []MatchSummary, status MatchStatus) []MatchSummary {
	filtered := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		if m.Status == status {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func (s *Scraper) parseMatchList(doc *goquery.Document, pagePath string) []MatchSummary {
	var matches []MatchSummary

	// Match cards are anchors with the wf-module-item class; the bare
	// match-item selector is the drift fallback.
	findFirst(doc, "a.wf-module-item.match-item", "a.match-item").Each(func(_ int, el *goquery.Selection) {
		if match := s.parseMatchCard(el, pagePath); match != nil {
			matches = append(matches, *match)
		}
	})

	return matches
}

func (s *Scraper) parseMatchCard(el *goquery.Selection, pagePath string) *MatchSummary {
	href, _ := el.Attr("href")
	id := scrape.ParseID(href, matchIDRe)
	if id == "" {
		return nil
	}

	teams := el.Find(".match-item-vs-team")
	team1 := s.parseMatchCardTeam(teams.Eq(0))
	team2 := s.parseMatchCardTeam(teams.Eq(1))

	// Explicit "live" text wins; the results page forces completed; real
	// scores on both sides imply completed; everything else is upcoming.
	status := StatusUpcoming
	statusText := strings.ToLower(strings.TrimSpace(el.Find(".ml-status").Text()))
	switch {
	case strings.Contains(statusText, "live"):
		status = StatusLive
	case strings.Contains(pagePath, "results"):
		status = StatusCompleted
	case team1.Score != nil && team2.Score != nil:
		status = StatusCompleted
	}

	eventSeries := scrape.CleanText(el.Find(".match-item-event-series").Text())
	eventName := scrape.CleanText(el.Find(".match-item-event").Text())
	event := eventSeries
	stage := ""
	if eventSeries != "" {
		stage = eventName
	} else {
		event = eventName
	}

	return &MatchSummary{
		ID:        id,
		Team1:     team1,
		Team2:     team2,
		Status:    status,
		Event:     event,
		Stage:     stage,
		MatchTime: scrape.CleanText(el.Find(".match-item-time").Text()),
		ETA:       scrape.CleanText(el.Find(".ml-eta").Text()),
		EventLogo: s.img(el.Find(".match-item-icon img").AttrOr("src", "")),
	}
}

func (s *Scraper) parseMatchCardTeam(team *goquery.Selection) MatchTeam {
	return MatchTeam{
		Name:        scrape.CleanText(team.Find(".match-item-vs-team-name").Text()),
		Logo:        s.img(team.Find("img").AttrOr("src", "")),
		Score:       scrape.ParseScore(team.Find(".match-item-vs-team-score").Text()),
		CountryCode: scrape.ParseCountryCode(team.Find(".flag").AttrOr("class", "")),
	}
}

// MatchDetails returns the full match page: header, per-map player stats,
// streams and vods.
func (s *Scraper) MatchDetails(ctx context.Context, matchID string) (*MatchDetails, error) {
	doc, err := s.client.Fetch(ctx, "/"+matchID)
	if err != nil {
		return nil, err
	}
	return s.parseMatchDetails(doc, matchID), nil
}

func (s *Scraper) parseMatchDetails(doc *goquery.Document, matchID string) *MatchDetails {
	header := doc.Find(".match-header")
	event := scrape.CleanText(header.Find(".match-header-event-series").Text())
	stage := scrape.CleanText(strings.Replace(header.Find(".match-header-event").Text(), event, "", 1))

	team1 := s.parseMatchHeaderTeam(doc, 0)
	team2 := s.parseMatchHeaderTeam(doc, 1)

	status := StatusUpcoming
	statusText := strings.ToLower(doc.Find(".match-header-vs-score").Text())
	switch {
	case strings.Contains(statusText, "live"):
		status = StatusLive
	case team1.Score != nil && team2.Score != nil:
		status = StatusCompleted
	}

	var streams []Stream
	doc.Find(".match-streams a").Each(func(_ int, el *goquery.Selection) {
		name := scrape.CleanText(el.Text())
		href, _ := el.Attr("href")
		if name != "" && href != "" {
			streams = append(streams, Stream{Name: name, URL: href})
		}
	})

	var vods []string
	doc.Find(".match-vods a").Each(func(_ int, el *goquery.Selection) {
		if href, ok := el.Attr("href"); ok && href != "" {
			vods = append(vods, href)
		}
	})

	return &MatchDetails{
		MatchSummary: MatchSummary{
			ID:        matchID,
			Team1:     team1,
			Team2:     team2,
			Status:    status,
			Event:     event,
			Stage:     stage,
			MatchTime: scrape.CleanText(header.Find(".match-header-date").Text()),
		},
		Format:  scrape.CleanText(doc.Find(".match-header-vs-note").Text()),
		Maps:    s.parseMapResults(doc),
		Streams: streams,
		VODs:    vods,
	}
}

func (s *Scraper) parseMatchHeaderTeam(doc *goquery.Document, index int) MatchTeam {
	link := doc.Find(".match-header-link").Eq(index)
	href, _ := link.Attr("href")

	// the vs block carries both scores as "a : b"
	var score *int
	scoreTexts := strings.Split(strings.TrimSpace(doc.Find(".match-header-vs-score .js-spoiler").Text()), ":")
	if index < len(scoreTexts) {
		score = scrape.ParseScore(scoreTexts[index])
	}

	return MatchTeam{
		ID:    scrape.ParseID(href, teamIDRe),
		Name:  scrape.CleanText(link.Find(".wf-title-med").Text()),
		Logo:  s.img(link.Find("img").AttrOr("src", "")),
		Score: score,
	}
}

func (s *Scraper) parseMapResults(doc *goquery.Document) []MapResult {
	maps := []MapResult{}

	doc.Find(".vm-stats-game").Each(func(_ int, game *goquery.Selection) {
		// the aggregate "all maps" pseudo-row is not a map
		if game.AttrOr("data-game-id", "") == "all" {
			return
		}

		mapName := scrape.CleanText(game.Find(".map span").First().Text())
		if mapName == "" {
			mapName = "Unknown"
		}

		scores := game.Find(".score")
		tables := game.Find(".wf-table-inset")

		picked := ""
		pickerClass := game.Find(".map .mod-button").AttrOr("class", "")
		switch {
		case strings.Contains(pickerClass, "mod-1"):
			picked = "team1"
		case strings.Contains(pickerClass, "mod-2"):
			picked = "team2"
		}

		maps = append(maps, MapResult{
			Map:          mapName,
			Team1Score:   scrape.ParseInt(scores.Eq(0).Text()),
			Team2Score:   scrape.ParseInt(scores.Eq(1).Text()),
			Team1Players: parseMapPlayerStats(tables.Eq(0)),
			Team2Players: parseMapPlayerStats(tables.Eq(1)),
			Picked:       picked,
		})
	})

	return maps
}

// parseMapPlayerStats reads one team's scoreboard table. Column order on the
// source: R, ACS, K, D, A, +/-, KAST, ADR, HS%, FK, FD. Match pages carry no
// clutch data; that only exists on the aggregated leaderboard.
func parseMapPlayerStats(table *goquery.Selection) []PlayerMatchStats {
	players := []PlayerMatchStats{}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		playerName := scrape.CleanText(row.Find("td").First().Find(".text-of").Text())
		if playerName == "" {
			return
		}

		agent := agentFromImg(row.Find("img").First())
		cells := row.Find("td.mod-stat")

		players = append(players, PlayerMatchStats{
			PlayerName: playerName,
			Agent:      agent,
			AgentRole:  GetAgentRole(agent),
			PlayerStats: PlayerStats{
				Rounds:        scrape.ParseInt(statCell(cells, 0)),
				ACS:           scrape.ParseNumber(statCell(cells, 1)),
				Kills:         scrape.ParseInt(statCell(cells, 2)),
				Deaths:        scrape.ParseInt(statCell(cells, 3)),
				Assists:       scrape.ParseInt(statCell(cells, 4)),
				KillDeathDiff: scrape.ParseInt(statCell(cells, 5)),
				KAST:          scrape.ParseNumber(statCell(cells, 6)),
				ADR:           scrape.ParseNumber(statCell(cells, 7)),
				Headshot:      scrape.ParseNumber(statCell(cells, 8)),
				FirstKills:    scrape.ParseInt(statCell(cells, 9)),
				FirstDeaths:   scrape.ParseInt(statCell(cells, 10)),
			},
		})
	})

	return players
}

// statCell prefers the combined both-sides span, falling back to the raw
// cell text.
func statCell(cells *goquery.Selection, index int) string {
	cell := cells.Eq(index)
	if both := cell.Find(".mod-both").Text(); strings.TrimSpace(both) != "" {
		return both
	}
	return cell.Text()
}
