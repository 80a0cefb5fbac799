package vlr

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/scrape"
)

var recordRe = regexp.MustCompile(`(\d+)\s*[-–]\s*(\d+)`)

// Region is a rankings region slug accepted by the source site.
type Region struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Regions lists the ranking region slugs the source understands.
var Regions = []Region{
	{Slug: "na", Name: "North America"},
	{Slug: "eu", Name: "Europe"},
	{Slug: "ap", Name: "Asia-Pacific"},
	{Slug: "la", Name: "Latin America"},
	{Slug: "la-s", Name: "LA-South"},
	{Slug: "la-n", Name: "LA-North"},
	{Slug: "oce", Name: "Oceania"},
	{Slug: "kr", Name: "Korea"},
	{Slug: "mn", Name: "MENA"},
	{Slug: "gc", Name: "Game Changers"},
	{Slug: "br", Name: "Brazil"},
	{Slug: "cn", Name: "China"},
	{Slug: "jp", Name: "Japan"},
}

// ValidRegion reports whether slug is a known rankings region.
func ValidRegion(slug string) bool {
	for _, r := range Regions {
		if r.Slug == slug {
			return true
		}
	}
	return false
}

// TeamRankings returns the world rankings table, or a regional one when
// region is non-empty. The two pages use different markup.
func (s *Scraper) TeamRankings(ctx context.Context, region string) ([]Team, *DebugInfo, error) {
	path := "/rankings"
	if region != "" {
		path = "/rankings/" + region
	}

	res, err := s.client.FetchWithHTML(ctx, path)
	if err != nil {
		s.captureFetchError(debug.CaptureTeamRankings, path, err, nil)
		return nil, nil, err
	}

	var teams []Team
	if region == "" {
		teams = s.parseWorldRankings(res.Doc)
	} else {
		teams = s.parseRegionalRankings(res.Doc)
	}

	regionLabel := region
	if regionLabel == "" {
		regionLabel = "all"
	}
	validation := validateRankings(teams, regionLabel)
	sampleID := s.captureInvalid(debug.CaptureTeamRankings, path, res.HTML, validation, map[string]any{"region": regionLabel})

	return teams, s.debugInfo(sampleID, validation), nil
}

func (s *Scraper) parseWorldRankings(doc *goquery.Document) []Team {
	teams := []Team{}
	doc.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		if team := s.parseRankingRow(row, i+1); team != nil {
			teams = append(teams, *team)
		}
	})
	return teams
}

func (s *Scraper) parseRankingRow(row *goquery.Selection, fallbackRank int) *Team {
	link := row.Find(`a[href*="/team/"]`).First()
	id := scrape.ParseID(link.AttrOr("href", ""), teamIDRe)
	name := scrape.CleanText(row.Find(".ge-text, .text-of").First().Text())
	if name == "" {
		name = scrape.CleanText(link.Text())
	}
	if id == "" || name == "" {
		return nil
	}

	rank := scrape.ParseInt(row.Find(".rank-item-rank-num, td").First().Text())
	if rank == 0 {
		rank = fallbackRank
	}

	team := &Team{
		ID:          id,
		Name:        name,
		Logo:        s.img(row.Find("img").AttrOr("src", "")),
		CountryCode: scrape.ParseCountryCode(row.Find(".flag").AttrOr("class", "")),
		Country:     scrape.CleanText(row.Find(".rank-item-team-country").Text()),
		Rank:        rank,
		Rating:      scrape.ParseNumber(row.Find(".rank-item-rating, .rating").First().Text()),
	}

	if m := recordRe.FindStringSubmatch(row.Text()); m != nil {
		team.Record = &TeamRecord{
			Wins:   scrape.ParseInt(m[1]),
			Losses: scrape.ParseInt(m[2]),
		}
	}

	return team
}

func (s *Scraper) parseRegionalRankings(doc *goquery.Document) []Team {
	teams := []Team{}

	container := doc.Find(".wf-card.mod-scroll")
	if container.Length() == 0 {
		container = doc.Selection
	}

	container.Find(".rank-item").Each(func(i int, item *goquery.Selection) {
		link := item.Find(`a[href*="/team/"]`).First()
		id := scrape.ParseID(link.AttrOr("href", ""), teamIDRe)
		name := scrape.CleanText(item.Find(".rank-item-team").First().Text())
		if name == "" {
			name = scrape.CleanText(link.Text())
		}
		if id == "" || name == "" {
			return
		}

		rank := scrape.ParseInt(item.Find(".rank-item-rank-num").Text())
		if rank == 0 {
			rank = i + 1
		}

		team := Team{
			ID:          id,
			Name:        name,
			Logo:        s.img(item.Find("img").AttrOr("src", "")),
			CountryCode: scrape.ParseCountryCode(item.Find(".flag").AttrOr("class", "")),
			Country:     scrape.CleanText(item.Find(".rank-item-team-country").Text()),
			Rank:        rank,
			Rating:      scrape.ParseNumber(item.Find(".rank-item-rating").Text()),
		}

		if m := recordRe.FindStringSubmatch(item.Text()); m != nil {
			team.Record = &TeamRecord{
				Wins:   scrape.ParseInt(m[1]),
				Losses: scrape.ParseInt(m[2]),
			}
		}

		teams = append(teams, team)
	})

	return teams
}

// TeamProfile returns a team page: identity, summary stats, roster split into
// players and staff, and the recent/upcoming match sidebars.
func (s *Scraper) TeamProfile(ctx context.Context, teamID string) (*TeamProfile, error) {
	doc, err := s.client.Fetch(ctx, "/team/"+teamID)
	if err != nil {
		return nil, err
	}
	return s.parseTeamProfile(doc, teamID), nil
}

func (s *Scraper) parseTeamProfile(doc *goquery.Document, teamID string) *TeamProfile {
	header := doc.Find(".team-header")

	profile := &TeamProfile{
		Team: Team{
			ID:          teamID,
			Name:        scrape.CleanText(header.Find(".wf-title").First().Text()),
			Tag:         scrape.CleanText(header.Find(".team-header-tag, .wf-title.team-header-tag").Text()),
			Logo:        s.img(header.Find("img").First().AttrOr("src", "")),
			Country:     scrape.CleanText(header.Find(".team-header-country").Text()),
			CountryCode: scrape.ParseCountryCode(header.Find(".flag").AttrOr("class", "")),
		},
		Website: header.Find(`a[href^="http"]:not([href*="twitter"]):not([href*="x.com"])`).AttrOr("href", ""),
		Twitter: header.Find(`a[href*="twitter.com"], a[href*="x.com"]`).AttrOr("href", ""),
	}

	// summary cards: each value is a .wf-title preceded by its label
	doc.Find(".team-summary-container-1 .wf-card, .team-rating-info").Find("div").Each(func(_ int, div *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(div.Prev().Text()))
		value := strings.TrimSpace(div.Text())
		if value == "" {
			return
		}
		switch {
		case strings.Contains(label, "rating"):
			profile.Rating = scrape.ParseNumber(value)
		case strings.Contains(label, "winnings"), strings.Contains(label, "earnings"):
			profile.Earnings = scrape.ParseNumber(strings.TrimPrefix(value, "$"))
		case strings.Contains(label, "record"):
			if m := recordRe.FindStringSubmatch(value); m != nil {
				profile.Record = &TeamRecord{
					Wins:   scrape.ParseInt(m[1]),
					Losses: scrape.ParseInt(m[2]),
				}
			}
		}
	})

	profile.Roster = s.parseRoster(doc)
	profile.RecentMatches = s.parseTeamSidebarMatches(doc, ".team-summary-container-2")
	profile.UpcomingMatches = s.parseTeamSidebarMatches(doc, ".team-summary-container-3")

	return profile
}

// staff role keywords; anything else on the roster counts as a player.
var staffKeywords = []string{"coach", "assistant", "analyst", "manager", "sub"}

func isStaffRole(role string) bool {
	role = strings.ToLower(role)
	for _, kw := range staffKeywords {
		if strings.Contains(role, kw) {
			return true
		}
	}
	return false
}

func (s *Scraper) parseRoster(doc *goquery.Document) *TeamRoster {
	roster := &TeamRoster{
		Players: []RosterMember{},
		Staff:   []RosterMember{},
	}

	doc.Find(".team-roster-item").Each(func(_ int, item *goquery.Selection) {
		id := scrape.ParseID(item.Find("a").AttrOr("href", ""), playerIDRe)
		name := scrape.CleanText(item.Find(".team-roster-item-name-alias").Text())
		if id == "" || name == "" {
			return
		}

		member := RosterMember{
			ID:          id,
			Name:        name,
			RealName:    scrape.CleanText(item.Find(".team-roster-item-name-real").Text()),
			CountryCode: scrape.ParseCountryCode(item.Find(".flag").AttrOr("class", "")),
			Role:        scrape.CleanText(item.Find(".team-roster-item-name-role").Text()),
		}

		if isStaffRole(member.Role) {
			roster.Staff = append(roster.Staff, member)
		} else {
			roster.Players = append(roster.Players, member)
		}
	})

	return roster
}

func (s *Scraper) parseTeamSidebarMatches(doc *goquery.Document, container string) []MatchSummary {
	matches := []MatchSummary{}

	doc.Find(container + " .m-item").Each(func(_ int, el *goquery.Selection) {
		id := scrape.ParseID(el.AttrOr("href", ""), matchItemIDRe)
		if id == "" {
			return
		}

		teams := el.Find(".m-item-team")
		scores := el.Find(".m-item-result span")

		match := MatchSummary{
			ID: id,
			Team1: MatchTeam{
				Name:  scrape.CleanText(teams.Eq(0).Find(".m-item-team-name").Text()),
				Score: scrape.ParseScore(scores.Eq(0).Text()),
			},
			Team2: MatchTeam{
				Name:  scrape.CleanText(teams.Eq(1).Find(".m-item-team-name").Text()),
				Score: scrape.ParseScore(scores.Eq(1).Text()),
			},
			Event:     scrape.CleanText(el.Find(".m-item-event").Text()),
			MatchTime: scrape.CleanText(el.Find(".m-item-date").Text()),
		}

		if match.Team1.Score != nil && match.Team2.Score != nil {
			match.Status = StatusCompleted
		} else {
			match.Status = StatusUpcoming
		}

		matches = append(matches, match)
	})

	return matches
}

// TeamMatches returns one page of a team's match history. group selects
// "upcoming" or "completed".
func (s *Scraper) TeamMatches(ctx context.Context, teamID, group string, page int) ([]MatchSummary, bool, error) {
	if group == "" {
		group = "completed"
	}
	doc, err := s.client.Fetch(ctx, fmt.Sprintf("/team/matches/%s/?group=%s&page=%d", teamID, group, page))
	if err != nil {
		return nil, false, err
	}

	matches := []MatchSummary{}
	doc.Find(".m-item").Each(func(_ int, el *goquery.Selection) {
		id := scrape.ParseID(el.AttrOr("href", ""), matchItemIDRe)
		if id == "" {
			return
		}

		teams := el.Find(".m-item-team")
		scores := el.Find(".m-item-result span")

		match := MatchSummary{
			ID: id,
			Team1: MatchTeam{
				Name:  scrape.CleanText(teams.Eq(0).Find(".m-item-team-name").Text()),
				Tag:   scrape.CleanText(teams.Eq(0).Find(".m-item-team-tag").Text()),
				Score: scrape.ParseScore(scores.Eq(0).Text()),
			},
			Team2: MatchTeam{
				Name:  scrape.CleanText(teams.Eq(1).Find(".m-item-team-name").Text()),
				Tag:   scrape.CleanText(teams.Eq(1).Find(".m-item-team-tag").Text()),
				Score: scrape.ParseScore(scores.Eq(1).Text()),
			},
			Event:     scrape.CleanText(el.Find(".m-item-event").Text()),
			MatchTime: scrape.CleanText(el.Find(".m-item-date").Text()),
		}

		if group == "upcoming" {
			match.Status = StatusUpcoming
		} else {
			match.Status = StatusCompleted
		}

		matches = append(matches, match)
	})

	hasMore := doc.Find(".pagination .mod-next").Length() > 0
	return matches, hasMore, nil
}

// SearchTeams queries the site search restricted to teams.
func (s *Scraper) SearchTeams(ctx context.Context, query string) ([]Team, error) {
	doc, err := s.client.Fetch(ctx, "/search?q="+url.QueryEscape(query)+"&type=teams")
	if err != nil {
		return nil, err
	}

	teams := []Team{}
	doc.Find(".search-item").Each(func(_ int, item *goquery.Selection) {
		id := scrape.ParseID(item.Find("a").AttrOr("href", ""), teamIDRe)
		name := scrape.CleanText(item.Find(".search-item-title").Text())
		if id == "" || name == "" {
			return
		}

		teams = append(teams, Team{
			ID:          id,
			Name:        name,
			Logo:        s.img(item.Find("img").AttrOr("src", "")),
			CountryCode: scrape.ParseCountryCode(item.Find(".flag").AttrOr("class", "")),
		})
	})

	return teams, nil
}
