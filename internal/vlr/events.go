package vlr

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shreshth-s/vlr-api/internal/scrape"
)

// Events returns the events listing, optionally filtered by status
// ("ongoing", "upcoming" or "completed").
func (s *Scraper) Events(ctx context.Context, status EventStatus) ([]Event, error) {
	doc, err := s.client.Fetch(ctx, "/events")
	if err != nil {
		return nil, err
	}

	events := []Event{}
	doc.Find("a.event-item").Each(func(_ int, el *goquery.Selection) {
		event := s.parseEventCard(el)
		if event == nil {
			return
		}
		if status != "" && event.Status != status {
			return
		}
		events = append(events, *event)
	})

	return events, nil
}

func (s *Scraper) parseEventCard(el *goquery.Selection) *Event {
	id := scrape.ParseID(el.AttrOr("href", ""), eventIDRe)
	name := scrape.CleanText(el.Find(".event-item-title").Text())
	if id == "" || name == "" {
		return nil
	}

	return &Event{
		ID:        id,
		Name:      name,
		Status:    classifyEventStatus(el.Find(".event-item-desc-item-status").Text()),
		PrizePool: scrape.CleanText(el.Find(".mod-prize").Text()),
		Dates:     scrape.CleanText(el.Find(".mod-dates").Text()),
		Logo:      s.img(el.Find(".event-item-thumb img").AttrOr("src", "")),
		Region:    scrape.ParseCountryCode(el.Find(".event-item-desc-item-status-flag, .flag").AttrOr("class", "")),
	}
}

// classifyEventStatus maps the free-text status label to a fixed state.
// Unrecognized labels read as upcoming.
func classifyEventStatus(text string) EventStatus {
	text = strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(text, "live"), strings.Contains(text, "ongoing"):
		return EventOngoing
	case strings.Contains(text, "upcoming"), strings.Contains(text, "starts"):
		return EventUpcoming
	case strings.Contains(text, "completed"), strings.Contains(text, "finished"):
		return EventCompleted
	default:
		return EventUpcoming
	}
}

// EventDetails returns a full event page: header info, participating teams,
// recent matches and group-stage standings where present.
func (s *Scraper) EventDetails(ctx context.Context, eventID string) (*EventDetails, error) {
	doc, err := s.client.Fetch(ctx, "/event/"+eventID)
	if err != nil {
		return nil, err
	}
	return s.parseEventDetails(doc, eventID), nil
}

func (s *Scraper) parseEventDetails(doc *goquery.Document, eventID string) *EventDetails {
	header := doc.Find(".event-header")
	descValues := doc.Find(".event-desc-item-value")

	details := &EventDetails{
		Event: Event{
			ID:        eventID,
			Name:      scrape.CleanText(header.Find(".wf-title").First().Text()),
			Dates:     scrape.CleanText(descValues.Eq(0).Text()),
			PrizePool: scrape.CleanText(descValues.Eq(1).Text()),
			Location:  scrape.CleanText(descValues.Eq(2).Text()),
			Logo:      s.img(header.Find("img").First().AttrOr("src", "")),
			Status:    EventUpcoming,
		},
		Teams:     s.parseEventTeams(doc),
		Matches:   s.parseEventMatches(doc),
		Standings: s.parseEventStandings(doc),
	}

	if hasText(header.Find(".event-header-status, .wf-tag").Text(), "live", "ongoing") {
		details.Status = EventOngoing
	} else if len(details.Standings) > 0 || completedCount(details.Matches) > 0 {
		details.Status = EventCompleted
	}

	return details
}

func hasText(text string, words ...string) bool {
	text = strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func completedCount(matches []MatchSummary) int {
	n := 0
	for _, m := range matches {
		if m.Status == StatusCompleted {
			n++
		}
	}
	return n
}

// parseEventTeams tries the dedicated participants block first, then the
// generic team cards used on older event pages.
func (s *Scraper) parseEventTeams(doc *goquery.Document) []Team {
	teams := []Team{}
	seen := map[string]bool{}

	add := func(_ int, el *goquery.Selection) {
		link := el
		if el.AttrOr("href", "") == "" {
			link = el.Find(`a[href*="/team/"]`).First()
		}
		id := scrape.ParseID(link.AttrOr("href", ""), teamIDRe)
		name := scrape.CleanText(el.Find(".event-team-name, .team-item-name, .text-of").First().Text())
		if name == "" {
			name = scrape.CleanText(link.Text())
		}
		if id == "" || name == "" || seen[id] {
			return
		}
		seen[id] = true
		teams = append(teams, Team{
			ID:   id,
			Name: name,
			Logo: s.img(el.Find("img").First().AttrOr("src", "")),
		})
	}

	doc.Find(".event-team").Each(add)
	if len(teams) == 0 {
		doc.Find(".wf-card.team-item, .team-item").Each(add)
	}

	return teams
}

func (s *Scraper) parseEventMatches(doc *goquery.Document) []MatchSummary {
	matches := []MatchSummary{}

	doc.Find(".event-match, .m-item").Each(func(_ int, el *goquery.Selection) {
		href := el.AttrOr("href", "")
		if href == "" {
			href = el.Find("a").AttrOr("href", "")
		}
		id := scrape.ParseID(href, matchItemIDRe)
		if id == "" {
			id = scrape.ParseID(href, matchIDRe)
		}
		if id == "" {
			return
		}

		teams := el.Find(".m-item-team, .match-item-vs-team")
		scores := el.Find(".m-item-result span, .match-item-vs-team-score")

		match := MatchSummary{
			ID: id,
			Team1: MatchTeam{
				Name:  scrape.CleanText(teams.Eq(0).Find(".m-item-team-name, .match-item-vs-team-name").Text()),
				Score: scrape.ParseScore(scores.Eq(0).Text()),
			},
			Team2: MatchTeam{
				Name:  scrape.CleanText(teams.Eq(1).Find(".m-item-team-name, .match-item-vs-team-name").Text()),
				Score: scrape.ParseScore(scores.Eq(1).Text()),
			},
			MatchTime: scrape.CleanText(el.Find(".m-item-date, .match-item-time").Text()),
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

// parseEventStandings reads group tables. Position falls back to the row
// index when the first cell does not parse.
func (s *Scraper) parseEventStandings(doc *goquery.Document) []Standing {
	standings := []Standing{}

	doc.Find(".event-group-table tbody tr, .wf-table tbody tr").Each(func(i int, row *goquery.Selection) {
		link := row.Find(`a[href*="/team/"]`).First()
		id := scrape.ParseID(link.AttrOr("href", ""), teamIDRe)
		name := scrape.CleanText(row.Find(".event-group-team, .text-of").First().Text())
		if name == "" {
			name = scrape.CleanText(link.Text())
		}
		if id == "" || name == "" {
			return
		}

		position := scrape.ParseInt(strings.TrimSpace(row.Find("td").First().Text()))
		if position == 0 {
			position = i + 1
		}

		standing := Standing{
			Position: position,
			Team: Team{
				ID:   id,
				Name: name,
				Logo: s.img(row.Find("img").AttrOr("src", "")),
			},
			RoundDiff: scrape.ParseInt(row.Find("td:nth-child(4)").Text()),
		}

		if m := recordRe.FindStringSubmatch(row.Text()); m != nil {
			standing.Wins = scrape.ParseInt(m[1])
			standing.Losses = scrape.ParseInt(m[2])
		}

		standings = append(standings, standing)
	})

	return standings
}

// SearchEvents queries the site search restricted to events.
func (s *Scraper) SearchEvents(ctx context.Context, query string) ([]Event, error) {
	doc, err := s.client.Fetch(ctx, "/search?q="+url.QueryEscape(query)+"&type=events")
	if err != nil {
		return nil, err
	}

	events := []Event{}
	doc.Find(".search-item").Each(func(_ int, item *goquery.Selection) {
		id := scrape.ParseID(item.Find("a").AttrOr("href", ""), eventIDRe)
		name := scrape.CleanText(item.Find(".search-item-title").Text())
		if id == "" || name == "" {
			return
		}

		events = append(events, Event{
			ID:     id,
			Name:   name,
			Status: classifyEventStatus(item.Find(".search-item-desc").Text()),
			Logo:   s.img(item.Find("img").AttrOr("src", "")),
		})
	})

	return events, nil
}
