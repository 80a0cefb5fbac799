package vlr

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestClassifyEventStatus(t *testing.T) {
	require.Equal(t, EventOngoing, classifyEventStatus("LIVE"))
	require.Equal(t, EventOngoing, classifyEventStatus("ongoing"))
	require.Equal(t, EventUpcoming, classifyEventStatus("Upcoming"))
	require.Equal(t, EventUpcoming, classifyEventStatus("Starts in 3d"))
	require.Equal(t, EventCompleted, classifyEventStatus("completed"))
	require.Equal(t, EventCompleted, classifyEventStatus("Finished"))
	require.Equal(t, EventUpcoming, classifyEventStatus(""))
	require.Equal(t, EventUpcoming, classifyEventStatus("who knows"))
}

const eventsListPage = `
<a class="event-item" href="/event/1921/champions-2026">
  <div class="event-item-title">Champions 2026</div>
  <div class="event-item-desc-item-status">ongoing</div>
  <div class="mod-prize">$2,250,000</div>
  <div class="mod-dates">Sep 12–Oct 5</div>
  <div class="event-item-thumb"><img src="//owcdn.net/img/champs.png"></div>
</a>
<a class="event-item" href="/event/2000/masters-london">
  <div class="event-item-title">Masters London</div>
  <div class="event-item-desc-item-status">Upcoming</div>
</a>`

func TestParseEventCards(t *testing.T) {
	s := newTestScraper(t)

	var events []Event
	doc(t, eventsListPage).Find("a.event-item").Each(func(_ int, el *goquery.Selection) {
		if event := s.parseEventCard(el); event != nil {
			events = append(events, *event)
		}
	})

	require.Len(t, events, 2)
	first := events[0]
	require.Equal(t, "1921", first.ID)
	require.Equal(t, "Champions 2026", first.Name)
	require.Equal(t, EventOngoing, first.Status)
	require.Equal(t, "$2,250,000", first.PrizePool)
	require.Equal(t, "Sep 12–Oct 5", first.Dates)
	require.Equal(t, "https://owcdn.net/img/champs.png", first.Logo)

	require.Equal(t, "2000", events[1].ID)
	require.Equal(t, EventUpcoming, events[1].Status)
}

const eventPage = `
<div class="event-header">
  <img src="/img/base/champs.png">
  <h1 class="wf-title">Champions 2026</h1>
</div>
<div class="event-desc-item-value">Sep 12 – Oct 5, 2026</div>
<div class="event-desc-item-value">$2,250,000</div>
<div class="event-desc-item-value">Paris, France</div>
<div class="event-team">
  <a href="/team/2/sentinels"><div class="event-team-name">Sentinels</div></a>
</div>
<div class="event-team">
  <a href="/team/2593/fnatic"><div class="event-team-name">Fnatic</div></a>
</div>
<a class="m-item" href="/378822/sentinels-vs-fnatic/">
  <div class="m-item-team"><div class="m-item-team-name">Sentinels</div></div>
  <div class="m-item-team"><div class="m-item-team-name">Fnatic</div></div>
  <div class="m-item-result"><span>2</span><span>0</span></div>
</a>
<table class="event-group-table">
  <tbody>
    <tr>
      <td>1</td>
      <td><a href="/team/2/sentinels"><div class="text-of">Sentinels</div></a></td>
      <td>3–0</td>
      <td>+14</td>
    </tr>
    <tr>
      <td></td>
      <td><a href="/team/2593/fnatic"><div class="text-of">Fnatic</div></a></td>
      <td>2–1</td>
      <td>+6</td>
    </tr>
  </tbody>
</table>`

func TestParseEventDetails(t *testing.T) {
	s := newTestScraper(t)
	details := s.parseEventDetails(doc(t, eventPage), "1921")

	require.Equal(t, "1921", details.ID)
	require.Equal(t, "Champions 2026", details.Name)
	require.Equal(t, "Sep 12 – Oct 5, 2026", details.Dates)
	require.Equal(t, "$2,250,000", details.PrizePool)
	require.Equal(t, "Paris, France", details.Location)

	require.Len(t, details.Teams, 2)
	require.Equal(t, "2", details.Teams[0].ID)
	require.Equal(t, "Sentinels", details.Teams[0].Name)

	require.Len(t, details.Matches, 1)
	m := details.Matches[0]
	require.Equal(t, "378822", m.ID)
	require.Equal(t, StatusCompleted, m.Status)
	require.Equal(t, 2, *m.Team1.Score)
	require.Equal(t, 0, *m.Team2.Score)

	require.Len(t, details.Standings, 2)
	require.Equal(t, 1, details.Standings[0].Position)
	require.Equal(t, "2", details.Standings[0].Team.ID)
	require.Equal(t, 3, details.Standings[0].Wins)
	require.Equal(t, 0, details.Standings[0].Losses)
	require.Equal(t, 14, details.Standings[0].RoundDiff)

	// empty position cell falls back to the row index
	require.Equal(t, 2, details.Standings[1].Position)
	require.Equal(t, 6, details.Standings[1].RoundDiff)

	// standings plus completed matches read as a completed event
	require.Equal(t, EventCompleted, details.Status)
}

func TestParseEventTeamsDeduplicates(t *testing.T) {
	s := newTestScraper(t)
	html := `
<div class="event-team"><a href="/team/2/sentinels"><div class="event-team-name">Sentinels</div></a></div>
<div class="event-team"><a href="/team/2/sentinels"><div class="event-team-name">Sentinels</div></a></div>`
	teams := s.parseEventTeams(doc(t, html))
	require.Len(t, teams, 1)
}

func TestParseEventTeamsFallbackSelector(t *testing.T) {
	s := newTestScraper(t)
	html := `<div class="team-item"><a href="/team/474/liquid"><div class="team-item-name">Team Liquid</div></a></div>`
	teams := s.parseEventTeams(doc(t, html))
	require.Len(t, teams, 1)
	require.Equal(t, "474", teams[0].ID)
	require.Equal(t, "Team Liquid", teams[0].Name)
}
