package vlr

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shreshth-s/vlr-api/internal/config"
	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/scrape"
)

func newCaptureScraper(t *testing.T, debugCfg config.DebugConfig) (*Scraper, *debug.SampleStore) {
	t.Helper()
	debugCfg.SampleDir = t.TempDir()
	if debugCfg.MaxSamples == 0 {
		debugCfg.MaxSamples = 10
	}
	store := debug.NewSampleStore(debugCfg, zerolog.Nop())
	client := scrape.NewClient("https://www.vlr.gg", config.ScraperConfig{}, zerolog.Nop())
	return NewScraper(client, store, debugCfg, zerolog.Nop()), store
}

func TestCaptureFetchErrorSavesBody(t *testing.T) {
	s, store := newCaptureScraper(t, config.DebugConfig{Enabled: true, CaptureOnError: true})

	err := &scrape.RequestError{
		StatusCode: 500,
		Message:    "500 Internal Server Error",
		Body:       "<html>maintenance</html>",
	}
	s.captureFetchError(debug.CaptureMatchesLive, "/matches", err, map[string]any{"type": "live"})

	samples := store.List("")
	require.Len(t, samples, 1)
	require.Equal(t, debug.CaptureMatchesLive, samples[0].Type)
	require.Contains(t, samples[0].Error, "request failed")
	require.Equal(t, "https://www.vlr.gg/matches", samples[0].URL)

	_, html, ok := store.Get(samples[0].ID)
	require.True(t, ok)
	require.Equal(t, "<html>maintenance</html>", html)
}

func TestCaptureFetchErrorGating(t *testing.T) {
	// flag off: nothing saved
	s, store := newCaptureScraper(t, config.DebugConfig{Enabled: true, CaptureOnError: false})
	s.captureFetchError(debug.CaptureMatchesLive, "/matches", &scrape.RequestError{Body: "<html></html>"}, nil)
	require.Empty(t, store.List(""))

	// no body on the error: nothing to persist
	s, store = newCaptureScraper(t, config.DebugConfig{Enabled: true, CaptureOnError: true})
	s.captureFetchError(debug.CaptureMatchesLive, "/matches", scrape.ErrNotFound, nil)
	require.Empty(t, store.List(""))
}
