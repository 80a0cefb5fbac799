package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shreshth-s/vlr-api/internal/cache"
	"github.com/shreshth-s/vlr-api/internal/config"
	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/scrape"
	"github.com/shreshth-s/vlr-api/internal/vlr"
)

func newTestServer(t *testing.T, env string) *Server {
	t.Helper()

	cfg := &config.Config{
		BaseURL:     "https://www.vlr.gg",
		Port:        "0",
		Environment: env,
		Debug: config.DebugConfig{
			Enabled:    env != "production",
			SampleDir:  t.TempDir(),
			MaxSamples: 5,
		},
	}

	logger := zerolog.Nop()
	samples := debug.NewSampleStore(cfg.Debug, logger)
	client := scrape.NewClient(cfg.BaseURL, cfg.Scraper, logger)
	scraper := vlr.NewScraper(client, samples, cfg.Debug, logger)
	store := cache.NewMemoryStore(logger)

	return NewServer(cfg, scraper, store, samples, logger)
}

func do(t *testing.T, server *Server, method, path string) (*httptest.ResponseRecorder, response) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(rec, req)

	var resp response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(t, "development")
	rec, _ := do(t, server, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
}

func TestIndexListsEndpoints(t *testing.T) {
	server := newTestServer(t, "development")
	rec, resp := do(t, server, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Timestamp)
}

func TestGetRegions(t *testing.T) {
	server := newTestServer(t, "development")
	rec, resp := do(t, server, http.MethodGet, "/api/v1/teams/regions")

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var regions []vlr.Region
	require.NoError(t, json.Unmarshal(raw, &regions))
	require.Len(t, regions, len(vlr.Regions))
}

func TestGetTiers(t *testing.T) {
	server := newTestServer(t, "development")

	rec, resp := do(t, server, http.MethodGet, "/api/v1/teams/tiers")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	raw, _ := json.Marshal(resp.Data)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(raw, &all))
	require.Len(t, all, 48)

	_, resp = do(t, server, http.MethodGet, "/api/v1/teams/tiers?status=ascended")
	raw, _ = json.Marshal(resp.Data)
	var ascended []map[string]any
	require.NoError(t, json.Unmarshal(raw, &ascended))
	require.Len(t, ascended, 8)
}

func TestSearchRequiresQuery(t *testing.T) {
	server := newTestServer(t, "development")

	for _, path := range []string{
		"/api/v1/players/search",
		"/api/v1/teams/search",
		"/api/v1/events/search",
	} {
		rec, resp := do(t, server, http.MethodGet, path)
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		require.False(t, resp.Success)
		require.Equal(t, "BAD_REQUEST", resp.Code)
	}
}

func TestUnknownRegionRejected(t *testing.T) {
	server := newTestServer(t, "development")
	rec, resp := do(t, server, http.MethodGet, "/api/v1/teams/rankings/atlantis")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", resp.Code)
}

func TestInvalidStatsFilterRejected(t *testing.T) {
	server := newTestServer(t, "development")

	rec, _ := do(t, server, http.MethodGet, "/api/v1/players/stats?min_rounds=abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, server, http.MethodGet, "/api/v1/players/stats?min_rating=-1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidEventStatusRejected(t *testing.T) {
	server := newTestServer(t, "development")
	rec, resp := do(t, server, http.MethodGet, "/api/v1/events?status=paused")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", resp.Code)
}

func TestDebugGuardInProduction(t *testing.T) {
	require.NoError(t, os.Unsetenv("ENABLE_DEBUG"))
	server := newTestServer(t, "production")

	rec, resp := do(t, server, http.MethodGet, "/api/v1/debug/samples")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "DEBUG_DISABLED", resp.Code)
}

func TestDebugSamplesInDevelopment(t *testing.T) {
	server := newTestServer(t, "development")

	rec, resp := do(t, server, http.MethodGet, "/api/v1/debug/samples")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	rec, _ = do(t, server, http.MethodGet, "/api/v1/debug/types")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(t, server, http.MethodGet, "/api/v1/debug/samples?type=bogus")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", resp.Code)

	rec, resp = do(t, server, http.MethodDelete, "/api/v1/debug/samples/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", resp.Code)
}

func TestCaptureUnknownType(t *testing.T) {
	server := newTestServer(t, "development")
	rec, resp := do(t, server, http.MethodPost, "/api/v1/debug/capture/bogus")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", resp.Code)
}

func TestCaptureMissingPlaceholder(t *testing.T) {
	server := newTestServer(t, "development")
	rec, resp := do(t, server, http.MethodPost, "/api/v1/debug/capture/team-profile")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, resp.Error, "id")
}

func TestCapturePath(t *testing.T) {
	path, err := capturePath(debug.CaptureTeamProfile, url.Values{"id": {"2"}})
	require.NoError(t, err)
	require.Equal(t, "/team/2", path)

	path, err = capturePath(debug.CaptureMatchDetail, url.Values{"matchId": {"378822"}})
	require.NoError(t, err)
	require.Equal(t, "/378822", path)

	_, err = capturePath(debug.CaptureMatchDetail, url.Values{})
	require.Error(t, err)

	path, err = capturePath(debug.CapturePlayerStats, url.Values{"region": {"na"}, "min_rounds": {"200"}})
	require.NoError(t, err)
	require.Equal(t, "/stats?min_rounds=200&region=na", path)
}

func TestRespondScrapeError(t *testing.T) {
	h := &Handler{logger: zerolog.Nop()}

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{scrape.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{scrape.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{&scrape.RequestError{StatusCode: 503, Message: "bad gateway"}, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "SCRAPE_ERROR"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.respondScrapeError(rec, tc.err)
		require.Equal(t, tc.status, rec.Code, tc.err)

		var resp response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.False(t, resp.Success)
		require.Equal(t, tc.code, resp.Code)
	}
}

func TestQueryPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?page=3", nil)
	require.Equal(t, 3, queryPage(req))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	require.Equal(t, 1, queryPage(req))

	req = httptest.NewRequest(http.MethodGet, "/x?page=-2", nil)
	require.Equal(t, 1, queryPage(req))
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2)

	require.True(t, rl.allow("1.2.3.4"))
	require.True(t, rl.allow("1.2.3.4"))
	require.False(t, rl.allow("1.2.3.4"))

	// other clients have their own budget
	require.True(t, rl.allow("5.6.7.8"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5123"
	require.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, "203.0.113.7", clientIP(req))
}
