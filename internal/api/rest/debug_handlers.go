package rest

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/shreshth-s/vlr-api/internal/config"
	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/vlr"
)

// DebugHandler serves the HTML sample store used to diagnose selector
// breakage. Everything here sits behind debugGuard.
type DebugHandler struct {
	scraper *vlr.Scraper
	samples *debug.SampleStore
	cfg     *config.Config
	logger  zerolog.Logger
}

// NewDebugHandler creates a new debug handler
func NewDebugHandler(scraper *vlr.Scraper, samples *debug.SampleStore, cfg *config.Config, logger zerolog.Logger) *DebugHandler {
	return &DebugHandler{
		scraper: scraper,
		samples: samples,
		cfg:     cfg,
		logger:  logger.With().Str("component", "debug").Logger(),
	}
}

// debugGuard rejects debug traffic unless the deployment allows it. In
// production that requires the explicit ENABLE_DEBUG opt-in.
func (h *DebugHandler) debugGuard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.cfg.DebugEndpointsAllowed() {
			respondError(w, http.StatusForbidden, "debug endpoints are disabled", "DEBUG_DISABLED")
			return
		}
		next(w, r)
	}
}

// ListTypes enumerates the capture types and their path templates.
func (h *DebugHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types := make([]map[string]string, 0, len(debug.CapturePaths))
	for _, typ := range debug.CaptureTypes {
		types = append(types, map[string]string{
			"type": string(typ),
			"path": debug.CapturePaths[typ],
		})
	}
	respondData(w, types, false, nil)
}

// Capture fetches a page on demand and stores its HTML as a sample. Path
// templates take :id / :matchId from query parameters; the player-stats type
// forwards the leaderboard filter parameters.
func (h *DebugHandler) Capture(w http.ResponseWriter, r *http.Request) {
	typ := debug.CaptureType(mux.Vars(r)["type"])
	if !typ.Valid() {
		respondError(w, http.StatusBadRequest, "unknown capture type: "+string(typ), "BAD_REQUEST")
		return
	}

	path, err := capturePath(typ, r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	}

	sample, err := h.scraper.CaptureSample(r.Context(), typ, path, map[string]any{
		"requested": true,
		"query":     r.URL.RawQuery,
	})
	if err != nil {
		if err == debug.ErrDisabled {
			respondError(w, http.StatusForbidden, "sample capture is disabled", "DEBUG_DISABLED")
			return
		}
		h.logger.Error().Err(err).Str("type", string(typ)).Msg("capture failed")
		respondError(w, http.StatusInternalServerError, err.Error(), "CAPTURE_ERROR")
		return
	}

	respondData(w, sample, false, nil)
}

// capturePath resolves a capture type's path template against the request
// query. Missing placeholders are an error, not a silent literal.
func capturePath(typ debug.CaptureType, q url.Values) (string, error) {
	path := debug.CapturePaths[typ]

	for placeholder, param := range map[string]string{":matchId": "matchId", ":id": "id"} {
		if !strings.Contains(path, placeholder) {
			continue
		}
		value := q.Get(param)
		if value == "" {
			return "", &missingParamError{param}
		}
		path = strings.ReplaceAll(path, placeholder, url.PathEscape(value))
	}

	if typ == debug.CapturePlayerStats {
		params := url.Values{}
		for _, key := range []string{"event_id", "event_series", "region", "country", "min_rounds", "min_rating", "agent", "map", "timespan"} {
			if v := q.Get(key); v != "" {
				params.Set(key, v)
			}
		}
		if enc := params.Encode(); enc != "" {
			path += "?" + enc
		}
	}

	return path, nil
}

type missingParamError struct {
	param string
}

func (e *missingParamError) Error() string {
	return "missing required query parameter '" + e.param + "'"
}

// ListSamples returns sample metadata, optionally filtered by ?type=.
func (h *DebugHandler) ListSamples(w http.ResponseWriter, r *http.Request) {
	typ := debug.CaptureType(r.URL.Query().Get("type"))
	if typ != "" && !typ.Valid() {
		respondError(w, http.StatusBadRequest, "unknown capture type: "+string(typ), "BAD_REQUEST")
		return
	}

	respondData(w, h.samples.List(typ), false, nil)
}

// GetSample returns one sample with its captured HTML.
func (h *DebugHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sampleID"]

	sample, html, ok := h.samples.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "sample not found: "+id, "NOT_FOUND")
		return
	}

	respondData(w, map[string]any{
		"sample": sample,
		"html":   html,
	}, false, nil)
}

// DeleteSample removes one sample.
func (h *DebugHandler) DeleteSample(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sampleID"]

	if !h.samples.Delete(id) {
		respondError(w, http.StatusNotFound, "sample not found: "+id, "NOT_FOUND")
		return
	}

	respondData(w, map[string]any{"deleted": id}, false, nil)
}

// Cleanup trims the store down to ?keep= samples (default: the configured
// maximum).
func (h *DebugHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	keep := h.samples.MaxSamples()
	if v := r.URL.Query().Get("keep"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid keep parameter", "BAD_REQUEST")
			return
		}
		keep = n
	}

	removed := h.samples.Cleanup(keep)
	respondData(w, map[string]any{
		"removed": removed,
		"kept":    keep,
	}, false, nil)
}
