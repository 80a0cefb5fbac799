// Package vlr turns pages from the source site into typed domain records.
// Parsers only walk already-fetched documents; the network round trip lives
// in the fetch client. Field extraction is best-effort: a missing element
// leaves its field empty, and only a record with no extractable ID is
// skipped.
package vlr

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/shreshth-s/vlr-api/internal/config"
	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/scrape"
)

// ID extraction patterns. These track the source site's URL layout and must
// stay distinct per entity family.
var (
	matchIDRe     = regexp.MustCompile(`/(\d+)`)
	matchItemIDRe = regexp.MustCompile(`/(\d+)/`)
	playerIDRe    = regexp.MustCompile(`/player/(\d+)`)
	teamIDRe      = regexp.MustCompile(`/team/(\d+)`)
	eventIDRe     = regexp.MustCompile(`/event/(\d+)`)

	agentImgRe = regexp.MustCompile(`(?i)/([^/]+)\.png$`)
)

// Scraper owns one fetch client and turns source pages into domain records.
// It keeps no per-request state; every call produces independent output.
type Scraper struct {
	client  *scrape.Client
	samples *debug.SampleStore
	debug   config.DebugConfig
	logger  zerolog.Logger
}

// NewScraper wires the scraper. samples may be nil when capture is unused
// (tests); every capture path checks for it.
func NewScraper(client *scrape.Client, samples *debug.SampleStore, debugCfg config.DebugConfig, logger zerolog.Logger) *Scraper {
	return &Scraper{
		client:  client,
		samples: samples,
		debug:   debugCfg,
		logger:  logger.With().Str("component", "vlr").Logger(),
	}
}

// DebugInfo rides along on validated listings when debug mode is on.
type DebugInfo struct {
	SampleID   string           `json:"sampleId,omitempty"`
	Validation ValidationResult `json:"validation"`
}

func (s *Scraper) img(src string) string {
	return scrape.ParseImageURL(s.client.BaseURL(), src)
}

// CaptureSample fetches a page and persists it as a debug sample. Used by the
// manual capture endpoint only; rejected immediately when debug is off.
func (s *Scraper) CaptureSample(ctx context.Context, typ debug.CaptureType, path string, context map[string]any) (*debug.Sample, error) {
	if s.samples == nil || !s.debug.Enabled {
		return nil, debug.ErrDisabled
	}
	res, err := s.client.FetchWithHTML(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.samples.Save(typ, res.URL, res.HTML, "", context)
}

// captureInvalid persists the raw page after a failed validation. Best-effort
// instrumentation: every failure here is logged and swallowed so the primary
// read path never breaks.
func (s *Scraper) captureInvalid(typ debug.CaptureType, path, html string, v ValidationResult, context map[string]any) string {
	if s.samples == nil || !s.debug.Enabled || !s.debug.CaptureOnEmpty || v.Valid {
		return ""
	}

	if context == nil {
		context = map[string]any{}
	}
	context["validation"] = v

	sample, err := s.samples.Save(typ, s.client.ResolveURL(path), html, strings.Join(v.Errors, "; "), context)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to auto-capture html sample")
		return ""
	}

	s.logger.Warn().
		Str("sample_id", sample.ID).
		Strs("errors", v.Errors).
		Msg("auto-captured html sample after validation failure")

	return sample.ID
}

// captureFetchError persists the body of a failed request when the source
// returned one. Same best-effort contract as captureInvalid.
func (s *Scraper) captureFetchError(typ debug.CaptureType, path string, err error, context map[string]any) {
	if s.samples == nil || !s.debug.Enabled || !s.debug.CaptureOnError {
		return
	}
	var reqErr *scrape.RequestError
	if !errors.As(err, &reqErr) || reqErr.Body == "" {
		return
	}

	sample, saveErr := s.samples.Save(typ, s.client.ResolveURL(path), reqErr.Body, reqErr.Error(), context)
	if saveErr != nil {
		s.logger.Error().Err(saveErr).Msg("failed to auto-capture html sample")
		return
	}

	s.logger.Warn().
		Str("sample_id", sample.ID).
		Str("error", reqErr.Error()).
		Msg("auto-captured html sample after fetch failure")
}

func (s *Scraper) debugInfo(sampleID string, v ValidationResult) *DebugInfo {
	if !s.debug.Enabled {
		return nil
	}
	return &DebugInfo{SampleID: sampleID, Validation: v}
}

// findFirst tries selector candidates in order and returns the first
// non-empty match set. Markup drift tolerance: when the site reshuffles a
// page, a fallback selector keeps the parser alive.
func findFirst(doc *goquery.Document, selectors ...string) *goquery.Selection {
	sel := doc.Find(selectors[0])
	for _, candidate := range selectors[1:] {
		if sel.Length() > 0 {
			break
		}
		sel = doc.Find(candidate)
	}
	return sel
}

// agentFromImg decodes an agent name from an icon via title, then alt, then
// the src basename.
func agentFromImg(img *goquery.Selection) string {
	if title, ok := img.Attr("title"); ok && title != "" {
		return title
	}
	if alt, ok := img.Attr("alt"); ok && alt != "" {
		return alt
	}
	src, _ := img.Attr("src")
	return scrape.ParseID(src, agentImgRe)
}
