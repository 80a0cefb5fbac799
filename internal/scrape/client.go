package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/shreshth-s/vlr-api/internal/config"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client fetches pages from the source site and hands back parsed documents.
// It holds no mutable state beyond the underlying connection pool, so a single
// instance is shared across all requests.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  zerolog.Logger
}

// FetchResult bundles the parsed document with the raw HTML so callers can
// persist the page when a parse looks broken.
type FetchResult struct {
	Doc  *goquery.Document
	HTML string
	URL  string
}

// NewClient builds the fetch client. Browser-like headers reduce
// block-on-sight behavior from the source site.
func NewClient(baseURL string, cfg config.ScraperConfig, logger zerolog.Logger) *Client {
	http := resty.New()
	http.SetBaseURL(baseURL)
	http.SetTimeout(cfg.Timeout)
	http.SetHeaders(map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Connection":      "keep-alive",
	})
	http.SetRetryCount(cfg.Retries)
	http.SetRetryWaitTime(cfg.RetryDelay)
	http.SetRetryMaxWaitTime(cfg.RetryDelay)
	http.AddRetryCondition(func(r *resty.Response, err error) bool {
		// Retry on timeouts and network errors (no HTTP status) and on
		// 5xx. Other 4xx responses fail immediately.
		if err != nil || r == nil {
			return true
		}
		return r.StatusCode() >= 500
	})

	return &Client{
		http:    http,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "scrape").Logger(),
	}
}

// BaseURL returns the configured site origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch retrieves a page and returns its parsed document.
func (c *Client) Fetch(ctx context.Context, path string) (*goquery.Document, error) {
	res, err := c.FetchWithHTML(ctx, path)
	if err != nil {
		return nil, err
	}
	return res.Doc, nil
}

// FetchWithHTML retrieves a page and returns the document alongside the raw
// HTML and the resolved URL.
func (c *Client) FetchWithHTML(ctx context.Context, path string) (*FetchResult, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		c.logger.Debug().Err(err).Str("path", path).Msg("fetch failed")
		return nil, &RequestError{Err: err}
	}

	switch {
	case resp.StatusCode() == 404:
		return nil, ErrNotFound
	case resp.StatusCode() == 403:
		return nil, ErrForbidden
	case resp.IsError():
		return nil, &RequestError{StatusCode: resp.StatusCode(), Message: resp.Status(), Body: string(resp.Body())}
	}

	html := string(resp.Body())
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &RequestError{Message: "invalid html: " + err.Error(), Body: html, Err: err}
	}

	return &FetchResult{
		Doc:  doc,
		HTML: html,
		URL:  c.ResolveURL(path),
	}, nil
}

// ResolveURL joins a root-relative path with the site origin. Absolute URLs
// pass through unchanged.
func (c *Client) ResolveURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.baseURL + path
}
