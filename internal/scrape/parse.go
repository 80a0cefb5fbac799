package scrape

import (
	"regexp"
	"strconv"
	"strings"
)

// Field-level decoders shared by every entity parser. They are deliberately
// forgiving: ragged or missing text degrades to zero values instead of
// erroring, so a single broken cell never aborts a parse.

var (
	numberCleaner = strings.NewReplacer(",", "", "%", "")
	countryRe     = regexp.MustCompile(`mod-(\w{2})`)
)

// CleanText collapses runs of whitespace into single spaces and trims.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseNumber decodes numeric text tolerant of thousands separators and
// percent signs. Unparsable input yields 0, never NaN.
func ParseNumber(s string) float64 {
	cleaned := strings.TrimSpace(numberCleaner.Replace(s))
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseInt is ParseNumber truncated to an integer.
func ParseInt(s string) int {
	return int(ParseNumber(s))
}

// ParseScore decodes a team score cell. The source shows a dash placeholder
// before a match has a score, so dashes and empty text decode to nil rather
// than zero. A zero is only kept when the raw text was literally "0".
func ParseScore(s string) *int {
	text := strings.TrimSpace(s)
	if text == "" || text == "–" || text == "-" {
		return nil
	}
	n := ParseInt(text)
	if n == 0 && text != "0" {
		return nil
	}
	return &n
}

// ParseID extracts an entity ID from an href or src attribute using the first
// capture group of pattern. Returns "" when nothing matches.
func ParseID(url string, pattern *regexp.Regexp) string {
	if url == "" {
		return ""
	}
	m := pattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseImageURL normalizes image sources: protocol-relative URLs get https,
// root-relative paths get the site origin, absolute URLs pass through.
func ParseImageURL(baseURL, src string) string {
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return baseURL + src
	default:
		return src
	}
}

// ParseCountryCode pulls a 2-letter country token out of a CSS class list
// (flags carry classes like "flag mod-us").
func ParseCountryCode(classes string) string {
	m := countryRe.FindStringSubmatch(classes)
	if m == nil {
		return ""
	}
	return m[1]
}
