package debug

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/shreshth-s/vlr-api/internal/config"
)

const indexFile = "index.json"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ErrDisabled is returned when capture machinery is used while debug mode is
// off. No file or network activity happens in that case.
var ErrDisabled = errors.New("debug mode is disabled")

// Sample is the metadata of one captured HTML page. The index file records
// these in most-recent-first order and is the single source of truth for
// which sample files exist.
type Sample struct {
	ID        string         `json:"id"`
	Type      CaptureType    `json:"type"`
	URL       string         `json:"url"`
	Timestamp time.Time      `json:"timestamp"`
	Error     string         `json:"error,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	FileSize  int            `json:"fileSize"`
}

type sampleIndex struct {
	Samples     []Sample  `json:"samples"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// SampleStore persists one HTML file per sample plus a JSON index under a
// directory. The mutex serializes in-process writers; the index file itself
// carries a single-writer assumption, so two processes sharing a directory
// can still lose updates. Acceptable for a low-frequency diagnostic tool.
type SampleStore struct {
	dir        string
	enabled    bool
	maxSamples int
	logger     zerolog.Logger

	mu sync.Mutex
}

// NewSampleStore builds the store. The directory is created lazily on first
// save.
func NewSampleStore(cfg config.DebugConfig, logger zerolog.Logger) *SampleStore {
	return &SampleStore{
		dir:        cfg.SampleDir,
		enabled:    cfg.Enabled,
		maxSamples: cfg.MaxSamples,
		logger:     logger.With().Str("component", "debug").Logger(),
	}
}

// Enabled reports whether capture is allowed.
func (s *SampleStore) Enabled() bool {
	return s.enabled
}

// MaxSamples is the auto-trim threshold.
func (s *SampleStore) MaxSamples() int {
	return s.maxSamples
}

// Save writes the HTML file, prepends the sample to the index and trims the
// store past its configured maximum.
func (s *SampleStore) Save(typ CaptureType, url, html, errMsg string, context map[string]any) (*Sample, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sample dir: %w", err)
	}

	id, err := newSampleID()
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(s.samplePath(id), []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("writing sample %s: %w", id, err)
	}

	sample := Sample{
		ID:        id,
		Type:      typ,
		URL:       url,
		Timestamp: time.Now().UTC(),
		Error:     errMsg,
		Context:   context,
		FileSize:  len(html),
	}

	index := s.loadIndex()
	meta := sample
	meta.Context = nil // index holds metadata only
	index.Samples = append([]Sample{meta}, index.Samples...)

	if len(index.Samples) > s.maxSamples {
		s.trimLocked(&index, s.maxSamples)
	}

	if err := s.saveIndex(index); err != nil {
		return nil, err
	}

	return &sample, nil
}

// List returns sample metadata, newest first, optionally filtered by type.
func (s *SampleStore) List(typ CaptureType) []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.loadIndex()
	if typ == "" {
		return index.Samples
	}

	filtered := make([]Sample, 0, len(index.Samples))
	for _, sample := range index.Samples {
		if sample.Type == typ {
			filtered = append(filtered, sample)
		}
	}
	return filtered
}

// Get returns a sample's metadata and HTML content. ok is false when the ID
// is not indexed or the file is gone.
func (s *SampleStore) Get(id string) (Sample, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.loadIndex()
	for _, sample := range index.Samples {
		if sample.ID != id {
			continue
		}
		html, err := os.ReadFile(s.samplePath(id))
		if err != nil {
			return Sample{}, "", false
		}
		return sample, string(html), true
	}
	return Sample{}, "", false
}

// Delete removes a sample and its index entry. Returns false when the ID is
// unknown.
func (s *SampleStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.loadIndex()
	for i, sample := range index.Samples {
		if sample.ID != id {
			continue
		}
		index.Samples = append(index.Samples[:i], index.Samples[i+1:]...)
		if err := s.saveIndex(index); err != nil {
			s.logger.Error().Err(err).Msg("failed to save sample index")
		}
		if err := os.Remove(s.samplePath(id)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("sample_id", id).Msg("failed to remove sample file")
		}
		return true
	}
	return false
}

// Cleanup deletes the oldest samples beyond keep and reports how many files
// were removed. Running it twice with the same keep is a no-op the second
// time.
func (s *SampleStore) Cleanup(keep int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.loadIndex()
	deleted := s.trimLocked(&index, keep)
	if err := s.saveIndex(index); err != nil {
		s.logger.Error().Err(err).Msg("failed to save sample index")
	}
	return deleted
}

func (s *SampleStore) trimLocked(index *sampleIndex, keep int) int {
	if keep < 0 {
		keep = 0
	}
	if len(index.Samples) <= keep {
		return 0
	}

	deleted := 0
	for _, sample := range index.Samples[keep:] {
		if err := os.Remove(s.samplePath(sample.ID)); err == nil {
			deleted++
		} else if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("sample_id", sample.ID).Msg("failed to remove sample file")
		}
	}
	index.Samples = index.Samples[:keep]
	return deleted
}

func (s *SampleStore) loadIndex() sampleIndex {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		return sampleIndex{}
	}
	var index sampleIndex
	if err := json.Unmarshal(data, &index); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt sample index, starting fresh")
		return sampleIndex{}
	}
	return index
}

func (s *SampleStore) saveIndex(index sampleIndex) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating sample dir: %w", err)
	}
	index.LastUpdated = time.Now().UTC()
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, indexFile), data, 0o644)
}

func (s *SampleStore) samplePath(id string) string {
	return filepath.Join(s.dir, id+".html")
}

func newSampleID() (string, error) {
	suffix, err := gonanoid.Generate(idAlphabet, 6)
	if err != nil {
		return "", fmt.Errorf("generating sample id: %w", err)
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix), nil
}
