package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// sweepThreshold is the entry count past which a Set triggers an expiry
// sweep.
const sweepThreshold = 1000

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is the in-process fallback cache. Expired entries linger until
// read, or until a Set finds the map past the sweep threshold.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	logger  zerolog.Logger
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore(logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		logger:  logger.With().Str("component", "cache").Logger(),
	}
}

// Get retrieves a value by key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

// Set stores a value under the class TTL.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, class Class) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		data:    value,
		expires: time.Now().Add(TTL(class)),
	}
	if len(s.entries) > sweepThreshold {
		s.sweepLocked()
	}
}

// Invalidate deletes every key containing pattern.
func (s *MemoryStore) Invalidate(_ context.Context, pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if strings.Contains(key, pattern) {
			delete(s.entries, key)
		}
	}
}

// Close is a no-op for the in-process store.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) sweepLocked() {
	now := time.Now()
	for key, entry := range s.entries {
		if entry.expires.Before(now) {
			delete(s.entries, key)
		}
	}
}
