package cache

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Class names a TTL bucket. Every cacheable result family maps to one class.
type Class string

const (
	ClassLive     Class = "live"
	ClassUpcoming Class = "upcoming"
	ClassResults  Class = "results"
	ClassMatch    Class = "match"
	ClassPlayer   Class = "player"
	ClassTeam     Class = "team"
	ClassRankings Class = "rankings"
	ClassStats    Class = "stats"
)

var classTTL = map[Class]time.Duration{
	ClassLive:     30 * time.Second,
	ClassUpcoming: 5 * time.Minute,
	ClassResults:  time.Hour,
	ClassMatch:    24 * time.Hour,
	ClassPlayer:   30 * time.Minute,
	ClassTeam:     30 * time.Minute,
	ClassRankings: time.Hour,
	ClassStats:    30 * time.Minute,
}

// TTL returns the duration of a class. Unknown classes expire fast rather
// than sticking around.
func TTL(class Class) time.Duration {
	if d, ok := classTTL[class]; ok {
		return d
	}
	return 30 * time.Second
}

// Store is the process-wide result cache. Implementations are best-effort:
// a failing Get is a miss and a failing Set is dropped, never surfaced.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, class Class)
	Invalidate(ctx context.Context, pattern string)
	Close() error
}

// Key builds a namespaced cache key, e.g. Key("matches", "live") ->
// "vlr:matches:live". Empty parts are skipped.
func Key(parts ...string) string {
	kept := make([]string, 0, len(parts)+1)
	kept = append(kept, "vlr")
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ":")
}

// New connects to Redis when a URL is configured and falls back to the
// in-process store otherwise (or when the connection fails). Exactly one
// store exists per process.
func New(redisURL string, logger zerolog.Logger) Store {
	if redisURL == "" {
		logger.Info().Msg("no REDIS_URL configured, using in-memory cache")
		return NewMemoryStore(logger)
	}

	store, err := NewRedisStore(redisURL, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
		return NewMemoryStore(logger)
	}

	logger.Info().Msg("connected to redis")
	return store
}
