package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	require.Equal(t, "vlr:matches:live", Key("matches", "live"))
	require.Equal(t, "vlr:player:9:agents", Key("player", "9", "agents", ""))
	require.Equal(t, "vlr", Key())
	require.Equal(t, "vlr:rankings", Key("rankings", ""))
}

func TestTTL(t *testing.T) {
	require.Equal(t, 30*time.Second, TTL(ClassLive))
	require.Equal(t, 5*time.Minute, TTL(ClassUpcoming))
	require.Equal(t, time.Hour, TTL(ClassResults))
	require.Equal(t, 24*time.Hour, TTL(ClassMatch))
	// unknown classes should not live long
	require.Equal(t, 30*time.Second, TTL(Class("bogus")))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(zerolog.Nop())
	defer store.Close()

	_, ok := store.Get(ctx, "vlr:missing")
	require.False(t, ok)

	store.Set(ctx, "vlr:matches:live", []byte(`[{"id":"1"}]`), ClassLive)
	data, ok := store.Get(ctx, "vlr:matches:live")
	require.True(t, ok)
	require.Equal(t, `[{"id":"1"}]`, string(data))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(zerolog.Nop())

	store.Set(ctx, "vlr:k", []byte("v"), ClassLive)

	// force expiry instead of sleeping
	store.mu.Lock()
	entry := store.entries["vlr:k"]
	entry.expires = time.Now().Add(-time.Second)
	store.entries["vlr:k"] = entry
	store.mu.Unlock()

	_, ok := store.Get(ctx, "vlr:k")
	require.False(t, ok)

	// the expired read also evicted the entry
	store.mu.RLock()
	_, present := store.entries["vlr:k"]
	store.mu.RUnlock()
	require.False(t, present)
}

func TestMemoryStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(zerolog.Nop())

	store.Set(ctx, "vlr:player:9", []byte("a"), ClassPlayer)
	store.Set(ctx, "vlr:player:9:agents", []byte("b"), ClassPlayer)
	store.Set(ctx, "vlr:team:2", []byte("c"), ClassTeam)

	store.Invalidate(ctx, "player:9")

	_, ok := store.Get(ctx, "vlr:player:9")
	require.False(t, ok)
	_, ok = store.Get(ctx, "vlr:player:9:agents")
	require.False(t, ok)
	_, ok = store.Get(ctx, "vlr:team:2")
	require.True(t, ok)
}

func TestNewFallsBackToMemory(t *testing.T) {
	store := New("", zerolog.Nop())
	_, ok := store.(*MemoryStore)
	require.True(t, ok)
}
