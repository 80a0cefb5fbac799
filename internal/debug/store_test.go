package debug

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shreshth-s/vlr-api/internal/config"
)

func newTestStore(t *testing.T, maxSamples int) *SampleStore {
	t.Helper()
	return NewSampleStore(config.DebugConfig{
		Enabled:    true,
		SampleDir:  t.TempDir(),
		MaxSamples: maxSamples,
	}, zerolog.Nop())
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t, 10)

	sample, err := store.Save(CaptureMatchesResults, "https://www.vlr.gg/matches/results",
		"<html>results</html>", "No matches found", map[string]any{"type": "results"})
	require.NoError(t, err)
	require.NotEmpty(t, sample.ID)
	require.Equal(t, CaptureMatchesResults, sample.Type)
	require.Equal(t, "No matches found", sample.Error)
	require.Equal(t, len("<html>results</html>"), sample.FileSize)

	got, html, ok := store.Get(sample.ID)
	require.True(t, ok)
	require.Equal(t, sample.ID, got.ID)
	require.Equal(t, "<html>results</html>", html)

	_, _, ok = store.Get("missing-id")
	require.False(t, ok)
}

func TestSaveDisabled(t *testing.T) {
	store := NewSampleStore(config.DebugConfig{
		Enabled:   false,
		SampleDir: t.TempDir(),
	}, zerolog.Nop())

	_, err := store.Save(CaptureMatchesLive, "url", "<html></html>", "", nil)
	require.ErrorIs(t, err, ErrDisabled)
}

func TestListNewestFirstAndTypeFilter(t *testing.T) {
	store := newTestStore(t, 10)

	first, err := store.Save(CaptureMatchesLive, "u1", "<a>", "", nil)
	require.NoError(t, err)
	second, err := store.Save(CaptureTeamRankings, "u2", "<b>", "", nil)
	require.NoError(t, err)

	all := store.List("")
	require.Len(t, all, 2)
	require.Equal(t, second.ID, all[0].ID)
	require.Equal(t, first.ID, all[1].ID)

	rankings := store.List(CaptureTeamRankings)
	require.Len(t, rankings, 1)
	require.Equal(t, second.ID, rankings[0].ID)

	require.Empty(t, store.List(CaptureEventDetail))
}

func TestAutoTrimOnSave(t *testing.T) {
	store := newTestStore(t, 2)

	var ids []string
	for i := 0; i < 4; i++ {
		sample, err := store.Save(CaptureMatchesLive, "u", "<html></html>", "", nil)
		require.NoError(t, err)
		ids = append(ids, sample.ID)
	}

	samples := store.List("")
	require.Len(t, samples, 2)
	// only the two newest survive
	require.Equal(t, ids[3], samples[0].ID)
	require.Equal(t, ids[2], samples[1].ID)

	_, _, ok := store.Get(ids[0])
	require.False(t, ok)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t, 10)

	sample, err := store.Save(CapturePlayerStats, "u", "<html></html>", "", nil)
	require.NoError(t, err)

	require.True(t, store.Delete(sample.ID))
	require.False(t, store.Delete(sample.ID))
	require.Empty(t, store.List(""))
}

func TestCleanupIdempotent(t *testing.T) {
	store := newTestStore(t, 10)

	for i := 0; i < 5; i++ {
		_, err := store.Save(CaptureMatchesLive, "u", "<html></html>", "", nil)
		require.NoError(t, err)
	}

	require.Equal(t, 3, store.Cleanup(2))
	require.Len(t, store.List(""), 2)

	// second pass has nothing left to remove
	require.Equal(t, 0, store.Cleanup(2))
	require.Len(t, store.List(""), 2)
}

func TestCaptureTypeValid(t *testing.T) {
	require.True(t, CaptureMatchesLive.Valid())
	require.True(t, CaptureEventSearch.Valid())
	require.False(t, CaptureType("nope").Valid())
	require.False(t, CaptureType("").Valid())

	require.Len(t, CaptureTypes, len(CapturePaths))
	for _, typ := range CaptureTypes {
		require.True(t, typ.Valid())
	}
}
