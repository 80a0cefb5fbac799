package scrape

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "Sentinels vs LOUD", CleanText("  Sentinels \n\t vs   LOUD  "))
	require.Equal(t, "", CleanText("   \n\t  "))
	require.Equal(t, "", CleanText(""))
}

func TestParseNumber(t *testing.T) {
	require.Equal(t, 1234.5, ParseNumber("1,234.5"))
	require.Equal(t, 72.0, ParseNumber("72%"))
	require.Equal(t, 0.0, ParseNumber("–"))
	require.Equal(t, 0.0, ParseNumber(""))
	require.Equal(t, 1.08, ParseNumber(" 1.08 "))
}

func TestParseInt(t *testing.T) {
	require.Equal(t, 13, ParseInt("13"))
	require.Equal(t, 1500, ParseInt("1,500"))
	require.Equal(t, 0, ParseInt("abc"))
	require.Equal(t, 12, ParseInt("12.7"))
}

func TestParseScore(t *testing.T) {
	s := ParseScore("13")
	require.NotNil(t, s)
	require.Equal(t, 13, *s)

	// a real zero survives
	s = ParseScore("0")
	require.NotNil(t, s)
	require.Equal(t, 0, *s)

	// dash placeholders mean no score yet
	require.Nil(t, ParseScore("–"))
	require.Nil(t, ParseScore("-"))
	require.Nil(t, ParseScore(""))
	require.Nil(t, ParseScore("  "))
}

func TestParseID(t *testing.T) {
	re := regexp.MustCompile(`/player/(\d+)`)
	require.Equal(t, "9", ParseID("/player/9/tenz", re))
	require.Equal(t, "", ParseID("/team/2/sentinels", re))
	require.Equal(t, "", ParseID("", re))
}

func TestParseImageURL(t *testing.T) {
	base := "https://www.vlr.gg"
	require.Equal(t, "https://owcdn.net/img/a.png", ParseImageURL(base, "//owcdn.net/img/a.png"))
	require.Equal(t, "https://www.vlr.gg/img/b.png", ParseImageURL(base, "/img/b.png"))
	require.Equal(t, "https://cdn.example.com/c.png", ParseImageURL(base, "https://cdn.example.com/c.png"))
	require.Equal(t, "", ParseImageURL(base, ""))
}

func TestParseCountryCode(t *testing.T) {
	require.Equal(t, "us", ParseCountryCode("flag mod-us"))
	require.Equal(t, "kr", ParseCountryCode("flag mod-kr mod-16"))
	require.Equal(t, "", ParseCountryCode("flag"))
	require.Equal(t, "", ParseCountryCode(""))
}
