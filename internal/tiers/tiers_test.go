package tiers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupByID(t *testing.T) {
	team := Lookup("2")
	require.NotNil(t, team)
	require.Equal(t, "Sentinels", team.Name)
	require.Equal(t, StatusPartner, team.Status)
	require.Equal(t, RegionAmericas, team.Region)
}

func TestLookupByNameAndAlias(t *testing.T) {
	require.NotNil(t, Lookup("Sentinels"))
	require.NotNil(t, Lookup("sentinels"))
	require.NotNil(t, Lookup("SEN"))
	require.NotNil(t, Lookup("G2"))
	require.Nil(t, Lookup("Some Academy Team"))
	require.Nil(t, Lookup(""))
}

func TestIsT1(t *testing.T) {
	require.True(t, IsT1("2"))
	require.True(t, IsT1("Fnatic"))
	require.False(t, IsT1("99999"))
	require.False(t, IsT1(""))
}

func TestRosterShape(t *testing.T) {
	require.Len(t, T1Teams, 48)

	partners := List(StatusPartner, "")
	ascended := List(StatusAscended, "")
	require.Len(t, partners, 40)
	require.Len(t, ascended, 8)
	require.Equal(t, len(T1Teams), len(partners)+len(ascended))

	// every region carries exactly two ascended slots
	for _, region := range []Region{RegionAmericas, RegionEMEA, RegionPacific, RegionChina} {
		require.Len(t, List(StatusAscended, region), 2, "region %s", region)
	}
}

func TestListFilters(t *testing.T) {
	all := List("", "")
	require.Len(t, all, len(T1Teams))

	emea := List("", RegionEMEA)
	require.Len(t, emea, 12)
	for _, team := range emea {
		require.Equal(t, RegionEMEA, team.Region)
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, team := range T1Teams {
		require.False(t, seen[team.ID], "duplicate ID %s (%s)", team.ID, team.Name)
		seen[team.ID] = true
	}
}
