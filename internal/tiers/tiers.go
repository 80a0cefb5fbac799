// Package tiers holds the hand-maintained VCT tier-one roster used to
// partition leaderboard results. Team IDs come from the source site; names
// and aliases exist as a fallback for rows where no team link is present.
package tiers

import "strings"

// Status distinguishes franchised partner teams from ascended ones.
type Status string

const (
	StatusPartner  Status = "partner"
	StatusAscended Status = "ascended"
)

// Region is one of the four VCT international leagues.
type Region string

const (
	RegionAmericas Region = "americas"
	RegionEMEA     Region = "emea"
	RegionPacific  Region = "pacific"
	RegionChina    Region = "china"
)

// Team is one tier-one roster entry.
type Team struct {
	Name    string   `json:"name"`
	ID      string   `json:"id"`
	Status  Status   `json:"status"`
	Region  Region   `json:"region"`
	Aliases []string `json:"aliases,omitempty"`
}

// T1Teams is the VCT 2026 tier-one roster: 40 partners plus 8 ascended.
var T1Teams = []Team{
	// Americas
	{Name: "100 Thieves", ID: "120", Status: StatusPartner, Region: RegionAmericas, Aliases: []string{"100T"}},
	{Name: "Cloud9", ID: "188", Status: StatusPartner, Region: RegionAmericas, Aliases: []string{"C9"}},
	{Name: "Evil Geniuses", ID: "5248", Status: StatusPartner, Region: RegionAmericas, Aliases: []string{"EG"}},
	{Name: "FURIA", ID: "2406", Status: StatusPartner, Region: RegionAmericas, Aliases: []string{"FURIA Esports"}},
	{Name: "KRÜ Esports", ID: "2355", Status: StatusPartner, Region: RegionAmericas, Aliases: []string{"KRÜ", "KRU", "KRU Esports"}},
	{Name: "Leviatán", ID: "2359", Status: StatusPartner, Region: RegionAmericas, Aliases: []string{"LEV", "Leviatan"}},
	{Name: "LOUD", ID: "6961", Status: StatusPartner, Region: RegionAmericas},
	{Name: "MIBR", ID: "7386", Status: StatusPartner, Region: RegionAmericas},
	{Name: "NRG", ID: "1034", Status: StatusPartner, Region: RegionAmericas, Aliases: []string{"NRG Esports"}},
	{Name: "Sentinels", ID: "2", Status: StatusPartner, Region: RegionAmericas, Aliases: []string{"SEN"}},
	{Name: "G2 Esports", ID: "11058", Status: StatusAscended, Region: RegionAmericas, Aliases: []string{"G2"}},
	{Name: "ENVY", ID: "427", Status: StatusAscended, Region: RegionAmericas, Aliases: []string{"OpTic Gaming", "OpTic"}},

	// EMEA
	{Name: "BBL Esports", ID: "397", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"BBL"}},
	{Name: "Fnatic", ID: "2593", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"FNC"}},
	{Name: "FUT Esports", ID: "1184", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"FUT"}},
	{Name: "Karmine Corp", ID: "8877", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"KC"}},
	{Name: "Natus Vincere", ID: "4915", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"NAVI", "NaVi"}},
	{Name: "Team Heretics", ID: "1001", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"Heretics", "TH"}},
	{Name: "Team Liquid", ID: "474", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"Liquid", "TL"}},
	{Name: "Team Vitality", ID: "2059", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"Vitality", "VIT"}},
	{Name: "GIANTX", ID: "14419", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"GiantX", "Giants"}},
	{Name: "Gentle Mates", ID: "12694", Status: StatusPartner, Region: RegionEMEA, Aliases: []string{"M8"}},
	{Name: "Apeks", ID: "11479", Status: StatusAscended, Region: RegionEMEA},
	{Name: "Acend", ID: "3531", Status: StatusAscended, Region: RegionEMEA, Aliases: []string{"ACE"}},

	// Pacific
	{Name: "DetonatioN FocusMe", ID: "278", Status: StatusPartner, Region: RegionPacific, Aliases: []string{"DFM", "DetonatioN"}},
	{Name: "DRX", ID: "8185", Status: StatusPartner, Region: RegionPacific},
	{Name: "Gen.G Esports", ID: "17", Status: StatusPartner, Region: RegionPacific, Aliases: []string{"Gen.G", "GenG"}},
	{Name: "Global Esports", ID: "918", Status: StatusPartner, Region: RegionPacific, Aliases: []string{"GE"}},
	{Name: "Paper Rex", ID: "624", Status: StatusPartner, Region: RegionPacific, Aliases: []string{"PRX"}},
	{Name: "Rex Regum Qeon", ID: "878", Status: StatusPartner, Region: RegionPacific, Aliases: []string{"RRQ"}},
	{Name: "T1", ID: "14", Status: StatusPartner, Region: RegionPacific},
	{Name: "Team Secret", ID: "6199", Status: StatusPartner, Region: RegionPacific, Aliases: []string{"Secret", "TS"}},
	{Name: "ZETA DIVISION", ID: "5448", Status: StatusPartner, Region: RegionPacific, Aliases: []string{"ZETA", "ZD"}},
	{Name: "FULL SENSE", ID: "4050", Status: StatusPartner, Region: RegionPacific, Aliases: []string{"FS"}},
	{Name: "Nongshim RedForce", ID: "11060", Status: StatusAscended, Region: RegionPacific, Aliases: []string{"NS", "NS RedForce"}},
	{Name: "VARREL", ID: "11229", Status: StatusAscended, Region: RegionPacific},

	// China
	{Name: "All Gamers", ID: "1119", Status: StatusPartner, Region: RegionChina, Aliases: []string{"AG"}},
	{Name: "Bilibili Gaming", ID: "12010", Status: StatusPartner, Region: RegionChina, Aliases: []string{"BLG"}},
	{Name: "EDward Gaming", ID: "1120", Status: StatusPartner, Region: RegionChina, Aliases: []string{"EDG"}},
	{Name: "FunPlus Phoenix", ID: "11328", Status: StatusPartner, Region: RegionChina, Aliases: []string{"FPX"}},
	{Name: "JD Gaming", ID: "13576", Status: StatusPartner, Region: RegionChina, Aliases: []string{"JDG"}},
	{Name: "Nova Esports", ID: "12064", Status: StatusPartner, Region: RegionChina, Aliases: []string{"Nova"}},
	{Name: "Titan Esports Club", ID: "14137", Status: StatusPartner, Region: RegionChina, Aliases: []string{"TEC", "Titan"}},
	{Name: "Trace Esports", ID: "12685", Status: StatusPartner, Region: RegionChina, Aliases: []string{"TE", "Trace"}},
	{Name: "TYLOO", ID: "731", Status: StatusPartner, Region: RegionChina},
	{Name: "Wolves Esports", ID: "13790", Status: StatusPartner, Region: RegionChina, Aliases: []string{"Wolves"}},
	{Name: "Dragon Ranger Gaming", ID: "11981", Status: StatusAscended, Region: RegionChina, Aliases: []string{"DRG"}},
	{Name: "XLG Esports", ID: "13581", Status: StatusAscended, Region: RegionChina, Aliases: []string{"XLG"}},
}

var (
	byID   = make(map[string]*Team, len(T1Teams))
	byName = make(map[string]*Team, len(T1Teams)*2)
)

func init() {
	for i := range T1Teams {
		team := &T1Teams[i]
		byID[team.ID] = team
		byName[strings.ToLower(team.Name)] = team
		for _, alias := range team.Aliases {
			byName[strings.ToLower(alias)] = team
		}
	}
}

// IsT1 reports whether the given team ID or name belongs to the tier-one
// roster. IDs match exactly; names and aliases match case-insensitively.
func IsT1(idOrName string) bool {
	return Lookup(idOrName) != nil
}

// Lookup resolves a team ID (preferred) or name/alias (fallback) to its
// roster entry, or nil.
func Lookup(idOrName string) *Team {
	if idOrName == "" {
		return nil
	}
	if team, ok := byID[idOrName]; ok {
		return team
	}
	return byName[strings.ToLower(strings.TrimSpace(idOrName))]
}

// List returns roster entries, optionally filtered by status and region.
func List(status Status, region Region) []Team {
	teams := make([]Team, 0, len(T1Teams))
	for _, team := range T1Teams {
		if status != "" && team.Status != status {
			continue
		}
		if region != "" && team.Region != region {
			continue
		}
		teams = append(teams, team)
	}
	return teams
}
