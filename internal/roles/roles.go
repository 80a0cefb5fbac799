// Package roles derives a player's role profile from their per-map match
// lines. Everything here is heuristic: role shares are round-weighted over
// the agents played, and the playstyle labels come from threshold rules over
// the aggregated stat line.
package roles

import (
	"math"
	"sort"

	"github.com/shreshth-s/vlr-api/internal/vlr"
)

// RoleShare is one role in a distribution, in percent of rounds played.
type RoleShare struct {
	Role    vlr.AgentRole `json:"role"`
	Percent float64       `json:"percent"`
	Rounds  int           `json:"rounds"`
	Agents  []string      `json:"agents"`
}

// Report is the derived role profile of a player.
type Report struct {
	PrimaryRole  vlr.AgentRole `json:"primaryRole"`
	Distribution []RoleShare   `json:"distribution"`
	Playstyle    string        `json:"playstyle"`
	Traits       []string      `json:"traits"`
	MapsAnalyzed int           `json:"mapsAnalyzed"`
}

// IGLGuess is a speculative in-game-leader estimate. The source exposes no
// leadership data, so this only scores supportive stat patterns.
type IGLGuess struct {
	Likely     bool    `json:"likely"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Analyze aggregates per-map lines into a role report. Lines with no rounds
// recorded count as one round so a sparse history still produces shares.
func Analyze(lines []vlr.PlayerMatchStats) Report {
	if len(lines) == 0 {
		return Report{
			PrimaryRole:  vlr.RoleDuelist,
			Distribution: []RoleShare{},
			Playstyle:    "Standard",
			Traits:       []string{},
		}
	}

	roleRounds := map[vlr.AgentRole]int{}
	roleAgents := map[vlr.AgentRole]map[string]bool{}
	total := 0

	for _, line := range lines {
		rounds := line.Rounds
		if rounds == 0 {
			rounds = 1
		}
		role := line.AgentRole
		if role == "" {
			role = vlr.GetAgentRole(line.Agent)
		}
		roleRounds[role] += rounds
		total += rounds

		if roleAgents[role] == nil {
			roleAgents[role] = map[string]bool{}
		}
		if line.Agent != "" {
			roleAgents[role][line.Agent] = true
		}
	}

	distribution := make([]RoleShare, 0, len(roleRounds))
	for role, rounds := range roleRounds {
		agents := make([]string, 0, len(roleAgents[role]))
		for a := range roleAgents[role] {
			agents = append(agents, a)
		}
		sort.Strings(agents)

		distribution = append(distribution, RoleShare{
			Role:    role,
			Percent: math.Round(float64(rounds) / float64(total) * 100),
			Rounds:  rounds,
			Agents:  agents,
		})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Rounds != distribution[j].Rounds {
			return distribution[i].Rounds > distribution[j].Rounds
		}
		return roleOrder(distribution[i].Role) < roleOrder(distribution[j].Role)
	})

	share := func(role vlr.AgentRole) float64 {
		for _, d := range distribution {
			if d.Role == role {
				return d.Percent
			}
		}
		return 0
	}

	primary := distribution[0].Role
	traits := deriveTraits(lines, share)

	return Report{
		PrimaryRole:  primary,
		Distribution: distribution,
		Playstyle:    playstyleLabel(share, traits),
		Traits:       traits,
		MapsAnalyzed: len(lines),
	}
}

func roleOrder(role vlr.AgentRole) int {
	for i, r := range vlr.Roles {
		if r == role {
			return i
		}
	}
	return len(vlr.Roles)
}

// deriveTraits applies the stat thresholds over the aggregated line.
func deriveTraits(lines []vlr.PlayerMatchStats, share func(vlr.AgentRole) float64) []string {
	var (
		firstKills, firstDeaths int
		kast                    float64
		assists                 int
	)
	for _, line := range lines {
		firstKills += line.FirstKills
		firstDeaths += line.FirstDeaths
		kast += line.KAST
		assists += line.Assists
	}
	avgKAST := kast / float64(len(lines))

	fkfd := float64(firstKills)
	if firstDeaths > 0 {
		fkfd = float64(firstKills) / float64(firstDeaths)
	}

	traits := []string{}
	if fkfd > 1.2 {
		traits = append(traits, "entry")
	}
	if avgKAST > 70 && fkfd < 0.8 {
		traits = append(traits, "anchor")
	}
	if float64(assists) > 0.7*float64(firstKills) && share(vlr.RoleInitiator) > 30 {
		traits = append(traits, "playmaker")
	}

	broad := 0
	for _, role := range vlr.Roles {
		if share(role) >= 20 {
			broad++
		}
	}
	if broad >= 2 {
		traits = append(traits, "flexible")
	}

	return traits
}

func playstyleLabel(share func(vlr.AgentRole) float64, traits []string) string {
	has := func(trait string) bool {
		for _, t := range traits {
			if t == trait {
				return true
			}
		}
		return false
	}

	switch {
	case share(vlr.RoleDuelist) >= 60 && has("entry"):
		return "Entry Fragger"
	case share(vlr.RoleDuelist) >= 60:
		return "Star Duelist"
	case share(vlr.RoleController) >= 60:
		return "Smoke Player"
	case share(vlr.RoleInitiator) >= 60 && has("playmaker"):
		return "Playmaker"
	case share(vlr.RoleInitiator) >= 60:
		return "Info Gatherer"
	case share(vlr.RoleSentinel) >= 60 && has("anchor"):
		return "Anchor"
	case share(vlr.RoleSentinel) >= 60:
		return "Site Holder"
	case share(vlr.RoleDuelist) >= 30 && share(vlr.RoleInitiator) >= 30:
		return "Flex Entry"
	case share(vlr.RoleController) >= 30 && share(vlr.RoleSentinel) >= 30:
		return "Flex Support"
	case has("flexible"):
		return "Flex Player"
	default:
		return "Standard"
	}
}

// GuessIGL scores stat patterns that tend to correlate with calling:
// high KAST, time on support agents and a modest ADR. Confidence caps at 100.
func GuessIGL(lines []vlr.PlayerMatchStats) IGLGuess {
	if len(lines) == 0 {
		return IGLGuess{Reasoning: "no match data available"}
	}

	var kast, adr float64
	supportLines := 0
	for _, line := range lines {
		kast += line.KAST
		adr += line.ADR
		role := line.AgentRole
		if role == "" {
			role = vlr.GetAgentRole(line.Agent)
		}
		if role == vlr.RoleController || role == vlr.RoleSentinel {
			supportLines++
		}
	}
	avgKAST := kast / float64(len(lines))
	avgADR := adr / float64(len(lines))
	supportRatio := float64(supportLines) / float64(len(lines))

	score := avgKAST*0.5 + supportRatio*30
	if avgADR < 150 {
		score += 20
	}
	score = math.Min(math.Round(score), 100)

	return IGLGuess{
		Likely:     score >= 60,
		Confidence: score,
		Reasoning:  "estimated from KAST, support-agent share and damage; the source publishes no leadership data",
	}
}
