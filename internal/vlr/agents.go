package vlr

import "strings"

// AgentRole is the tactical classification of a playable agent.
type AgentRole string

const (
	RoleDuelist    AgentRole = "duelist"
	RoleController AgentRole = "controller"
	RoleInitiator  AgentRole = "initiator"
	RoleSentinel   AgentRole = "sentinel"
)

// Roles lists the four roles in their canonical iteration order. Tie-breaking
// in downstream aggregation relies on this order being stable.
var Roles = []AgentRole{RoleDuelist, RoleController, RoleInitiator, RoleSentinel}

// agentRoles maps every known agent (lowercase) to its role. New agents get
// added here as they release.
var agentRoles = map[string]AgentRole{
	// duelists
	"jett":    RoleDuelist,
	"raze":    RoleDuelist,
	"reyna":   RoleDuelist,
	"phoenix": RoleDuelist,
	"neon":    RoleDuelist,
	"iso":     RoleDuelist,
	"yoru":    RoleDuelist,
	"waylay":  RoleDuelist,

	// controllers
	"omen":      RoleController,
	"astra":     RoleController,
	"brimstone": RoleController,
	"viper":     RoleController,
	"harbor":    RoleController,
	"clove":     RoleController,

	// initiators
	"sova":   RoleInitiator,
	"breach": RoleInitiator,
	"skye":   RoleInitiator,
	"kay/o":  RoleInitiator,
	"kayo":   RoleInitiator,
	"fade":   RoleInitiator,
	"gekko":  RoleInitiator,
	"tejo":   RoleInitiator,

	// sentinels
	"killjoy":  RoleSentinel,
	"cypher":   RoleSentinel,
	"sage":     RoleSentinel,
	"chamber":  RoleSentinel,
	"deadlock": RoleSentinel,
	"vyse":     RoleSentinel,
}

// GetAgentRole maps an agent name (case-insensitive) to its role. Unknown
// names default to duelist rather than erroring, so a newly released agent
// degrades gracefully until the table is updated.
func GetAgentRole(agent string) AgentRole {
	if role, ok := agentRoles[strings.ToLower(strings.TrimSpace(agent))]; ok {
		return role
	}
	return RoleDuelist
}
