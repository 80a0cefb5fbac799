package vlr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAgentRole(t *testing.T) {
	require.Equal(t, RoleDuelist, GetAgentRole("jett"))
	require.Equal(t, RoleDuelist, GetAgentRole("Jett"))
	require.Equal(t, RoleDuelist, GetAgentRole("  Raze "))
	require.Equal(t, RoleController, GetAgentRole("omen"))
	require.Equal(t, RoleController, GetAgentRole("clove"))
	require.Equal(t, RoleInitiator, GetAgentRole("sova"))
	require.Equal(t, RoleInitiator, GetAgentRole("kay/o"))
	require.Equal(t, RoleInitiator, GetAgentRole("kayo"))
	require.Equal(t, RoleSentinel, GetAgentRole("killjoy"))
	require.Equal(t, RoleSentinel, GetAgentRole("vyse"))

	// unknown agents default to duelist
	require.Equal(t, RoleDuelist, GetAgentRole("unknown-agent"))
	require.Equal(t, RoleDuelist, GetAgentRole(""))
}

func TestRolesOrder(t *testing.T) {
	require.Equal(t, []AgentRole{RoleDuelist, RoleController, RoleInitiator, RoleSentinel}, Roles)
}
