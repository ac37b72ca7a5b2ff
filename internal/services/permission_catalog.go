package services

import (
	"github.com/keygrant/keygrant-api/internal/constants"
)

// AgentTypeDefaults are the static per-agent-type bounds a new session key
// starts from. Overrides may narrow these but never widen them.
type AgentTypeDefaults struct {
	AllowedActions  []string
	SpendingLimit   int64 // smallest currency unit
	DurationSeconds int64
	MaxRenewals     int32
}

// PermissionCatalog is a pure lookup of agent-type defaults. It has no side
// effects and no failure modes: an unrecognized agent type resolves to a
// zero-capability default rather than an error, so a swallowed error can
// never turn into granted power.
type PermissionCatalog struct {
	defaults map[string]AgentTypeDefaults
}

// NewPermissionCatalog creates a catalog with the built-in agent types.
func NewPermissionCatalog() *PermissionCatalog {
	return &PermissionCatalog{
		defaults: map[string]AgentTypeDefaults{
			constants.PaymentsAgentType: {
				AllowedActions:  []string{constants.TransferAction},
				SpendingLimit:   100_00,
				DurationSeconds: 7 * 24 * 60 * 60,
				MaxRenewals:     4,
			},
			constants.TradingAgentType: {
				AllowedActions:  []string{constants.TransferAction, constants.ConvertAction},
				SpendingLimit:   250_00,
				DurationSeconds: 24 * 60 * 60,
				MaxRenewals:     7,
			},
			constants.BridgingAgentType: {
				AllowedActions:  []string{constants.TransferAction, constants.BridgeAction},
				SpendingLimit:   500_00,
				DurationSeconds: 72 * 60 * 60,
				MaxRenewals:     2,
			},
		},
	}
}

// DefaultsFor returns the defaults for an agent type. Unknown types get an
// empty action set, a zero spending limit and the minimum duration: no power.
func (c *PermissionCatalog) DefaultsFor(agentType string) AgentTypeDefaults {
	if d, ok := c.defaults[agentType]; ok {
		return copyDefaults(d)
	}
	return AgentTypeDefaults{
		AllowedActions:  []string{},
		SpendingLimit:   0,
		DurationSeconds: 60,
		MaxRenewals:     0,
	}
}

// Knows reports whether the agent type has a catalog entry.
func (c *PermissionCatalog) Knows(agentType string) bool {
	_, ok := c.defaults[agentType]
	return ok
}

func copyDefaults(d AgentTypeDefaults) AgentTypeDefaults {
	actions := make([]string, len(d.AllowedActions))
	copy(actions, d.AllowedActions)
	d.AllowedActions = actions
	return d
}
