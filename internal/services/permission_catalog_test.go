package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keygrant/keygrant-api/internal/constants"
	"github.com/keygrant/keygrant-api/internal/logger"
	"github.com/keygrant/keygrant-api/internal/services"
)

func init() {
	logger.InitLogger("test")
}

func TestPermissionCatalog_DefaultsFor(t *testing.T) {
	catalog := services.NewPermissionCatalog()

	tests := []struct {
		name            string
		agentType       string
		wantActions     []string
		wantLimit       int64
		wantDuration    int64
		wantMaxRenewals int32
	}{
		{
			name:            "payments agent",
			agentType:       constants.PaymentsAgentType,
			wantActions:     []string{constants.TransferAction},
			wantLimit:       100_00,
			wantDuration:    7 * 24 * 60 * 60,
			wantMaxRenewals: 4,
		},
		{
			name:            "trading agent",
			agentType:       constants.TradingAgentType,
			wantActions:     []string{constants.TransferAction, constants.ConvertAction},
			wantLimit:       250_00,
			wantDuration:    24 * 60 * 60,
			wantMaxRenewals: 7,
		},
		{
			name:            "bridging agent",
			agentType:       constants.BridgingAgentType,
			wantActions:     []string{constants.TransferAction, constants.BridgeAction},
			wantLimit:       500_00,
			wantDuration:    72 * 60 * 60,
			wantMaxRenewals: 2,
		},
		{
			name:            "unknown agent type gets no power",
			agentType:       "sentient-toaster",
			wantActions:     []string{},
			wantLimit:       0,
			wantDuration:    60,
			wantMaxRenewals: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defaults := catalog.DefaultsFor(tt.agentType)
			assert.Equal(t, tt.wantActions, defaults.AllowedActions)
			assert.Equal(t, tt.wantLimit, defaults.SpendingLimit)
			assert.Equal(t, tt.wantDuration, defaults.DurationSeconds)
			assert.Equal(t, tt.wantMaxRenewals, defaults.MaxRenewals)
		})
	}
}

func TestPermissionCatalog_Knows(t *testing.T) {
	catalog := services.NewPermissionCatalog()

	assert.True(t, catalog.Knows(constants.PaymentsAgentType))
	assert.True(t, catalog.Knows(constants.TradingAgentType))
	assert.True(t, catalog.Knows(constants.BridgingAgentType))
	assert.False(t, catalog.Knows(""))
	assert.False(t, catalog.Knows("payments "))
}

func TestPermissionCatalog_DefaultsAreCopied(t *testing.T) {
	catalog := services.NewPermissionCatalog()

	first := catalog.DefaultsFor(constants.TradingAgentType)
	first.AllowedActions[0] = "tampered"

	second := catalog.DefaultsFor(constants.TradingAgentType)
	assert.Equal(t, constants.TransferAction, second.AllowedActions[0])
}
