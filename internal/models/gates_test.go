package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGateMap(t *testing.T) {
	assert.NoError(t, ValidateGateMap())
}

func TestFlagByGate(t *testing.T) {
	var flags SafetyFlags

	tests := []struct {
		gate  string
		field *bool
	}{
		{GateOptIn, &flags.OptInValidation},
		{GateSession24h, &flags.SessionRule24h},
		{GateWarmup, &flags.WarmupMode},
		{GateTemplate, &flags.TemplateEnforcement},
		{GateRateLimiter, &flags.RateLimiter},
		{GateKillSwitch, &flags.KillSwitch},
	}

	for _, tt := range tests {
		ptr, ok := FlagByGate(&flags, tt.gate)
		require.True(t, ok, tt.gate)
		assert.Same(t, tt.field, ptr, tt.gate)
	}

	_, ok := FlagByGate(&flags, "no-such-gate")
	assert.False(t, ok)
}

func TestGateNamesCoversAllGates(t *testing.T) {
	assert.ElementsMatch(t, []string{
		GateOptIn, GateSession24h, GateWarmup,
		GateTemplate, GateRateLimiter, GateKillSwitch,
	}, GateNames())
}
