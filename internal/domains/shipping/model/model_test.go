package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Effective(t *testing.T) {
	policy := NewPolicy(2)

	tests := []struct {
		name       string
		selected   OptionID
		totalItems int
		expectID   OptionID
		expectFree bool
	}{
		{"single item keeps priority", OptionPriority, 1, OptionPriority, false},
		{"single item keeps standard", OptionStandard, 1, OptionStandard, false},
		{"threshold overrides priority", OptionPriority, 2, OptionFree, true},
		{"above threshold overrides standard", OptionStandard, 5, OptionFree, true},
		{"stale free selection falls back", OptionFree, 1, DefaultOption, false},
		{"empty selection uses default", "", 1, DefaultOption, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, free, err := policy.Effective(tt.selected, tt.totalItems)
			require.NoError(t, err)
			assert.Equal(t, tt.expectID, opt.ID)
			assert.Equal(t, tt.expectFree, free)
		})
	}
}

func TestPolicy_EffectiveFreeCostsNothing(t *testing.T) {
	opt, _, err := NewPolicy(2).Effective(OptionPriority, 3)
	require.NoError(t, err)
	assert.True(t, opt.Price.IsZero())
}

func TestPolicy_CanSelect(t *testing.T) {
	policy := NewPolicy(2)

	assert.NoError(t, policy.CanSelect(OptionPriority, 1))
	assert.ErrorIs(t, policy.CanSelect(OptionFree, 1), ErrFreeShippingNotEligible)
	assert.NoError(t, policy.CanSelect(OptionFree, 2))
	assert.ErrorIs(t, policy.CanSelect("teleport", 2), ErrUnknownOption)
}

func TestEstimateDelivery(t *testing.T) {
	now := time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC)

	est := EstimateDelivery(now)

	assert.Equal(t, time.Date(2026, time.March, 19, 0, 0, 0, 0, time.UTC), est.From)
	assert.Equal(t, time.Date(2026, time.March, 22, 0, 0, 0, 0, time.UTC), est.To)
	assert.Equal(t, "19/03 a 22/03", est.Label())
}

func TestOptions_ReturnsCopy(t *testing.T) {
	opts := Options()
	require.Len(t, opts, 3)
	opts[0].Label = "changed"

	again := Options()
	assert.NotEqual(t, "changed", again[0].Label)
}
