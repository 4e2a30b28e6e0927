package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTiers(t *testing.T) {
	tiers := DefaultTiers()
	require.Len(t, tiers, 6)

	ids := make([]string, len(tiers))
	for i, tier := range tiers {
		ids[i] = tier.ID
		assert.True(t, tier.IsValid(), tier.ID)
		assert.True(t, tier.Active, tier.ID)
	}
	assert.Equal(t, []string{"bronze", "silver", "gold", "platinum", "diamond", "quantum"}, ids)

	for i := 1; i < len(tiers); i++ {
		previous, current := tiers[i-1], tiers[i]
		assert.Greater(t, current.MinimumStake, previous.MinimumStake, current.ID)
		assert.Greater(t, current.APY, previous.APY, current.ID)
		assert.Greater(t, current.LockPeriodDays, previous.LockPeriodDays, current.ID)
		assert.Greater(t, current.BonusMultiplier, previous.BonusMultiplier, current.ID)
	}
}

func TestStakingTierIsValid(t *testing.T) {
	valid := StakingTier{ID: "x", MinimumStake: 0, APY: 0, LockPeriodDays: 0, BonusMultiplier: 1}
	assert.True(t, valid.IsValid())

	for _, tier := range []StakingTier{
		{MinimumStake: 1, BonusMultiplier: 1},
		{ID: "x", MinimumStake: -1, BonusMultiplier: 1},
		{ID: "x", APY: -1, BonusMultiplier: 1},
		{ID: "x", LockPeriodDays: -1, BonusMultiplier: 1},
		{ID: "x", BonusMultiplier: 0.99},
	} {
		assert.False(t, tier.IsValid(), "%+v", tier)
	}
}
