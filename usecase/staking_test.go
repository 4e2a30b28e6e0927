package usecase

import (
	"testing"
	"tokenomics/domain"
	"tokenomics/interface/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStakingInteractor(t *testing.T, tiers []domain.StakingTier) *StakingInteractor {
	t.Helper()
	interactor := NewStakingInteractor(repository.NewMemoryStore[string, domain.StakingTier]())
	require.NoError(t, interactor.RegisterTiers(tiers))
	return interactor
}

func TestTierFor(t *testing.T) {
	interactor := newStakingInteractor(t, domain.DefaultTiers())

	tests := []struct {
		stake int64
		tier  string
	}{
		{1_000, "bronze"},
		{9_999, "bronze"},
		{10_000, "silver"},
		{75_000, "gold"},
		{100_000, "platinum"},
		{999_999, "diamond"},
		{5_000_000, "quantum"},
	}
	for _, tc := range tests {
		tier, err := interactor.TierFor(tc.stake)
		require.NoError(t, err, "stake %v", tc.stake)
		assert.Equal(t, tc.tier, tier.ID, "stake %v", tc.stake)
	}

	_, err := interactor.TierFor(500)
	assert.ErrorIs(t, err, domain.ErrorTierNotFound)
}

func TestTierFor_SkipsInactiveTiers(t *testing.T) {
	tiers := domain.DefaultTiers()
	for i := range tiers {
		if tiers[i].ID == "gold" {
			tiers[i].Active = false
		}
	}
	interactor := newStakingInteractor(t, tiers)

	tier, err := interactor.TierFor(75_000)
	require.NoError(t, err)
	assert.Equal(t, "silver", tier.ID)
}

func TestRegisterTiers_Idempotent(t *testing.T) {
	interactor := newStakingInteractor(t, domain.DefaultTiers())
	first := interactor.Tiers()

	require.NoError(t, interactor.RegisterTiers(domain.DefaultTiers()))
	assert.Equal(t, first, interactor.Tiers())
	assert.Equal(t, 6, interactor.Count())
}

func TestRegisterTiers_RejectsWithoutChange(t *testing.T) {
	interactor := newStakingInteractor(t, domain.DefaultTiers())

	duplicate := []domain.StakingTier{
		{ID: "solo", MinimumStake: 1, APY: 1, BonusMultiplier: 1, Active: true},
		{ID: "solo", MinimumStake: 2, APY: 1, BonusMultiplier: 1, Active: true},
	}
	assert.ErrorIs(t, interactor.RegisterTiers(duplicate), domain.ErrorDuplicateTierId)

	invalid := []domain.StakingTier{
		{ID: "weak", MinimumStake: 1, APY: 1, BonusMultiplier: 0.5, Active: true},
	}
	assert.ErrorIs(t, interactor.RegisterTiers(invalid), domain.ErrorInvalidTier)

	assert.Equal(t, 6, interactor.Count())
	tier, err := interactor.TierFor(75_000)
	require.NoError(t, err)
	assert.Equal(t, "gold", tier.ID)
}

func TestRegisterTiers_ReplacesCatalog(t *testing.T) {
	interactor := newStakingInteractor(t, domain.DefaultTiers())

	require.NoError(t, interactor.RegisterTiers([]domain.StakingTier{
		{ID: "only", MinimumStake: 10, APY: 3, LockPeriodDays: 7, BonusMultiplier: 1, Active: true},
	}))
	assert.Equal(t, 1, interactor.Count())

	tier, err := interactor.TierFor(75_000)
	require.NoError(t, err)
	assert.Equal(t, "only", tier.ID)
}

func TestProjectedReward(t *testing.T) {
	interactor := newStakingInteractor(t, domain.DefaultTiers())

	reward, tier, err := interactor.ProjectedReward(100_000, 365)
	require.NoError(t, err)
	assert.Equal(t, "platinum", tier.ID)
	assert.Equal(t, int64(22_500), reward)

	_, _, err = interactor.ProjectedReward(10, 365)
	assert.ErrorIs(t, err, domain.ErrorTierNotFound)
}
