package usecase

import (
	"testing"
	"tokenomics/domain"
	"tokenomics/infrastructure/random"
	"tokenomics/interface/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBurnInteractor(t *testing.T, supply int64, values ...float64) (*BurnInteractor, *SupplyLedger, *notifier.Recorder) {
	t.Helper()
	ledger, err := NewSupplyLedger(supply)
	require.NoError(t, err)
	recorder := notifier.NewRecorder(0)
	return NewBurnInteractor(ledger, random.NewSequence(values...), recorder, "TKN"), ledger, recorder
}

func TestComputeBurnAmount(t *testing.T) {
	tests := []struct {
		name     string
		strategy domain.BurnStrategy
		random   float64
		expected int64
	}{
		{"conservative", domain.BurnConservative, 0.9, 5_000},
		{"aggressive", domain.BurnAggressive, 0.9, 30_000},
		{"adaptive lowest rate", domain.BurnAdaptive, 0, 5_000},
		{"adaptive quarter span", domain.BurnAdaptive, 0.25, 10_000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			interactor, _, _ := newBurnInteractor(t, 1_000_000, tc.random)
			amount, err := interactor.ComputeBurnAmount(tc.strategy, 1_000_000)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, amount)
		})
	}
}

func TestComputeBurnAmount_AdaptiveStaysInRange(t *testing.T) {
	interactor, _, _ := newBurnInteractor(t, 1_000_000, 0, 0.1, 0.5, 0.75, 0.999999)
	for i := 0; i < 5; i++ {
		amount, err := interactor.ComputeBurnAmount(domain.BurnAdaptive, 1_000_000)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, amount, int64(4_999))
		assert.LessOrEqual(t, amount, int64(25_000))
	}
}

func TestComputeBurnAmount_UnknownStrategy(t *testing.T) {
	interactor, _, _ := newBurnInteractor(t, 1_000_000)
	_, err := interactor.ComputeBurnAmount(domain.BurnStrategy("scorched"), 1_000_000)
	assert.ErrorIs(t, err, domain.ErrorUnknownBurnStrategy)
}

func TestExecuteBurn(t *testing.T) {
	interactor, ledger, recorder := newBurnInteractor(t, 1_000_000, 0.5)

	result, err := interactor.ExecuteBurn(domain.BurnAggressive)
	require.NoError(t, err)

	assert.Equal(t, domain.BurnAggressive, result.Strategy)
	assert.Equal(t, int64(30_000), result.BurnAmount)
	assert.Equal(t, int64(970_000), result.SupplyAfter)
	assert.InDelta(t, 0.85, result.Efficiency, 1e-9)
	assert.Equal(t, "Supply reduced by 30,000 TKN (3.00%)", result.Impact)
	assert.NotEmpty(t, result.Reason)

	assert.Equal(t, domain.SupplyState{TotalSupply: 970_000, Burned: 30_000}, ledger.State())

	notifications := recorder.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifySuccess, notifications[0].Kind)
	assert.Equal(t, "Token burn executed", notifications[0].Title)
}

func TestExecuteBurn_EfficiencyRange(t *testing.T) {
	interactor, _, _ := newBurnInteractor(t, 1_000_000, 0, 0.999999)

	low, err := interactor.ExecuteBurn(domain.BurnConservative)
	require.NoError(t, err)
	high, err := interactor.ExecuteBurn(domain.BurnConservative)
	require.NoError(t, err)

	assert.InDelta(t, 0.7, low.Efficiency, 1e-9)
	assert.Less(t, high.Efficiency, 1.0)
	assert.Greater(t, high.Efficiency, 0.99)
}

func TestExecuteBurn_UnknownStrategyLeavesSupply(t *testing.T) {
	interactor, ledger, recorder := newBurnInteractor(t, 1_000_000)

	_, err := interactor.ExecuteBurn(domain.BurnStrategy("scorched"))
	assert.ErrorIs(t, err, domain.ErrorUnknownBurnStrategy)
	assert.Equal(t, domain.SupplyState{TotalSupply: 1_000_000}, ledger.State())
	assert.Empty(t, recorder.Notifications())
}

func TestExecuteBurn_SmallSupply(t *testing.T) {
	interactor, ledger, _ := newBurnInteractor(t, 150)

	result, err := interactor.ExecuteBurn(domain.BurnConservative)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.BurnAmount)
	assert.Equal(t, int64(150), ledger.CurrentSupply())
}
