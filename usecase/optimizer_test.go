package usecase

import (
	"testing"
	"tokenomics/domain"
	"tokenomics/infrastructure/random"
	"tokenomics/interface/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_RulePriority(t *testing.T) {
	tests := []struct {
		name   string
		signal domain.MarketSignal
		action domain.SupplyAction
		change int64
	}{
		{
			name:   "price floor beats demand",
			signal: domain.MarketSignal{Demand: 90, Volume: 600_000, Price: 1.5, Holders: 100},
			action: domain.ActionAggressiveBurn,
			change: -20_000,
		},
		{
			name:   "high demand and volume",
			signal: domain.MarketSignal{Demand: 90, Volume: 600_000, Price: 3, Holders: 100},
			action: domain.ActionBurn,
			change: -10_000,
		},
		{
			name:   "high demand without volume",
			signal: domain.MarketSignal{Demand: 90, Volume: 400_000, Price: 3, Holders: 100},
			action: domain.ActionMaintain,
		},
		{
			name:   "low demand with many holders",
			signal: domain.MarketSignal{Demand: 20, Volume: 10, Price: 3, Holders: 6000},
			action: domain.ActionMint,
			change: 5_000,
		},
		{
			name:   "low demand with exactly 5000 holders",
			signal: domain.MarketSignal{Demand: 20, Volume: 10, Price: 3, Holders: 5000},
			action: domain.ActionMaintain,
		},
		{
			name:   "balanced",
			signal: domain.MarketSignal{Demand: 50, Volume: 250_000, Price: 2, Holders: 2000},
			action: domain.ActionMaintain,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger, err := NewSupplyLedger(1_000_000)
			require.NoError(t, err)
			recorder := notifier.NewRecorder(0)
			interactor := NewOptimizerInteractor(ledger, recorder, "TKN")

			result, err := interactor.Optimize(tc.signal)
			require.NoError(t, err)

			assert.Equal(t, tc.action, result.Action)
			assert.Equal(t, tc.change, result.SupplyChange)
			assert.Equal(t, 1_000_000+tc.change, result.SupplyAfter)
			assert.Equal(t, 1_000_000+tc.change, ledger.CurrentSupply())
			assert.NotEmpty(t, result.Reasoning)

			if tc.action == domain.ActionMaintain {
				assert.Empty(t, recorder.Notifications())
			} else {
				assert.Equal(t, 1, recorder.Count(domain.NotifyInfo))
			}
		})
	}
}

func TestOptimize_InvalidSignal(t *testing.T) {
	ledger, err := NewSupplyLedger(1_000_000)
	require.NoError(t, err)
	interactor := NewOptimizerInteractor(ledger, notifier.NewRecorder(0), "TKN")

	for _, signal := range []domain.MarketSignal{
		{Demand: 101, Price: 3},
		{Demand: -1, Price: 3},
		{Demand: 50, Volume: -5, Price: 3},
		{Demand: 50, Price: -1},
		{Demand: 50, Price: 3, Holders: -1},
	} {
		_, err := interactor.Optimize(signal)
		assert.ErrorIs(t, err, domain.ErrorInvalidMarketSignal)
	}
	assert.Equal(t, int64(1_000_000), ledger.CurrentSupply())
}

func TestSimulatedMarket_Signal(t *testing.T) {
	market := NewSimulatedMarket(random.NewSequence(0.5, 0.25, 0.75, 0.5))

	signal := market.Signal()
	assert.True(t, signal.IsValid())
	assert.Equal(t, 50.0, signal.Demand)
	assert.Equal(t, 250_000.0, signal.Volume)
	assert.Equal(t, 4.0, signal.Price)
	assert.Equal(t, int64(5500), signal.Holders)
}
