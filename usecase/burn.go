package usecase

import (
	"fmt"
	"math"
	"tokenomics/domain"
	"tokenomics/domain/util"

	"github.com/rs/zerolog/log"
)

const (
	conservativeBurnBps = 50
	aggressiveBurnBps   = 300

	adaptiveBaseRate = 0.005
	adaptiveSpanRate = 0.02
	efficiencyFloor  = 0.7
	efficiencySpan   = 0.3
)

type BurnInteractor struct {
	ledger *SupplyLedger
	random domain.RandomSource
	sink   domain.NotificationSink
	symbol string
}

func NewBurnInteractor(ledger *SupplyLedger, random domain.RandomSource, sink domain.NotificationSink, symbol string) *BurnInteractor {
	return &BurnInteractor{
		ledger: ledger,
		random: random,
		sink:   sink,
		symbol: symbol,
	}
}

// ComputeBurnAmount returns the number of tokens the strategy would burn from
// the given supply.
func (interactor *BurnInteractor) ComputeBurnAmount(strategy domain.BurnStrategy, supply int64) (int64, error) {
	switch strategy {
	case domain.BurnConservative:
		return fraction(supply, conservativeBurnBps), nil
	case domain.BurnAggressive:
		return fraction(supply, aggressiveBurnBps), nil
	case domain.BurnAdaptive:
		rate := adaptiveBaseRate + interactor.random.Float64()*adaptiveSpanRate
		return int64(math.Floor(float64(supply) * rate)), nil
	}
	return 0, fmt.Errorf("%q: %w", strategy, domain.ErrorUnknownBurnStrategy)
}

func (interactor *BurnInteractor) ExecuteBurn(strategy domain.BurnStrategy) (domain.BurnResult, error) {
	var amount int64
	before := int64(0)
	state, _, err := interactor.ledger.Update(func(supply int64) (int64, error) {
		before = supply
		computed, err := interactor.ComputeBurnAmount(strategy, supply)
		if err != nil {
			return 0, err
		}
		amount = min(computed, supply)
		return -amount, nil
	})
	if err != nil {
		log.Warn().Err(err).Str("strategy", string(strategy)).Msg("🔴 burn rejected")
		return domain.BurnResult{}, err
	}

	result := domain.BurnResult{
		Strategy:    strategy,
		BurnAmount:  amount,
		Reason:      burnReason(strategy),
		Impact:      fmt.Sprintf("Supply reduced by %v (%v)", util.TokenString(amount, interactor.symbol), util.PercentString(amount, before)),
		Efficiency:  efficiencyFloor + interactor.random.Float64()*efficiencySpan,
		SupplyAfter: state.TotalSupply,
	}

	interactor.sink.Notify(domain.NotifySuccess, "Token burn executed",
		fmt.Sprintf("%v burn removed %v, supply is now %v", strategy, util.TokenString(amount, interactor.symbol), util.TokenString(state.TotalSupply, interactor.symbol)))
	log.Info().Str("strategy", string(strategy)).Int64("amount", amount).Int64("total_supply", state.TotalSupply).Msg("burn executed")

	return result, nil
}

func burnReason(strategy domain.BurnStrategy) string {
	switch strategy {
	case domain.BurnConservative:
		return "Steady deflation at 0.5% of supply"
	case domain.BurnAggressive:
		return "Accelerated deflation at 3% of supply"
	}
	return "Market-adaptive deflation between 0.5% and 2.5% of supply"
}
