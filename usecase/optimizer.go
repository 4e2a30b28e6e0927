package usecase

import (
	"fmt"
	"tokenomics/domain"
	"tokenomics/domain/util"

	"github.com/rs/zerolog/log"
)

const (
	priceFloor          = 2.0
	highDemand          = 80.0
	highVolume          = 500_000.0
	lowDemand           = 30.0
	mintHolderThreshold = 5000

	priceFloorBurnBps = 200
	demandBurnBps     = 100
	mintBps           = 50
)

type OptimizerInteractor struct {
	ledger *SupplyLedger
	sink   domain.NotificationSink
	symbol string
}

func NewOptimizerInteractor(ledger *SupplyLedger, sink domain.NotificationSink, symbol string) *OptimizerInteractor {
	return &OptimizerInteractor{
		ledger: ledger,
		sink:   sink,
		symbol: symbol,
	}
}

// Optimize decides between burning, minting and holding for the given market
// signal and applies the decision to the ledger. Rules are evaluated in order
// and the first match wins, so the price floor always dominates demand.
func (interactor *OptimizerInteractor) Optimize(signal domain.MarketSignal) (domain.OptimizationResult, error) {
	if !signal.IsValid() {
		return domain.OptimizationResult{}, fmt.Errorf("%+v: %w", signal, domain.ErrorInvalidMarketSignal)
	}

	var result domain.OptimizationResult
	state, _, err := interactor.ledger.Update(func(supply int64) (int64, error) {
		result = decide(signal, supply)
		return result.SupplyChange, nil
	})
	if err != nil {
		log.Warn().Err(err).Str("action", string(result.Action)).Msg("🔴 supply optimization rejected")
		return domain.OptimizationResult{}, err
	}
	result.SupplyAfter = state.TotalSupply

	if result.Action != domain.ActionMaintain {
		interactor.sink.Notify(domain.NotifyInfo, "Supply optimized",
			fmt.Sprintf("%v: supply changed by %v. %v", result.Action, util.TokenString(result.SupplyChange, interactor.symbol), result.Reasoning))
	}
	log.Info().Str("action", string(result.Action)).Int64("supply_change", result.SupplyChange).Msg("supply optimized")

	return result, nil
}

func decide(signal domain.MarketSignal, supply int64) domain.OptimizationResult {
	switch {
	case signal.Price < priceFloor:
		return domain.OptimizationResult{
			Action:       domain.ActionAggressiveBurn,
			SupplyChange: -fraction(supply, priceFloorBurnBps),
			Reasoning:    fmt.Sprintf("Price %.2f is below the %.2f floor, burning 2%% of supply", signal.Price, priceFloor),
		}
	case signal.Demand > highDemand && signal.Volume > highVolume:
		return domain.OptimizationResult{
			Action:       domain.ActionBurn,
			SupplyChange: -fraction(supply, demandBurnBps),
			Reasoning:    fmt.Sprintf("High demand %.0f with volume %.0f, burning 1%% of supply", signal.Demand, signal.Volume),
		}
	case signal.Demand < lowDemand && signal.Holders > mintHolderThreshold:
		return domain.OptimizationResult{
			Action:       domain.ActionMint,
			SupplyChange: fraction(supply, mintBps),
			Reasoning:    fmt.Sprintf("Low demand %.0f across %v holders, minting 0.5%% of supply", signal.Demand, signal.Holders),
		}
	}
	return domain.OptimizationResult{
		Action:    domain.ActionMaintain,
		Reasoning: "Market conditions are balanced, supply unchanged",
	}
}

// SimulatedMarket produces pseudo-random market signals for scheduled
// optimizer runs when no external feed is wired.
type SimulatedMarket struct {
	random domain.RandomSource
}

func NewSimulatedMarket(random domain.RandomSource) *SimulatedMarket {
	return &SimulatedMarket{random: random}
}

func (market *SimulatedMarket) Signal() domain.MarketSignal {
	return domain.MarketSignal{
		Demand:  market.random.Float64() * 100,
		Volume:  market.random.Float64() * 1_000_000,
		Price:   1 + market.random.Float64()*4,
		Holders: 1000 + int64(market.random.Float64()*9000),
	}
}
