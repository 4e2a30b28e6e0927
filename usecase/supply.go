package usecase

import (
	"fmt"
	"math"
	"sync"
	"tokenomics/domain"

	"github.com/rs/zerolog/log"
)

const basisPoints = 10_000

// SupplyLedger holds the supply state. It is the only writer of SupplyState.
type SupplyLedger struct {
	mu    sync.RWMutex
	state domain.SupplyState
}

func NewSupplyLedger(initialSupply int64) (*SupplyLedger, error) {
	if initialSupply <= 0 {
		return nil, domain.ErrorInvalidSupply
	}
	return &SupplyLedger{
		state: domain.SupplyState{TotalSupply: initialSupply},
	}, nil
}

func (ledger *SupplyLedger) CurrentSupply() int64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.TotalSupply
}

func (ledger *SupplyLedger) State() domain.SupplyState {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state
}

// ApplyDelta mints (positive) or burns (negative) tokens. A change that would
// make the supply negative or overflow it is rejected without touching state.
func (ledger *SupplyLedger) ApplyDelta(delta int64) (domain.SupplyState, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	return ledger.applyLocked(delta)
}

func (ledger *SupplyLedger) applyLocked(delta int64) (domain.SupplyState, error) {
	state := ledger.state
	if delta > 0 && state.TotalSupply > math.MaxInt64-delta {
		return state, fmt.Errorf("minting %v overflows supply %v: %w", delta, state.TotalSupply, domain.ErrorInvalidSupplyDelta)
	}
	if delta < 0 && (delta == math.MinInt64 || state.TotalSupply+delta < 0) {
		return state, fmt.Errorf("burning %v exceeds supply %v: %w", -delta, state.TotalSupply, domain.ErrorInvalidSupplyDelta)
	}

	state.TotalSupply += delta
	if delta < 0 {
		state.Burned += -delta
	}
	ledger.state = state

	log.Debug().Int64("delta", delta).Int64("total_supply", state.TotalSupply).Int64("burned", state.Burned).Msg("supply changed")
	return state, nil
}

// Update runs compute against the current supply and applies the returned
// delta in the same critical section, so that the computation and the write
// observe the same supply.
func (ledger *SupplyLedger) Update(compute func(supply int64) (int64, error)) (domain.SupplyState, int64, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	delta, err := compute(ledger.state.TotalSupply)
	if err != nil {
		return ledger.state, 0, err
	}
	state, err := ledger.applyLocked(delta)
	return state, delta, err
}

func (ledger *SupplyLedger) Restore(state domain.SupplyState) error {
	if state.TotalSupply < 0 || state.Burned < 0 {
		return domain.ErrorInvalidSnapshot
	}
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	ledger.state = state
	return nil
}

// fraction returns floor(supply * bps / 10000) without overflowing.
func fraction(supply int64, bps int64) int64 {
	return (supply/basisPoints)*bps + (supply%basisPoints)*bps/basisPoints
}
