package usecase

import (
	"errors"
	"math"
	"sync"
	"testing"
	"tokenomics/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplyLedger_RejectsNonPositive(t *testing.T) {
	for _, supply := range []int64{0, -1} {
		_, err := NewSupplyLedger(supply)
		assert.ErrorIs(t, err, domain.ErrorInvalidSupply)
	}
}

func TestSupplyLedger_ApplyDelta(t *testing.T) {
	ledger, err := NewSupplyLedger(1_000_000)
	require.NoError(t, err)

	state, err := ledger.ApplyDelta(-250_000)
	require.NoError(t, err)
	assert.Equal(t, domain.SupplyState{TotalSupply: 750_000, Burned: 250_000}, state)

	state, err = ledger.ApplyDelta(50_000)
	require.NoError(t, err)
	assert.Equal(t, domain.SupplyState{TotalSupply: 800_000, Burned: 250_000}, state)

	state, err = ledger.ApplyDelta(-800_000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), state.TotalSupply)
	assert.Equal(t, int64(1_050_000), state.Burned)
}

func TestSupplyLedger_RejectsNegativeSupply(t *testing.T) {
	ledger, err := NewSupplyLedger(100)
	require.NoError(t, err)

	_, err = ledger.ApplyDelta(-101)
	assert.ErrorIs(t, err, domain.ErrorInvalidSupplyDelta)
	assert.Equal(t, domain.SupplyState{TotalSupply: 100}, ledger.State())

	_, err = ledger.ApplyDelta(math.MinInt64)
	assert.ErrorIs(t, err, domain.ErrorInvalidSupplyDelta)
	assert.Equal(t, int64(100), ledger.CurrentSupply())
}

func TestSupplyLedger_RejectsOverflow(t *testing.T) {
	ledger, err := NewSupplyLedger(math.MaxInt64 - 10)
	require.NoError(t, err)

	_, err = ledger.ApplyDelta(11)
	assert.ErrorIs(t, err, domain.ErrorInvalidSupplyDelta)
	assert.Equal(t, int64(math.MaxInt64-10), ledger.CurrentSupply())

	_, err = ledger.ApplyDelta(10)
	assert.NoError(t, err)
}

func TestSupplyLedger_BurnedNeverDecreases(t *testing.T) {
	ledger, err := NewSupplyLedger(1_000_000)
	require.NoError(t, err)

	burned := int64(0)
	for _, delta := range []int64{-10, 500, -3000, 0, 20_000, -1, -2_000_000, 7} {
		state, _ := ledger.ApplyDelta(delta)
		assert.GreaterOrEqual(t, state.Burned, burned)
		assert.GreaterOrEqual(t, state.TotalSupply, int64(0))
		burned = state.Burned
	}
	assert.Equal(t, int64(3011), burned)
}

func TestSupplyLedger_UpdateKeepsStateOnError(t *testing.T) {
	ledger, err := NewSupplyLedger(1_000)
	require.NoError(t, err)

	failure := errors.New("boom")
	state, delta, err := ledger.Update(func(supply int64) (int64, error) {
		assert.Equal(t, int64(1_000), supply)
		return -10, failure
	})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, int64(0), delta)
	assert.Equal(t, int64(1_000), state.TotalSupply)

	state, delta, err = ledger.Update(func(supply int64) (int64, error) {
		return -supply / 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-500), delta)
	assert.Equal(t, domain.SupplyState{TotalSupply: 500, Burned: 500}, state)
}

func TestSupplyLedger_Restore(t *testing.T) {
	ledger, err := NewSupplyLedger(1_000)
	require.NoError(t, err)

	assert.ErrorIs(t, ledger.Restore(domain.SupplyState{TotalSupply: -1}), domain.ErrorInvalidSnapshot)
	require.NoError(t, ledger.Restore(domain.SupplyState{TotalSupply: 900, Burned: 300}))
	assert.Equal(t, domain.SupplyState{TotalSupply: 900, Burned: 300}, ledger.State())
}

func TestFraction(t *testing.T) {
	assert.Equal(t, int64(5_000), fraction(1_000_000, 50))
	assert.Equal(t, int64(30_000), fraction(1_000_000, 300))
	assert.Equal(t, int64(0), fraction(199, 50))
	assert.Equal(t, int64(1), fraction(200, 50))
	assert.Equal(t, int64(math.MaxInt64/10_000*300+(math.MaxInt64%10_000)*300/10_000), fraction(math.MaxInt64, 300))
}

func TestSupplyLedger_ConcurrentBurnsAndReads(t *testing.T) {
	const initial = 1_000_000
	ledger, err := NewSupplyLedger(initial)
	require.NoError(t, err)

	var writers, readers sync.WaitGroup
	for i := 0; i < 20; i++ {
		writers.Add(1)
		go func() {
			defer writers.Done()
			for j := 0; j < 500; j++ {
				_, err := ledger.ApplyDelta(-1)
				assert.NoError(t, err)
			}
		}()
	}

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				state := ledger.State()
				if state.TotalSupply+state.Burned != initial {
					t.Errorf("torn state read: %+v", state)
					return
				}
			}
		}()
	}

	writers.Wait()
	close(done)
	readers.Wait()

	assert.Equal(t, domain.SupplyState{TotalSupply: initial - 10_000, Burned: 10_000}, ledger.State())
}
