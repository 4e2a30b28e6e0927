package usecase

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"tokenomics/domain"
	"tokenomics/interface/repository"

	"github.com/rs/zerolog/log"
)

const (
	impermanentLossSpan = 0.5
	volumeRiskSpan      = 0.3
)

type LiquidityInteractor struct {
	mu     sync.Mutex
	pools  repository.Store[string, domain.LiquidityPool]
	random domain.RandomSource
	sink   domain.NotificationSink
	clock  func() time.Time

	countermeasureRuns int
}

func NewLiquidityInteractor(pools repository.Store[string, domain.LiquidityPool],
	random domain.RandomSource,
	sink domain.NotificationSink,
	clock func() time.Time) *LiquidityInteractor {
	if clock == nil {
		clock = time.Now
	}
	return &LiquidityInteractor{
		pools:  pools,
		random: random,
		sink:   sink,
		clock:  clock,
	}
}

func (interactor *LiquidityInteractor) RegisterPool(pool domain.LiquidityPool) error {
	if !pool.IsValid() {
		return fmt.Errorf("pool %q: %w", pool.ID, domain.ErrorInvalidPool)
	}

	interactor.mu.Lock()
	defer interactor.mu.Unlock()

	if _, exist := interactor.pools.Get(pool.ID); exist {
		return fmt.Errorf("pool %q: %w", pool.ID, domain.ErrorDuplicatePoolId)
	}
	interactor.pools.Put(pool.ID, pool)
	return nil
}

// AssessRisk scores a pool from its impermanent loss and volume risk factors.
// The score is not clamped; with the current factor spans it stays below 80.
func (interactor *LiquidityInteractor) AssessRisk(pool domain.LiquidityPool) float64 {
	impermanentLoss := interactor.random.Float64() * impermanentLossSpan
	volumeRisk := interactor.random.Float64() * volumeRiskSpan
	return 100 * (impermanentLoss + volumeRisk)
}

// AssessPool recomputes and stores the risk score of a registered pool.
func (interactor *LiquidityInteractor) AssessPool(poolId string) (domain.LiquidityPool, error) {
	interactor.mu.Lock()
	defer interactor.mu.Unlock()

	pool, exist := interactor.pools.Get(poolId)
	if !exist {
		return domain.LiquidityPool{}, fmt.Errorf("%v: %w", poolId, domain.ErrorPoolNotFound)
	}
	pool.RiskScore = interactor.AssessRisk(pool)
	interactor.pools.Put(pool.ID, pool)
	return pool, nil
}

// Protect recomputes the risk of a pool and latches its protection flag.
func (interactor *LiquidityInteractor) Protect(poolId string) (domain.LiquidityPool, error) {
	interactor.mu.Lock()
	defer interactor.mu.Unlock()

	pool, exist := interactor.pools.Get(poolId)
	if !exist {
		return domain.LiquidityPool{}, fmt.Errorf("%v: %w", poolId, domain.ErrorPoolNotFound)
	}

	now := interactor.clock()
	pool.RiskScore = interactor.AssessRisk(pool)
	pool.IsProtected = true
	pool.ProtectedAt = &now
	interactor.pools.Put(pool.ID, pool)

	interactor.sink.Notify(domain.NotifySuccess, "Pool protected",
		fmt.Sprintf("Pool %v (%v risk, score %.1f): %v", pool.ID, domain.RiskLevelFor(pool.RiskScore), pool.RiskScore, strings.Join(domain.ProtectionMechanisms, ", ")))
	log.Info().Str("pool", pool.ID).Float64("risk_score", pool.RiskScore).Msg("pool protected")

	return pool, nil
}

// ApplyCountermeasures is triggered by the flash loan monitor. It never
// clears a protection latch.
func (interactor *LiquidityInteractor) ApplyCountermeasures(patterns []domain.DetectedPattern) []string {
	interactor.mu.Lock()
	interactor.countermeasureRuns++
	interactor.mu.Unlock()

	names := make([]string, len(patterns))
	for i, pattern := range patterns {
		names[i] = pattern.Name
	}
	log.Warn().Strs("patterns", names).Strs("countermeasures", domain.Countermeasures).Msg("🔴 countermeasures applied")

	actions := make([]string, len(domain.Countermeasures))
	copy(actions, domain.Countermeasures)
	return actions
}

func (interactor *LiquidityInteractor) CountermeasureRuns() int {
	interactor.mu.Lock()
	defer interactor.mu.Unlock()
	return interactor.countermeasureRuns
}

func (interactor *LiquidityInteractor) Pool(poolId string) (domain.LiquidityPool, error) {
	pool, exist := interactor.pools.Get(poolId)
	if !exist {
		return domain.LiquidityPool{}, fmt.Errorf("%v: %w", poolId, domain.ErrorPoolNotFound)
	}
	return pool, nil
}

func (interactor *LiquidityInteractor) Pools() []domain.LiquidityPool {
	pools := interactor.pools.List()
	sort.Slice(pools, func(i, j int) bool { return pools[i].ID < pools[j].ID })
	return pools
}

func (interactor *LiquidityInteractor) ProtectedCount() int {
	count := 0
	for _, pool := range interactor.pools.List() {
		if pool.IsProtected {
			count++
		}
	}
	return count
}

func (interactor *LiquidityInteractor) Restore(pools []domain.LiquidityPool) {
	items := make(map[string]domain.LiquidityPool, len(pools))
	for _, pool := range pools {
		items[pool.ID] = pool
	}

	interactor.mu.Lock()
	defer interactor.mu.Unlock()
	interactor.pools.Replace(items)
}
