package usecase

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"tokenomics/domain"
	"tokenomics/interface/repository"

	"github.com/rs/zerolog/log"
)

type StakingInteractor struct {
	mu    sync.RWMutex
	tiers repository.Store[string, domain.StakingTier]

	// ordered caches the catalog sorted by minimum stake for lookups.
	ordered []domain.StakingTier
}

func NewStakingInteractor(tiers repository.Store[string, domain.StakingTier]) *StakingInteractor {
	interactor := &StakingInteractor{tiers: tiers}
	interactor.ordered = sortTiers(tiers.List())
	return interactor
}

// RegisterTiers replaces the whole catalog. Nothing is changed when any tier
// is invalid or two tiers share an id.
func (interactor *StakingInteractor) RegisterTiers(tiers []domain.StakingTier) error {
	items := make(map[string]domain.StakingTier, len(tiers))
	for _, tier := range tiers {
		if !tier.IsValid() {
			return fmt.Errorf("tier %q: %w", tier.ID, domain.ErrorInvalidTier)
		}
		if _, exist := items[tier.ID]; exist {
			return fmt.Errorf("tier %q: %w", tier.ID, domain.ErrorDuplicateTierId)
		}
		items[tier.ID] = tier
	}

	interactor.mu.Lock()
	defer interactor.mu.Unlock()

	interactor.tiers.Replace(items)
	interactor.ordered = sortTiers(tiers)

	log.Debug().Int("count", len(tiers)).Msg("staking tiers registered")
	return nil
}

// TierFor returns the highest active tier whose minimum stake is covered.
func (interactor *StakingInteractor) TierFor(stake int64) (domain.StakingTier, error) {
	interactor.mu.RLock()
	defer interactor.mu.RUnlock()

	for i := len(interactor.ordered) - 1; i >= 0; i-- {
		tier := interactor.ordered[i]
		if tier.Active && tier.MinimumStake <= stake {
			return tier, nil
		}
	}
	return domain.StakingTier{}, fmt.Errorf("stake %v: %w", stake, domain.ErrorTierNotFound)
}

func (interactor *StakingInteractor) Tiers() []domain.StakingTier {
	interactor.mu.RLock()
	defer interactor.mu.RUnlock()

	tiers := make([]domain.StakingTier, len(interactor.ordered))
	copy(tiers, interactor.ordered)
	return tiers
}

func (interactor *StakingInteractor) Count() int {
	return interactor.tiers.Len()
}

// ProjectedReward estimates the simple-interest reward of staking for the
// given number of days in the qualifying tier, bonus multiplier included.
func (interactor *StakingInteractor) ProjectedReward(stake int64, days int) (int64, domain.StakingTier, error) {
	tier, err := interactor.TierFor(stake)
	if err != nil {
		return 0, tier, err
	}
	reward := float64(stake) * tier.APY / 100 * float64(days) / 365 * tier.BonusMultiplier
	return int64(math.Floor(reward)), tier, nil
}

func sortTiers(tiers []domain.StakingTier) []domain.StakingTier {
	ordered := make([]domain.StakingTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].MinimumStake == ordered[j].MinimumStake {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].MinimumStake < ordered[j].MinimumStake
	})
	return ordered
}
