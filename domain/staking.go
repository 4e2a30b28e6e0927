package domain

type StakingTier struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MinimumStake    int64   `json:"minimum_stake"`
	APY             float64 `json:"apy"`
	LockPeriodDays  int     `json:"lock_period_days"`
	BonusMultiplier float64 `json:"bonus_multiplier"`
	Active          bool    `json:"active"`
}

func (t StakingTier) IsValid() bool {
	return t.ID != "" && t.MinimumStake >= 0 && t.APY >= 0 && t.LockPeriodDays >= 0 && t.BonusMultiplier >= 1.0
}

// DefaultTiers returns the six seeded reward levels. Minimum stake, APY,
// lock period and multiplier increase together from one tier to the next.
func DefaultTiers() []StakingTier {
	return []StakingTier{
		{ID: "bronze", Name: "Bronze", MinimumStake: 1_000, APY: 5, LockPeriodDays: 30, BonusMultiplier: 1.0, Active: true},
		{ID: "silver", Name: "Silver", MinimumStake: 10_000, APY: 8, LockPeriodDays: 60, BonusMultiplier: 1.1, Active: true},
		{ID: "gold", Name: "Gold", MinimumStake: 50_000, APY: 12, LockPeriodDays: 90, BonusMultiplier: 1.25, Active: true},
		{ID: "platinum", Name: "Platinum", MinimumStake: 100_000, APY: 15, LockPeriodDays: 180, BonusMultiplier: 1.5, Active: true},
		{ID: "diamond", Name: "Diamond", MinimumStake: 500_000, APY: 20, LockPeriodDays: 270, BonusMultiplier: 1.75, Active: true},
		{ID: "quantum", Name: "Quantum", MinimumStake: 1_000_000, APY: 25, LockPeriodDays: 365, BonusMultiplier: 2.0, Active: true},
	}
}
