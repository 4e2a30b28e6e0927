package domain

import (
	"encoding/json"
	"time"
)

const SnapshotSchemaVersion = 1

type Status struct {
	Active              bool  `json:"active"`
	TotalSupply         int64 `json:"total_supply"`
	BurnedTokens        int64 `json:"burned_tokens"`
	StakingTierCount    int   `json:"staking_tier_count"`
	ActiveProposalCount int   `json:"active_proposal_count"`
	ProtectedPoolCount  int   `json:"protected_pool_count"`
}

// Snapshot is the durable record of the engine state.
type Snapshot struct {
	SchemaVersion int             `json:"schema_version"`
	Version       int64           `json:"version,omitempty"`
	TakenAt       time.Time       `json:"taken_at"`
	Supply        SupplyState     `json:"supply"`
	Tiers         []StakingTier   `json:"tiers"`
	Proposals     []Proposal      `json:"proposals"`
	Pools         []LiquidityPool `json:"pools"`
}

func (s *Snapshot) ToJson() string {
	jstr, err := json.Marshal(s)
	if err != nil {
		return err.Error()
	}
	return string(jstr)
}

func (s *Snapshot) FromJson(jstr string) error {
	if err := json.Unmarshal([]byte(jstr), s); err != nil {
		return err
	}
	if s.SchemaVersion != SnapshotSchemaVersion {
		return ErrorInvalidSnapshot
	}
	return nil
}
