package domain

// SupplyState is the ledger's view of the token supply. All values are in
// base token units.
type SupplyState struct {
	TotalSupply int64 `json:"total_supply"`
	Burned      int64 `json:"burned"`
}

type BurnStrategy string

const (
	BurnConservative BurnStrategy = "conservative"
	BurnAggressive   BurnStrategy = "aggressive"
	BurnAdaptive     BurnStrategy = "adaptive"
)

func (s BurnStrategy) IsValid() bool {
	switch s {
	case BurnConservative, BurnAggressive, BurnAdaptive:
		return true
	}
	return false
}

type BurnResult struct {
	Strategy    BurnStrategy `json:"strategy"`
	BurnAmount  int64        `json:"burn_amount"`
	Reason      string       `json:"reason"`
	Impact      string       `json:"impact"`
	Efficiency  float64      `json:"efficiency"`
	SupplyAfter int64        `json:"supply_after"`
}

// MarketSignal is a market observation fed to the supply optimizer.
// Demand is a 0-100 index.
type MarketSignal struct {
	Demand  float64 `json:"demand"`
	Volume  float64 `json:"volume"`
	Price   float64 `json:"price"`
	Holders int64   `json:"holders"`
}

func (m MarketSignal) IsValid() bool {
	return m.Demand >= 0 && m.Demand <= 100 && m.Volume >= 0 && m.Price >= 0 && m.Holders >= 0
}

type SupplyAction string

const (
	ActionAggressiveBurn SupplyAction = "aggressive_burn"
	ActionBurn           SupplyAction = "burn"
	ActionMint           SupplyAction = "mint"
	ActionMaintain       SupplyAction = "maintain"
)

type OptimizationResult struct {
	Action       SupplyAction `json:"action"`
	SupplyChange int64        `json:"supply_change"`
	Reasoning    string       `json:"reasoning"`
	SupplyAfter  int64        `json:"supply_after"`
}

// MarketSignalProvider produces market signals for scheduled optimizer runs.
type MarketSignalProvider interface {
	Signal() MarketSignal
}
