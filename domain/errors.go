package domain

import "fmt"

var (
	ErrorInvalidSupplyDelta  = fmt.Errorf("invalid supply delta")
	ErrorInvalidSupply       = fmt.Errorf("initial supply must be positive")
	ErrorUnknownBurnStrategy = fmt.Errorf("unknown burn strategy")
	ErrorInvalidMarketSignal = fmt.Errorf("invalid market signal")

	ErrorDuplicateTierId = fmt.Errorf("duplicate tier id")
	ErrorInvalidTier     = fmt.Errorf("invalid staking tier")
	ErrorTierNotFound    = fmt.Errorf("no staking tier qualifies")

	ErrorProposalNotFound = fmt.Errorf("proposal not found")
	ErrorVotingClosed     = fmt.Errorf("voting closed")
	ErrorInvalidProposal  = fmt.Errorf("invalid proposal")
	ErrorInvalidProposer  = fmt.Errorf("invalid proposer address")
	ErrorInvalidVote      = fmt.Errorf("invalid vote")

	ErrorPoolNotFound    = fmt.Errorf("pool not found")
	ErrorDuplicatePoolId = fmt.Errorf("duplicate pool id")
	ErrorInvalidPool     = fmt.Errorf("invalid liquidity pool")

	ErrorInvalidSnapshot = fmt.Errorf("invalid snapshot")
	ErrorNoSnapshot      = fmt.Errorf("no snapshot stored")
	ErrorEngineStopped   = fmt.Errorf("engine is stopped")

	ErrorMissingDependency = fmt.Errorf("random source and notification sink are required")
)
