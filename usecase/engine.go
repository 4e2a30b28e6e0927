package usecase

import (
	"fmt"
	"sync"
	"time"
	"tokenomics/domain"
	"tokenomics/interface/repository"

	"github.com/rs/zerolog/log"
)

const DefaultInitialSupply = 1_000_000_000

type Options struct {
	InitialSupply     int64
	TokenSymbol       string
	Tiers             []domain.StakingTier
	Random            domain.RandomSource
	Sink              domain.NotificationSink
	Clock             func() time.Time
	AttackProbability float64
	Governance        GovernanceOptions
}

// Engine is the single boundary the application calls. It owns every
// collection and only dispatches to the interactors and reports failures.
type Engine struct {
	mu     sync.RWMutex
	active bool
	sink   domain.NotificationSink
	clock  func() time.Time

	ledger     *SupplyLedger
	burn       *BurnInteractor
	optimizer  *OptimizerInteractor
	staking    *StakingInteractor
	governance *GovernanceInteractor
	liquidity  *LiquidityInteractor
	monitor    *MonitorInteractor
}

// NewEngine wires the interactors. Random and Sink are required.
func NewEngine(options Options) (*Engine, error) {
	if options.Random == nil || options.Sink == nil {
		return nil, domain.ErrorMissingDependency
	}
	if options.InitialSupply == 0 {
		options.InitialSupply = DefaultInitialSupply
	}
	if options.TokenSymbol == "" {
		options.TokenSymbol = "TKN"
	}
	if options.Tiers == nil {
		options.Tiers = domain.DefaultTiers()
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}
	if options.AttackProbability <= 0 {
		options.AttackProbability = DefaultAttackProbability
	}

	ledger, err := NewSupplyLedger(options.InitialSupply)
	if err != nil {
		return nil, err
	}

	staking := NewStakingInteractor(repository.NewMemoryStore[string, domain.StakingTier]())
	if err := staking.RegisterTiers(options.Tiers); err != nil {
		return nil, err
	}

	liquidity := NewLiquidityInteractor(repository.NewMemoryStore[string, domain.LiquidityPool](), options.Random, options.Sink, options.Clock)

	engine := &Engine{
		active:     true,
		sink:       options.Sink,
		clock:      options.Clock,
		ledger:     ledger,
		burn:       NewBurnInteractor(ledger, options.Random, options.Sink, options.TokenSymbol),
		optimizer:  NewOptimizerInteractor(ledger, options.Sink, options.TokenSymbol),
		staking:    staking,
		governance: NewGovernanceInteractor(repository.NewMemoryStore[string, domain.Proposal](), ledger, options.Sink, options.Clock, options.Governance),
		liquidity:  liquidity,
		monitor:    NewMonitorInteractor(liquidity, options.Random, options.Sink, options.Clock, options.AttackProbability),
	}

	log.Info().Int64("initial_supply", options.InitialSupply).Int("tiers", len(options.Tiers)).Msg("tokenomics engine created")
	return engine, nil
}

func (engine *Engine) checkActive() error {
	engine.mu.RLock()
	defer engine.mu.RUnlock()
	if !engine.active {
		return domain.ErrorEngineStopped
	}
	return nil
}

// fail reports a rejected operation to the sink and hands the error back.
func (engine *Engine) fail(operation string, err error) error {
	engine.sink.Notify(domain.NotifyError, fmt.Sprintf("%v rejected", operation), err.Error())
	return err
}

func (engine *Engine) OptimizeSupply(signal domain.MarketSignal) (domain.OptimizationResult, error) {
	if err := engine.checkActive(); err != nil {
		return domain.OptimizationResult{}, err
	}
	result, err := engine.optimizer.Optimize(signal)
	if err != nil {
		return result, engine.fail("Supply optimization", err)
	}
	return result, nil
}

func (engine *Engine) ExecuteBurn(strategy domain.BurnStrategy) (domain.BurnResult, error) {
	if err := engine.checkActive(); err != nil {
		return domain.BurnResult{}, err
	}
	result, err := engine.burn.ExecuteBurn(strategy)
	if err != nil {
		return result, engine.fail("Burn", err)
	}
	return result, nil
}

func (engine *Engine) RegisterTiers(tiers []domain.StakingTier) error {
	if err := engine.checkActive(); err != nil {
		return err
	}
	if err := engine.staking.RegisterTiers(tiers); err != nil {
		return engine.fail("Tier registration", err)
	}
	return nil
}

// TierFor is a read-only lookup, so a missing tier is not reported to the sink.
func (engine *Engine) TierFor(stake int64) (domain.StakingTier, error) {
	return engine.staking.TierFor(stake)
}

func (engine *Engine) Tiers() []domain.StakingTier {
	return engine.staking.Tiers()
}

func (engine *Engine) ProjectedReward(stake int64, days int) (int64, domain.StakingTier, error) {
	return engine.staking.ProjectedReward(stake, days)
}

func (engine *Engine) CreateProposal(title, description, proposer string, votingPower int64) (domain.Proposal, error) {
	if err := engine.checkActive(); err != nil {
		return domain.Proposal{}, err
	}
	proposal, err := engine.governance.CreateProposal(title, description, proposer, votingPower)
	if err != nil {
		return proposal, engine.fail("Proposal", err)
	}
	return proposal, nil
}

func (engine *Engine) Vote(proposalId string, choice domain.VoteChoice, votingPower int64) (domain.Proposal, error) {
	if err := engine.checkActive(); err != nil {
		return domain.Proposal{}, err
	}
	proposal, err := engine.governance.Vote(proposalId, choice, votingPower)
	if err != nil {
		return proposal, engine.fail("Vote", err)
	}
	return proposal, nil
}

func (engine *Engine) SweepExpiredProposals() []domain.Proposal {
	return engine.governance.SweepExpired()
}

func (engine *Engine) Proposal(proposalId string) (domain.Proposal, error) {
	return engine.governance.Proposal(proposalId)
}

func (engine *Engine) Proposals() []domain.Proposal {
	return engine.governance.Proposals()
}

func (engine *Engine) RegisterPool(pool domain.LiquidityPool) error {
	if err := engine.checkActive(); err != nil {
		return err
	}
	if err := engine.liquidity.RegisterPool(pool); err != nil {
		return engine.fail("Pool registration", err)
	}
	return nil
}

func (engine *Engine) AssessPool(poolId string) (domain.LiquidityPool, error) {
	if err := engine.checkActive(); err != nil {
		return domain.LiquidityPool{}, err
	}
	pool, err := engine.liquidity.AssessPool(poolId)
	if err != nil {
		return pool, engine.fail("Risk assessment", err)
	}
	return pool, nil
}

func (engine *Engine) ProtectPool(poolId string) (domain.LiquidityPool, error) {
	if err := engine.checkActive(); err != nil {
		return domain.LiquidityPool{}, err
	}
	pool, err := engine.liquidity.Protect(poolId)
	if err != nil {
		return pool, engine.fail("Pool protection", err)
	}
	return pool, nil
}

func (engine *Engine) Pools() []domain.LiquidityPool {
	return engine.liquidity.Pools()
}

// ScanForFlashLoanAttacks reports nothing once the engine is stopped.
func (engine *Engine) ScanForFlashLoanAttacks() []domain.DetectedPattern {
	if err := engine.checkActive(); err != nil {
		return []domain.DetectedPattern{}
	}
	return engine.monitor.Scan()
}

func (engine *Engine) Monitor() *MonitorInteractor {
	return engine.monitor
}

func (engine *Engine) GetStatus() domain.Status {
	engine.mu.RLock()
	active := engine.active
	engine.mu.RUnlock()

	supply := engine.ledger.State()
	return domain.Status{
		Active:              active,
		TotalSupply:         supply.TotalSupply,
		BurnedTokens:        supply.Burned,
		StakingTierCount:    engine.staking.Count(),
		ActiveProposalCount: engine.governance.ActiveCount(),
		ProtectedPoolCount:  engine.liquidity.ProtectedCount(),
	}
}

// Snapshot captures the durable state. Components are read one after the
// other, so a snapshot taken under concurrent writes is per-component
// consistent only.
func (engine *Engine) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		SchemaVersion: domain.SnapshotSchemaVersion,
		TakenAt:       engine.clock(),
		Supply:        engine.ledger.State(),
		Tiers:         engine.staking.Tiers(),
		Proposals:     engine.governance.Proposals(),
		Pools:         engine.liquidity.Pools(),
	}
}

// Restore replaces the engine state with the snapshot content. The tier
// catalog is validated first so that a bad snapshot leaves the engine as is.
func (engine *Engine) Restore(snapshot *domain.Snapshot) error {
	if snapshot == nil || snapshot.SchemaVersion != domain.SnapshotSchemaVersion {
		return domain.ErrorInvalidSnapshot
	}
	if snapshot.Supply.TotalSupply < 0 || snapshot.Supply.Burned < 0 {
		return domain.ErrorInvalidSnapshot
	}
	if err := engine.staking.RegisterTiers(snapshot.Tiers); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrorInvalidSnapshot, err)
	}
	if err := engine.ledger.Restore(snapshot.Supply); err != nil {
		return err
	}
	engine.governance.Restore(snapshot.Proposals)
	engine.liquidity.Restore(snapshot.Pools)

	log.Info().Int64("version", snapshot.Version).Time("taken_at", snapshot.TakenAt).Msg("engine state restored")
	return nil
}

// Shutdown stops accepting mutating operations.
func (engine *Engine) Shutdown() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.active = false
}
