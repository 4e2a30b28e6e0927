/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"tokenomics/domain"
	"tokenomics/domain/util"
	"tokenomics/infrastructure/random"
	"tokenomics/interface/notifier"
	"tokenomics/usecase"

	"github.com/spf13/cobra"
)

var (
	simulateStrategy string
	simulateSeed     int64
	simulateRounds   int
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Runs an in-memory scenario against a fresh engine",
	Long: `Creates an engine from the configuration without a database, executes a burn,
a few optimizer rounds on simulated market data, a governance vote and a flash
loan scan, then prints the results and every emitted notification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy := domain.BurnStrategy(simulateStrategy)
		if !strategy.IsValid() {
			return fmt.Errorf("%q: %w", simulateStrategy, domain.ErrorUnknownBurnStrategy)
		}

		recorder := notifier.NewRecorder(0)
		source := random.NewSource(simulateSeed)
		engine, err := usecase.NewEngine(usecase.Options{
			InitialSupply:     domain.GetInitialSupply(),
			TokenSymbol:       domain.GetTokenSymbol(),
			Random:            source,
			Sink:              recorder,
			AttackProbability: domain.GetAttackProbability(),
			Governance: usecase.GovernanceOptions{
				VotingPeriod: domain.GetVotingPeriod(),
				QuorumBps:    domain.GetQuorumBps(),
				ApprovalBps:  domain.GetApprovalBps(),
			},
		})
		if err != nil {
			return err
		}
		symbol := domain.GetTokenSymbol()

		burn, err := engine.ExecuteBurn(strategy)
		if err != nil {
			return err
		}
		fmt.Printf("Burn (%v): %v, efficiency %.2f. %v\n", burn.Strategy, util.TokenString(burn.BurnAmount, symbol), burn.Efficiency, burn.Impact)

		market := usecase.NewSimulatedMarket(source)
		for i := 0; i < simulateRounds; i++ {
			signal := market.Signal()
			result, err := engine.OptimizeSupply(signal)
			if err != nil {
				return err
			}
			fmt.Printf("Optimizer round %v: demand %.0f, volume %.0f, price %.2f, holders %v -> %v (%v)\n",
				i+1, signal.Demand, signal.Volume, signal.Price, signal.Holders, result.Action, util.TokenString(result.SupplyChange, symbol))
		}

		quorum := max(engine.GetStatus().TotalSupply/10_000*domain.GetQuorumBps(), 3)
		proposal, err := engine.CreateProposal("Adopt adaptive burns", "Switch the scheduled burn to the adaptive strategy", "simulator", quorum)
		if err != nil {
			return err
		}
		if _, err := engine.Vote(proposal.ID, domain.VoteAgainst, quorum/3); err != nil {
			return err
		}
		if proposal, err = engine.Vote(proposal.ID, domain.VoteFor, quorum); err != nil {
			return err
		}
		fmt.Printf("Proposal %q: %v\n", proposal.Title, proposal.Status)

		if err := engine.RegisterPool(domain.LiquidityPool{ID: "main", ReserveA: 1_000_000, ReserveB: 1_000_000, TotalLiquidity: 1_000_000, FeeRate: 0.003}); err != nil {
			return err
		}
		pool, err := engine.ProtectPool("main")
		if err != nil {
			return err
		}
		fmt.Printf("Pool %v: %v risk (%.1f)\n", pool.ID, domain.RiskLevelFor(pool.RiskScore), pool.RiskScore)

		detected := engine.ScanForFlashLoanAttacks()
		fmt.Printf("Flash loan scan: %v pattern(s) detected\n", len(detected))

		status := engine.GetStatus()
		fmt.Printf("Status: supply %v, burned %v, %v tiers, %v active proposals, %v protected pools\n",
			util.TokenString(status.TotalSupply, symbol), util.TokenString(status.BurnedTokens, symbol),
			status.StakingTierCount, status.ActiveProposalCount, status.ProtectedPoolCount)

		fmt.Println("Notifications:")
		for _, notification := range recorder.Notifications() {
			fmt.Printf("  [%v] %v: %v\n", notification.Kind, notification.Title, notification.Detail)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&simulateStrategy, "strategy", string(domain.BurnAggressive), "burn strategy: conservative, aggressive or adaptive")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 1, "random seed, 0 picks a time based one")
	simulateCmd.Flags().IntVar(&simulateRounds, "rounds", 3, "number of optimizer rounds")
}
