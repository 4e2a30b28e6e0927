/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"tokenomics/domain"
	"tokenomics/domain/util"
	"tokenomics/infrastructure/dbhandler"
	"tokenomics/interface/repository"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Prints the state of the latest stored snapshot",
	Long:  `Prints supply, staking, governance and liquidity figures from the latest snapshot saved by a running 'start' command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !domain.IsPersistent() {
			return errors.New("service_db_uri is not configured, nothing to read")
		}

		if err := openDB(); err != nil {
			return err
		}
		defer dbPool.Close()

		snapshotRepository := repository.NewSnapshotRepository(dbhandler.NewDBHandler(dbPool))
		snapshot, err := snapshotRepository.Latest(context.Background())
		if errors.Is(err, domain.ErrorNoSnapshot) {
			fmt.Println("No snapshot stored yet.")
			return nil
		}
		if err != nil {
			return err
		}

		printSnapshot(snapshot)
		return nil
	},
}

func printSnapshot(snapshot *domain.Snapshot) {
	symbol := domain.GetTokenSymbol()
	initial := snapshot.Supply.TotalSupply + snapshot.Supply.Burned

	fmt.Printf("Snapshot #%v taken %v\n", snapshot.Version, humanize.Time(snapshot.TakenAt))
	fmt.Printf("  Total supply:  %v\n", util.TokenString(snapshot.Supply.TotalSupply, symbol))
	fmt.Printf("  Burned:        %v (%v)\n", util.TokenString(snapshot.Supply.Burned, symbol), util.PercentString(snapshot.Supply.Burned, initial))

	fmt.Printf("  Staking tiers: %v\n", len(snapshot.Tiers))
	for _, tier := range snapshot.Tiers {
		fmt.Printf("    %-10v from %v, %v%% APY, %v days, x%v\n",
			tier.ID, util.TokenString(tier.MinimumStake, symbol), tier.APY, tier.LockPeriodDays, tier.BonusMultiplier)
	}

	fmt.Printf("  Proposals:     %v\n", len(snapshot.Proposals))
	for _, proposal := range snapshot.Proposals {
		fmt.Printf("    [%v] %v: %v for, %v against, %v abstain\n", proposal.Status, proposal.Title,
			humanize.Comma(proposal.Votes.For), humanize.Comma(proposal.Votes.Against), humanize.Comma(proposal.Votes.Abstain))
	}

	fmt.Printf("  Pools:         %v\n", len(snapshot.Pools))
	for _, pool := range snapshot.Pools {
		fmt.Printf("    %v: %v risk (%.1f), protected: %v\n", pool.ID, domain.RiskLevelFor(pool.RiskScore), pool.RiskScore, pool.IsProtected)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
