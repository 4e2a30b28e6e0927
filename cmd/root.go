/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"time"
	"tokenomics/domain"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tokenomics",
	Short: "Tokenomics and governance control engine",
	Long: `Runs the token supply, burn, staking, governance and liquidity risk engine.
Background tasks are started with the 'start' command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := domain.ReadConfig(configFile); err != nil {
			return err
		}
		setupLogger()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is environment variables only)")
}

func setupLogger() {
	zerolog.SetGlobalLevel(domain.GetLogLevel())
	zerolog.TimeFieldFormat = time.RFC3339
	if domain.GetLogFormat() == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
