/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tokenomics/domain"
	"tokenomics/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Starts the engine and its background tasks",
	Long: `Starts the engine, restores the latest snapshot when a database is configured
and runs the flash loan monitor, the proposal sweep, the supply optimizer and
the snapshot tasks until SIGINT or SIGTERM is received.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if err := defaultDependencyInject(ctx, prometheus.DefaultRegisterer); err != nil {
			return err
		}
		if dbPool != nil {
			defer dbPool.Close()
		}

		if snapshotInteractor != nil {
			restored, err := snapshotInteractor.RestoreLatest(ctx)
			if err != nil {
				log.Error().Err(err).Msg("🔴 restoring latest snapshot")
				return err
			}
			log.Info().Bool("restored", restored).Msg("snapshot restore done")
		}

		scheduler := schedule(engine)
		scheduler.Start(ctx)

		server := serveMetrics(domain.GetMetricsAddr())

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		s := <-stop
		log.Info().Str("signal", s.String()).Msg("got signal, stopping")

		scheduler.Stop()
		engine.Shutdown()

		if snapshotInteractor != nil {
			if _, err := snapshotInteractor.Save(context.Background()); err != nil {
				log.Error().Err(err).Msg("🔴 saving final snapshot")
			}
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	},
}

// schedule registers every background task of the engine.
func schedule(engine *usecase.Engine) *usecase.Scheduler {
	scheduler := usecase.NewScheduler(sink)

	scheduler.Every("flash-loan-monitor", domain.GetMonitorInterval(), engine.Monitor().Task)
	scheduler.Every("proposal-sweep", domain.GetSweepInterval(), func(ctx context.Context) error {
		engine.SweepExpiredProposals()
		return nil
	})
	scheduler.Every("status-export", time.Second*15, func(ctx context.Context) error {
		metricsExporter.Observe(engine.GetStatus())
		return nil
	})

	if domain.GetOptimizeInterval() > 0 {
		market := usecase.NewSimulatedMarket(randomSource)
		scheduler.Every("supply-optimizer", domain.GetOptimizeInterval(), func(ctx context.Context) error {
			_, err := engine.OptimizeSupply(market.Signal())
			return err
		})
	}

	if snapshotInteractor != nil {
		scheduler.Every("snapshot", domain.GetSnapshotInterval(), snapshotInteractor.Task)
	}

	return scheduler
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("🔴 metrics server")
		}
	}()
	return server
}

func init() {
	rootCmd.AddCommand(startCmd)
}
