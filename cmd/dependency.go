package cmd

import (
	"context"
	"database/sql"
	"time"
	"tokenomics/domain"
	"tokenomics/infrastructure/dbhandler"
	"tokenomics/infrastructure/random"
	"tokenomics/interface/exporter"
	"tokenomics/interface/notifier"
	"tokenomics/interface/repository"
	"tokenomics/usecase"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
)

func defaultDependencyInject(ctx context.Context, registerer prometheus.Registerer) error {
	metricsExporter = exporter.NewExporter(registerer)
	randomSource = random.NewSource(domain.GetRandomSeed())
	sink = notifier.FanOut{notifier.LogSink{}, metricsExporter}

	var err error
	engine, err = usecase.NewEngine(usecase.Options{
		InitialSupply:     domain.GetInitialSupply(),
		TokenSymbol:       domain.GetTokenSymbol(),
		Random:            randomSource,
		Sink:              sink,
		AttackProbability: domain.GetAttackProbability(),
		Governance: usecase.GovernanceOptions{
			VotingPeriod:       domain.GetVotingPeriod(),
			QuorumBps:          domain.GetQuorumBps(),
			ApprovalBps:        domain.GetApprovalBps(),
			RequireTonProposer: domain.GetRequireTonProposer(),
			TestNet:            domain.IsTestNet(),
		},
	})
	if err != nil {
		return err
	}

	if !domain.IsPersistent() {
		return nil
	}
	return snapshotDependencyInject(ctx)
}

func openDB() error {
	var err error
	dbPool, err = sql.Open("postgres", domain.GetDbUri())
	if err != nil {
		return err
	}
	dbPool.SetMaxOpenConns(20)
	dbPool.SetMaxIdleConns(5)
	dbPool.SetConnMaxIdleTime(1 * time.Minute)
	dbPool.SetConnMaxLifetime(4 * time.Hour)
	return nil
}

func snapshotDependencyInject(ctx context.Context) error {
	if err := openDB(); err != nil {
		return err
	}

	snapshotRepository := repository.NewSnapshotRepository(dbhandler.NewDBHandler(dbPool))
	if err := snapshotRepository.Migrate(ctx); err != nil {
		return err
	}

	snapshotInteractor = usecase.NewSnapshotInteractor(engine, snapshotRepository, usecase.DefaultSnapshotRetention)
	return nil
}

var dbPool *sql.DB
var randomSource *random.Source
var metricsExporter *exporter.Exporter
var sink domain.NotificationSink
var engine *usecase.Engine
var snapshotInteractor *usecase.SnapshotInteractor
