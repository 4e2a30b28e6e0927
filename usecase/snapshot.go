package usecase

import (
	"context"
	"errors"
	"tokenomics/domain"

	"github.com/rs/zerolog/log"
)

const DefaultSnapshotRetention = 50

type SnapshotStore interface {
	Save(ctx context.Context, snapshot *domain.Snapshot) (int64, error)
	Latest(ctx context.Context) (*domain.Snapshot, error)
	Prune(ctx context.Context, keep int) error
}

type SnapshotInteractor struct {
	engine    *Engine
	store     SnapshotStore
	retention int
}

func NewSnapshotInteractor(engine *Engine, store SnapshotStore, retention int) *SnapshotInteractor {
	if retention <= 0 {
		retention = DefaultSnapshotRetention
	}
	return &SnapshotInteractor{
		engine:    engine,
		store:     store,
		retention: retention,
	}
}

func (interactor *SnapshotInteractor) Save(ctx context.Context) (int64, error) {
	version, err := interactor.store.Save(ctx, interactor.engine.Snapshot())
	if err != nil {
		log.Error().Err(err).Msg("🔴 saving snapshot")
		return 0, err
	}

	if err := interactor.store.Prune(ctx, interactor.retention); err != nil {
		log.Warn().Err(err).Msg("🟡 pruning snapshots")
	}

	log.Debug().Int64("version", version).Msg("snapshot saved")
	return version, nil
}

// RestoreLatest loads the newest stored snapshot into the engine. It reports
// false when nothing has been stored yet.
func (interactor *SnapshotInteractor) RestoreLatest(ctx context.Context) (bool, error) {
	snapshot, err := interactor.store.Latest(ctx)
	if errors.Is(err, domain.ErrorNoSnapshot) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := interactor.engine.Restore(snapshot); err != nil {
		return false, err
	}
	return true, nil
}

// Task adapts Save to the scheduler.
func (interactor *SnapshotInteractor) Task(ctx context.Context) error {
	_, err := interactor.Save(ctx)
	return err
}
