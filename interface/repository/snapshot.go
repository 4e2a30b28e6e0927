package repository

import (
	"context"
	"tokenomics/domain"

	"github.com/behrang/sqlbatch"
)

const (
	sqlSnapshotCreateTable = `
	create table if not exists snapshots (
		version bigserial primary key,
		schema_version integer not null,
		taken_at timestamptz not null,
		payload jsonb not null
	)
`

	sqlSnapshotInsert = `
	insert into snapshots (
			schema_version, taken_at, payload
		)
		values (
			$1, $2, $3::jsonb
		)
	returning version
`

	sqlSnapshotFindLatest = `
	select
		version, payload
	from snapshots
	order by version desc
	limit 1
`

	sqlSnapshotPrune = `
	delete from snapshots
	where version not in (
		select version from snapshots order by version desc limit $1
	)
`
)

type SnapshotRepository struct {
	batchHandler BatchHandler
}

func NewSnapshotRepository(db BatchHandler) *SnapshotRepository {
	return &SnapshotRepository{batchHandler: db}
}

func readVersion(scan func(...interface{}) error) (interface{}, error) {
	var version int64
	err := scan(&version)
	return version, err
}

func readAllSnapshots(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	s := domain.Snapshot{}
	var version int64
	var payload []byte
	err := scan(&version, &payload)
	if err == nil {
		err = s.FromJson(string(payload))
		s.Version = version
	}

	list := memo.([]domain.Snapshot)
	list = append(list, s)
	return list, err
}

func (repo *SnapshotRepository) Migrate(ctx context.Context) error {
	_, err := repo.batchHandler.Batch(ctx, &BatchOptionNormal, []sqlbatch.Command{
		{
			Query: sqlSnapshotCreateTable,
		},
	})
	return err
}

// Save stores the snapshot and returns the version assigned to it.
func (repo *SnapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) (int64, error) {
	results, err := repo.batchHandler.Batch(ctx, &BatchOptionNormal, []sqlbatch.Command{
		{
			Query: sqlSnapshotInsert,
			Args: []interface{}{
				snapshot.SchemaVersion, snapshot.TakenAt.UTC(), snapshot.ToJson(),
			},
			ReadOne: readVersion,
		},
	})
	if err != nil {
		return 0, err
	}

	version, _ := results[0].(int64)
	return version, nil
}

func (repo *SnapshotRepository) Latest(ctx context.Context) (*domain.Snapshot, error) {
	results, err := repo.batchHandler.Batch(ctx, &BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlSnapshotFindLatest,
			Init:    make([]domain.Snapshot, 0, 1),
			ReadAll: readAllSnapshots,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]domain.Snapshot)
	if len(list) == 0 {
		return nil, domain.ErrorNoSnapshot
	}
	return &list[0], nil
}

// Prune keeps the newest snapshots and removes the rest.
func (repo *SnapshotRepository) Prune(ctx context.Context, keep int) error {
	_, err := repo.batchHandler.Batch(ctx, &BatchOptionNormal, []sqlbatch.Command{
		{
			Query: sqlSnapshotPrune,
			Args:  []interface{}{keep},
		},
	})
	return err
}

