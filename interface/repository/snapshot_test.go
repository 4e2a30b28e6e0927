package repository

import (
	"context"
	"testing"
	"time"
	"tokenomics/domain"
	"tokenomics/infrastructure/dbhandler"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*SnapshotRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSnapshotRepository(dbhandler.NewDBHandler(db)), mock
}

func TestSnapshotRepository_Save(t *testing.T) {
	repo, mock := newMockRepository(t)

	snapshot := &domain.Snapshot{
		SchemaVersion: domain.SnapshotSchemaVersion,
		TakenAt:       time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		Supply:        domain.SupplyState{TotalSupply: 970_000_000, Burned: 30_000_000},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("insert into snapshots").
		WithArgs(domain.SnapshotSchemaVersion, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(42)))
	mock.ExpectCommit()

	version, err := repo.Save(context.Background(), snapshot)
	require.NoError(t, err)
	assert.Equal(t, int64(42), version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_Latest(t *testing.T) {
	repo, mock := newMockRepository(t)

	stored := &domain.Snapshot{
		SchemaVersion: domain.SnapshotSchemaVersion,
		Supply:        domain.SupplyState{TotalSupply: 995_000_000, Burned: 5_000_000},
		Tiers:         domain.DefaultTiers(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("order by version desc").
		WillReturnRows(sqlmock.NewRows([]string{"version", "payload"}).AddRow(int64(7), []byte(stored.ToJson())))
	mock.ExpectCommit()

	snapshot, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), snapshot.Version)
	assert.Equal(t, stored.Supply, snapshot.Supply)
	assert.Len(t, snapshot.Tiers, 6)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_LatestEmpty(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("order by version desc").
		WillReturnRows(sqlmock.NewRows([]string{"version", "payload"}))
	mock.ExpectCommit()

	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrorNoSnapshot)
}

func TestSnapshotRepository_MigrateAndPrune(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("create table if not exists snapshots").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("delete from snapshots").WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.Migrate(context.Background()))
	require.NoError(t, repo.Prune(context.Background(), 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}
