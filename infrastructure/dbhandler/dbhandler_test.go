package dbhandler

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/behrang/sqlbatch"
	"github.com/lib/pq"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_RetriesSerializationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("update supply").WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("update supply").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	handler := NewDBHandler(db)
	_, err = handler.Batch(context.Background(), nil, []sqlbatch.Command{
		{Query: "update supply set total = 1"},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatch_OpensBreakerAfterConsecutiveFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection refused")
	for i := 0; i < 3; i++ {
		mock.ExpectBegin().WillReturnError(boom)
	}

	handler := NewDBHandler(db)
	commands := []sqlbatch.Command{{Query: "select 1"}}
	for i := 0; i < 3; i++ {
		_, err = handler.Batch(context.Background(), nil, commands)
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateOpen, handler.BreakerState())

	_, err = handler.Batch(context.Background(), nil, commands)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.NoError(t, mock.ExpectationsWereMet())
}
