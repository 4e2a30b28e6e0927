package dbhandler

import (
	"context"
	"errors"
	"time"

	"database/sql"

	"github.com/behrang/sqlbatch"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

const (
	pqSerializationFailure = "40001"
	maxRetries             = 5
)

// DBHandler contains a connection to database, guarded by a circuit breaker
// so that a failing database does not stall the scheduled snapshot task.
type DBHandler struct {
	DB      *sql.DB
	breaker *gobreaker.CircuitBreaker
}

func NewDBHandler(db *sql.DB) *DBHandler {
	settings := gobreaker.Settings{
		Name:        "snapshot-db",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("🟡 database circuit breaker changed state")
		},
	}
	return &DBHandler{
		DB:      db,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Batch creates a transaction and executes the batch of commands in that transaction.
// If a retryable error is received, the batch is retried.
func (handler *DBHandler) Batch(ctx context.Context, opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error) {
	results, err := handler.breaker.Execute(func() (interface{}, error) {
		return handler.retryBatch(ctx, opts, commands)
	})
	if err != nil {
		return nil, err
	}
	return results.([]interface{}), nil
}

func (handler *DBHandler) retryBatch(ctx context.Context, opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error) {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var results []interface{}
		results, err = handler.tryBatch(ctx, opts, commands)

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqSerializationFailure {
			log.Warn().Err(err).Int("attempt", attempt).Msg("🟡 retryable Postgres error, retrying")
			continue
		}
		return results, err
	}
	return nil, err
}

func (handler *DBHandler) tryBatch(ctx context.Context, opts *sql.TxOptions, commands []sqlbatch.Command) (results []interface{}, err error) {

	tx, err := handler.DB.BeginTx(ctx, opts)
	if err != nil {
		return
	}
	defer tx.Rollback()

	results, err = sqlbatch.Batch(tx, commands)

	if err == nil {
		err = tx.Commit()
	}

	return
}

func (handler *DBHandler) BreakerState() gobreaker.State {
	return handler.breaker.State()
}
