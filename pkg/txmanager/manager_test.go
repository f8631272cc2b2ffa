package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshwari28/QuickCourt/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  int
	rolledBack int
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) Commit() error {
	f.committed++
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack++
	return nil
}

type fakeBeginner struct {
	tx     *fakeTx
	begins int
}

func (f *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	return f.tx, nil
}

// serializationErr собирает ошибку в том виде, в котором она приходит из
// репозитория сквозь usecase: sentinel-обёртки сверху, ошибка драйвера в цепочке
func serializationErr() error {
	pqErr := &pq.Error{Code: "40001"}
	repoErr := fmt.Errorf("execute query: %w", pqErr)
	return fmt.Errorf("internal error: failed to get reservations: %w", repoErr)
}

func TestDoSerializable_RetriesSerializationFailureFromBody(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return serializationErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 2, beginner.tx.rolledBack)
	assert.Equal(t, 1, beginner.tx.committed)
}

func TestDoSerializable_ExhaustedRetriesReturnErrSerialization(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationErr()
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, maxRetries, attempts)
}

func TestDoSerializable_NonRetryableErrorReturnedAsIs(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)

	sentinel := errors.New("slot conflict")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_RetriesCommitSerializationFailure(t *testing.T) {
	tx := &fakeTx{commitErr: &pq.Error{Code: "40001"}}
	beginner := &fakeBeginner{tx: tx}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, maxRetries, tx.committed)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(serializationErr()))
	assert.True(t, isRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, isRetryable(errors.New("constraint violation")))

	// Расплющенная %v-обёртка теряет драйверную ошибку
	flattened := fmt.Errorf("execute query: %v", &pq.Error{Code: "40001"})
	assert.False(t, isRetryable(flattened))
}
