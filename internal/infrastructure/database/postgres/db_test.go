package postgres

import (
	"context"
	"errors"
	"testing"

	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pgxmockExpectationsNotMetMsg = "there were unfulfilled expectations"

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to open a stub database connection")
	t.Cleanup(mockPool.Close)
	return mockPool
}

func TestTranslateDBError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "customers_phone_key"}, apperrors.ErrAlreadyExists},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, apperrors.ErrConflict},
		{"insufficient privilege", &pgconn.PgError{Code: "42501", Message: "permission denied for table loans"}, apperrors.ErrForbidden},
		{"other pg error", &pgconn.PgError{Code: "40001"}, apperrors.ErrDatabase},
		{"generic", errors.New("connection reset"), apperrors.ErrDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateDBError(tt.err, testLogger), tt.target)
		})
	}

	assert.NoError(t, translateDBError(nil, testLogger))
}

func TestInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := newBaseRepository(mockPool, testLogger, "test")

		mockPool.ExpectBegin()
		mockPool.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mockPool.ExpectCommit()

		err := repo.inTx(ctx, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, "SELECT 1")
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := newBaseRepository(mockPool, testLogger, "test")

		mockPool.ExpectBegin()
		mockPool.ExpectRollback()

		err := repo.inTx(ctx, func(tx pgx.Tx) error {
			return apperrors.ErrConflict
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("begin failure", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := newBaseRepository(mockPool, testLogger, "test")

		mockPool.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err := repo.inTx(ctx, func(tx pgx.Tx) error { return nil })
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
	})
}
