package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"welfare-ledger/internal/domain/seniority"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seniorityRowColumns = []string{"id", "customer_id", "name", "request_type", "status", "note", "requested_at", "reviewed_at"}

func TestSeniorityRepositoryCreateDuplicatePending(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewSeniorityRepository(mockPool, testLogger)
	now := time.Now()

	entry := &seniority.Entry{CustomerID: 3, RequestType: seniority.RequestLoan, Status: seniority.StatusPending, RequestedAt: now}
	mockPool.ExpectQuery(regexp.QuoteMeta(insertSenioritySQL)).
		WithArgs(int64(3), seniority.RequestLoan, seniority.StatusPending, "", now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "loan_seniority_pending_key"})

	err := repo.Create(ctx, entry)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSeniorityRepositoryList(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewSeniorityRepository(mockPool, testLogger)
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(listSenioritySQL)).WithArgs("PENDING").
		WillReturnRows(pgxmock.NewRows(seniorityRowColumns).
			AddRow(int64(1), int64(3), "Asha Rao", seniority.RequestLoan, seniority.StatusPending, "", now, nil).
			AddRow(int64(2), int64(4), "Vikram Rao", seniority.RequestSubscription, seniority.StatusPending, "urgent", now, nil))

	entries, err := repo.List(ctx, seniority.StatusPending)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Asha Rao", entries[0].CustomerName)
	assert.Nil(t, entries[0].ReviewedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSeniorityRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewSeniorityRepository(mockPool, testLogger)
	now := time.Now()

	mockPool.ExpectExec(regexp.QuoteMeta(updateSeniorityStatusSQL)).
		WithArgs(seniority.StatusApproved, "ok", now, int64(1), seniority.StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(updateSeniorityStatusSQL)).
		WithArgs(seniority.StatusApproved, "ok", now, int64(1), seniority.StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.NoError(t, repo.UpdateStatus(ctx, 1, seniority.StatusPending, seniority.StatusApproved, "ok", now))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 1, seniority.StatusPending, seniority.StatusApproved, "ok", now), apperrors.ErrConflict)
}

func TestSeniorityRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewSeniorityRepository(mockPool, testLogger)

	mockPool.ExpectExec(regexp.QuoteMeta(deleteSenioritySQL)).WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(deleteSenioritySQL)).WithArgs(int64(2)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(ctx, 1))
	assert.ErrorIs(t, repo.Delete(ctx, 2), apperrors.ErrNotFound)
}
