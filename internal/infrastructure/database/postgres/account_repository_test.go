package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountRowColumns = []string{"id", "email", "password_hash", "role", "customer_id", "active", "created_at", "updated_at"}

func TestAccountRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool, testLogger)
	now := time.Now()
	customerID := int64(3)

	acc := &account.Account{Email: "asha@example.com", PasswordHash: "hash", Role: account.RoleCustomer, CustomerID: &customerID, Active: true}
	mockPool.ExpectQuery(regexp.QuoteMeta(insertAccountSQL)).
		WithArgs("asha@example.com", "hash", account.RoleCustomer, &customerID, true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	require.NoError(t, repo.Create(ctx, acc))
	assert.Equal(t, int64(10), acc.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountRepositoryCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool, testLogger)

	mockPool.ExpectQuery(regexp.QuoteMeta(insertAccountSQL)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	err := repo.Create(ctx, &account.Account{Email: "asha@example.com", Role: account.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestAccountRepositoryFindByEmail(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool, testLogger)
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(findAccountByEmailSQL)).WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows(accountRowColumns).
			AddRow(int64(1), "admin@example.com", "hash", account.RoleAdmin, nil, true, now, now))

	acc, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, acc.Role)
	assert.Nil(t, acc.CustomerID)
	assert.Equal(t, "hash", acc.PasswordHash)
}

func TestAccountRepositoryFindByIDNotFound(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool, testLogger)

	mockPool.ExpectQuery(regexp.QuoteMeta(findAccountByIDSQL)).WithArgs(int64(5)).WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(ctx, 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountRepositoryUpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool, testLogger)

	mockPool.ExpectExec(regexp.QuoteMeta(updatePasswordHashSQL)).WithArgs("new-hash", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(updatePasswordHashSQL)).WithArgs("new-hash", int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.NoError(t, repo.UpdatePasswordHash(ctx, 1, "new-hash"))
	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, 2, "new-hash"), apperrors.ErrNotFound)
}

func TestPushTokenRepositoryUpsertAndLatest(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)
	repo := NewPushTokenRepository(mockPool, testLogger)
	now := time.Now()

	token := &account.PushToken{AccountID: 4, Token: "fcm-abc", Platform: "android"}
	mockPool.ExpectQuery(regexp.QuoteMeta(upsertPushTokenSQL)).WithArgs(int64(4), "fcm-abc", "android").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(8), now, now))
	mockPool.ExpectQuery(regexp.QuoteMeta(latestPushTokenSQL)).WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "account_id", "token", "platform", "created_at", "updated_at"}).
			AddRow(int64(8), int64(4), "fcm-abc", "android", now, now))

	require.NoError(t, repo.Upsert(ctx, token))
	assert.Equal(t, int64(8), token.ID)

	latest, err := repo.LatestForAccount(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "fcm-abc", latest.Token)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
