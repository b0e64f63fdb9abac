package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	accountColumns = `id, email, password_hash, role, customer_id, active, created_at, updated_at`

	insertAccountSQL = `
        INSERT INTO accounts (email, password_hash, role, customer_id, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	findAccountByIDSQL    = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	findAccountByEmailSQL = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	updatePasswordHashSQL = `
        UPDATE accounts
        SET password_hash = $1, updated_at = NOW()
        WHERE id = $2`

	upsertPushTokenSQL = `
        INSERT INTO push_tokens (account_id, token, platform, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        ON CONFLICT ON CONSTRAINT push_tokens_token_key
        DO UPDATE SET account_id = EXCLUDED.account_id, platform = EXCLUDED.platform, updated_at = NOW()
        RETURNING id, created_at, updated_at`

	latestPushTokenSQL = `
        SELECT id, account_id, token, platform, created_at, updated_at
        FROM push_tokens
        WHERE account_id = $1
        ORDER BY updated_at DESC, id DESC
        LIMIT 1`
)

type AccountRepository struct {
	baseRepository
}

var _ account.Repository = (*AccountRepository)(nil)

func NewAccountRepository(db DBPool, logger *slog.Logger) *AccountRepository {
	return &AccountRepository{baseRepository: newBaseRepository(db, logger, "AccountRepository")}
}

func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	start := time.Now()
	err := r.db.QueryRow(ctx, insertAccountSQL, acc.Email, acc.PasswordHash, acc.Role, acc.CustomerID, acc.Active).
		Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	observe("CreateAccount", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	r.logger.InfoContext(ctx, "Account inserted", slog.Int64("accountID", acc.ID), slog.String("role", string(acc.Role)))
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*account.Account, error) {
	start := time.Now()
	acc, err := scanAccount(r.db.QueryRow(ctx, findAccountByIDSQL, id))
	observe("FindAccountByID", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return acc, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	start := time.Now()
	acc, err := scanAccount(r.db.QueryRow(ctx, findAccountByEmailSQL, email))
	observe("FindAccountByEmail", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return acc, nil
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, updatePasswordHashSQL, hash, id)
	observe("UpdatePasswordHash", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	return nil
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var a account.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CustomerID, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

type PushTokenRepository struct {
	baseRepository
}

var _ account.PushTokenRepository = (*PushTokenRepository)(nil)

func NewPushTokenRepository(db DBPool, logger *slog.Logger) *PushTokenRepository {
	return &PushTokenRepository{baseRepository: newBaseRepository(db, logger, "PushTokenRepository")}
}

func (r *PushTokenRepository) Upsert(ctx context.Context, token *account.PushToken) error {
	start := time.Now()
	err := r.db.QueryRow(ctx, upsertPushTokenSQL, token.AccountID, token.Token, token.Platform).
		Scan(&token.ID, &token.CreatedAt, &token.UpdatedAt)
	observe("UpsertPushToken", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *PushTokenRepository) LatestForAccount(ctx context.Context, accountID int64) (*account.PushToken, error) {
	var t account.PushToken
	start := time.Now()
	err := r.db.QueryRow(ctx, latestPushTokenSQL, accountID).
		Scan(&t.ID, &t.AccountID, &t.Token, &t.Platform, &t.CreatedAt, &t.UpdatedAt)
	observe("LatestPushToken", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return &t, nil
}
