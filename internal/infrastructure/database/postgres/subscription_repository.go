package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/subscription"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	insertSubscriptionSQL = `
        INSERT INTO subscriptions (customer_id, amount, paid_on, period, note, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at`

	findSubscriptionSQL = `
        SELECT id, customer_id, amount, paid_on, period, note, created_at
        FROM subscriptions
        WHERE id = $1 AND deleted_at IS NULL`

	listSubscriptionsSQL = `
        SELECT id, customer_id, amount, paid_on, period, note, created_at
        FROM subscriptions
        WHERE deleted_at IS NULL
          AND ($1::bigint IS NULL OR customer_id = $1)
          AND ($2::text = '' OR period = $2)
        ORDER BY paid_on DESC, id DESC`

	sumSubscriptionsSQL = `
        SELECT COALESCE(SUM(amount), 0)
        FROM subscriptions
        WHERE customer_id = $1 AND deleted_at IS NULL`
)

type SubscriptionRepository struct {
	baseRepository
}

var _ subscription.Repository = (*SubscriptionRepository)(nil)

func NewSubscriptionRepository(db DBPool, logger *slog.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{baseRepository: newBaseRepository(db, logger, "SubscriptionRepository")}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	start := time.Now()
	err := r.db.QueryRow(ctx, insertSubscriptionSQL, sub.CustomerID, sub.Amount, sub.PaidOn, sub.Period, sub.Note).
		Scan(&sub.ID, &sub.CreatedAt)
	observe("CreateSubscription", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id int64) (*subscription.Subscription, error) {
	start := time.Now()
	sub, err := scanSubscription(r.db.QueryRow(ctx, findSubscriptionSQL, id))
	observe("FindSubscriptionByID", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return sub, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, listSubscriptionsSQL, filter.CustomerID, filter.Period)
	observe("ListSubscriptions", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	subs := make([]*subscription.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return subs, nil
}

func (r *SubscriptionRepository) SumForCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	start := time.Now()
	err := r.db.QueryRow(ctx, sumSubscriptionsSQL, customerID).Scan(&total)
	observe("SumSubscriptions", start, err)
	if err != nil {
		return decimal.Zero, translateDBError(err, r.logger)
	}
	return total, nil
}

func scanSubscription(row pgx.Row) (*subscription.Subscription, error) {
	var s subscription.Subscription
	if err := row.Scan(&s.ID, &s.CustomerID, &s.Amount, &s.PaidOn, &s.Period, &s.Note, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
