package subscription

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error

	FindByID(ctx context.Context, id int64) (*Subscription, error)

	List(ctx context.Context, filter Filter) ([]*Subscription, error)

	SumForCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error)
}
