package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, entry *DataEntry) error

	FindByID(ctx context.Context, id int64) (*DataEntry, error)

	List(ctx context.Context, filter Filter) ([]*DataEntry, error)

	Totals(ctx context.Context, from, to *time.Time) (credits, debits decimal.Decimal, err error)
}
