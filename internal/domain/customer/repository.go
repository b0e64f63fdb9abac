package customer

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	List(ctx context.Context, search string) ([]*Customer, error)

	Update(ctx context.Context, customer *Customer) error
}
