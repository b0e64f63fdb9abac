package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	customerColumns = `id, name, phone, address, created_at, updated_at`

	insertCustomerSQL = `
        INSERT INTO customers (name, phone, address, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	findCustomerByIDSQL = `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE id = $1 AND deleted_at IS NULL`

	findCustomerByPhoneSQL = `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE phone = $1 AND deleted_at IS NULL`

	listCustomersSQL = `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE deleted_at IS NULL
          AND ($1::text = '' OR name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%')
        ORDER BY name ASC, id ASC`

	updateCustomerSQL = `
        UPDATE customers
        SET name = $1,
            phone = $2,
            address = $3,
            updated_at = NOW()
        WHERE id = $4 AND deleted_at IS NULL
        RETURNING updated_at`
)

type CustomerRepository struct {
	baseRepository
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	return &CustomerRepository{baseRepository: newBaseRepository(db, logger, "CustomerRepository")}
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	start := time.Now()
	err := r.db.QueryRow(ctx, insertCustomerSQL, cust.Name, cust.Phone, cust.Address).
		Scan(&cust.ID, &cust.CreatedAt, &cust.UpdatedAt)
	observe("CreateCustomer", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	start := time.Now()
	cust, err := scanCustomer(r.db.QueryRow(ctx, findCustomerByIDSQL, customerID))
	observe("FindCustomerByID", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return cust, nil
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	start := time.Now()
	cust, err := scanCustomer(r.db.QueryRow(ctx, findCustomerByPhoneSQL, phone))
	observe("FindCustomerByPhone", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return cust, nil
}

func (r *CustomerRepository) List(ctx context.Context, search string) ([]*customer.Customer, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, listCustomersSQL, search)
	observe("ListCustomers", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		customers = append(customers, cust)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil || cust.ID == 0 {
		return fmt.Errorf("%w: customer must have an id to be updated", apperrors.ErrInvalidArgument)
	}

	start := time.Now()
	err := r.db.QueryRow(ctx, updateCustomerSQL, cust.Name, cust.Phone, cust.Address, cust.ID).Scan(&cust.UpdatedAt)
	observe("UpdateCustomer", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
