package account

import "context"

type Repository interface {
	Create(ctx context.Context, acc *Account) error

	FindByID(ctx context.Context, id int64) (*Account, error)

	FindByEmail(ctx context.Context, email string) (*Account, error)

	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// PasswordMailer delivers freshly generated temporary passwords.
type PasswordMailer interface {
	SendTemporaryPassword(ctx context.Context, to, password string) error
}
