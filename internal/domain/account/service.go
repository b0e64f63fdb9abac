package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/pkg/apperrors"
)

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Account   *Account  `json:"account"`
}

type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CreateUser(ctx context.Context, email, password string, role Role, customerID *int64) (*Account, error)
	ResetPassword(ctx context.Context, accountID int64) (string, error)
	ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error
	Me(ctx context.Context, accountID int64) (*Account, error)
	SeedAdmin(ctx context.Context, email, password string) (*Account, error)
}

type accountService struct {
	repo      Repository
	customers customer.Service
	tokens    *TokenIssuer
	mailer    PasswordMailer
	logger    *slog.Logger
}

func NewAccountService(repo Repository, customers customer.Service, tokens *TokenIssuer, mailer PasswordMailer, logger *slog.Logger) Service {
	return &accountService{
		repo:      repo,
		customers: customers,
		tokens:    tokens,
		mailer:    mailer,
		logger:    logger.With(slog.String("component", "accountService")),
	}
}

func (s *accountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	acc, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Login attempt for unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if !acc.Active || !acc.CheckPassword(password) {
		s.logger.WarnContext(ctx, "Login rejected", slog.Int64("accountID", acc.ID), slog.Bool("active", acc.Active))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(acc)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Login succeeded", slog.Int64("accountID", acc.ID), slog.String("role", string(acc.Role)))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Account: acc}, nil
}

func (s *accountService) CreateUser(ctx context.Context, email, password string, role Role, customerID *int64) (*Account, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	switch role {
	case RoleAdmin:
		customerID = nil
	case RoleCustomer:
		if customerID == nil {
			return nil, apperrors.NewValidationError("customerId", "a customer account must be linked to a customer")
		}
		if _, err := s.customers.GetCustomer(ctx, *customerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("customerId", fmt.Sprintf("customer %d does not exist", *customerID))
			}
			return nil, err
		}
	default:
		return nil, apperrors.NewValidationError("role", "role must be ADMIN or CUSTOMER")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	acc := &Account{
		Email:        normalized,
		PasswordHash: hash,
		Role:         role,
		CustomerID:   customerID,
		Active:       true,
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrAlreadyExists, normalized)
		}
		s.logger.ErrorContext(ctx, "Failed to create account", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.InfoContext(ctx, "Account created", slog.Int64("accountID", acc.ID), slog.String("role", string(role)))
	return acc, nil
}

func (s *accountService) ResetPassword(ctx context.Context, accountID int64) (string, error) {
	acc, err := s.Me(ctx, accountID)
	if err != nil {
		return "", err
	}

	temporary, err := GenerateTemporaryPassword()
	if err != nil {
		return "", err
	}
	hash, err := HashPassword(temporary)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdatePasswordHash(ctx, acc.ID, hash); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store reset password", slog.Int64("accountID", accountID), slog.Any("error", err))
		return "", fmt.Errorf("failed to reset password for account %d: %w", accountID, err)
	}

	if err := s.mailer.SendTemporaryPassword(ctx, acc.Email, temporary); err != nil {
		s.logger.ErrorContext(ctx, "Password reset, but FAILED to email temporary password", slog.Int64("accountID", accountID), slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "Password reset", slog.Int64("accountID", accountID))
	return temporary, nil
}

func (s *accountService) ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error {
	acc, err := s.Me(ctx, accountID)
	if err != nil {
		return err
	}
	if !acc.CheckPassword(oldPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, accountID, hash); err != nil {
		return fmt.Errorf("failed to change password for account %d: %w", accountID, err)
	}

	s.logger.InfoContext(ctx, "Password changed", slog.Int64("accountID", accountID))
	return nil
}

func (s *accountService) Me(ctx context.Context, accountID int64) (*Account, error) {
	acc, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load account %d: %w", accountID, err)
	}
	return acc, nil
}

func (s *accountService) SeedAdmin(ctx context.Context, email, password string) (*Account, error) {
	return s.CreateUser(ctx, email, password, RoleAdmin, nil)
}
