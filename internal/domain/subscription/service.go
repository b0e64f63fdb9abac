package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type Service interface {
	RecordSubscription(ctx context.Context, customerID int64, amount decimal.Decimal, paidOn time.Time, period, note string) (*Subscription, error)
	GetSubscription(ctx context.Context, id int64) (*Subscription, error)
	ListSubscriptions(ctx context.Context, filter Filter) ([]*Subscription, error)
	TotalForCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error)
}

type subscriptionService struct {
	repo      Repository
	customers customer.Service
	logger    *slog.Logger
}

func NewSubscriptionService(repo Repository, customers customer.Service, logger *slog.Logger) Service {
	return &subscriptionService{
		repo:      repo,
		customers: customers,
		logger:    logger.With(slog.String("component", "subscriptionService")),
	}
}

func (s *subscriptionService) RecordSubscription(ctx context.Context, customerID int64, amount decimal.Decimal, paidOn time.Time, period, note string) (*Subscription, error) {
	sub, err := NewSubscription(customerID, amount, paidOn, period, note)
	if err != nil {
		return nil, err
	}

	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("customerId", fmt.Sprintf("customer %d does not exist", customerID))
		}
		return nil, fmt.Errorf("failed to verify customer %d: %w", customerID, err)
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save subscription", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.logger.InfoContext(ctx, "Subscription recorded",
		slog.Int64("subscriptionID", sub.ID), slog.Int64("customerID", customerID), slog.String("period", sub.Period))
	return sub, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id int64) (*Subscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: subscription %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get subscription %d: %w", id, err)
	}
	return sub, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, filter Filter) ([]*Subscription, error) {
	if filter.Period != "" && !periodPattern.MatchString(filter.Period) {
		return nil, apperrors.NewValidationError("period", fmt.Sprintf("period %q must use the YYYY-MM format", filter.Period))
	}
	subs, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list subscriptions", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *subscriptionService) TotalForCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	total, err := s.repo.SumForCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total subscriptions for customer %d: %w", customerID, err)
	}
	return total, nil
}
