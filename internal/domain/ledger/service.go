package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type Service interface {
	AddEntry(ctx context.Context, entryType EntryType, category, description string, amount decimal.Decimal, entryDate time.Time) (*DataEntry, error)
	GetEntry(ctx context.Context, id int64) (*DataEntry, error)
	ListEntries(ctx context.Context, filter Filter) ([]*DataEntry, error)
	Balance(ctx context.Context, from, to *time.Time) (*Balance, error)
}

type ledgerService struct {
	repo   Repository
	logger *slog.Logger
}

func NewLedgerService(repo Repository, logger *slog.Logger) Service {
	return &ledgerService{repo: repo, logger: logger.With(slog.String("component", "ledgerService"))}
}

func (s *ledgerService) AddEntry(ctx context.Context, entryType EntryType, category, description string, amount decimal.Decimal, entryDate time.Time) (*DataEntry, error) {
	entry, err := NewDataEntry(entryType, category, description, amount, entryDate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save data entry", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save data entry: %w", err)
	}
	s.logger.InfoContext(ctx, "Data entry added", slog.Int64("entryID", entry.ID), slog.String("type", string(entry.EntryType)))
	return entry, nil
}

func (s *ledgerService) GetEntry(ctx context.Context, id int64) (*DataEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: data entry %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get data entry %d: %w", id, err)
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, filter Filter) ([]*DataEntry, error) {
	if err := validateRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list data entries", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list data entries: %w", err)
	}
	return entries, nil
}

func (s *ledgerService) Balance(ctx context.Context, from, to *time.Time) (*Balance, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	credits, debits, err := s.repo.Totals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ledger balance: %w", err)
	}
	return &Balance{Credits: credits, Debits: debits, Net: credits.Sub(debits)}, nil
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return apperrors.NewValidationError("to", "end date must not be before start date")
	}
	return nil
}
