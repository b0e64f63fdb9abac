package seniority

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type Service interface {
	Eligibility(ctx context.Context, customerID int64) (*Eligibility, error)
	Enqueue(ctx context.Context, customerID int64, requestType RequestType, note string) (*Entry, error)
	ListEntries(ctx context.Context, status Status) ([]*Entry, error)
	Review(ctx context.Context, entryID int64, approve bool, note string) (*Entry, error)
	Remove(ctx context.Context, entryID int64) error
}

type seniorityService struct {
	repo      Repository
	customers customer.Service
	loans     loan.LoanService
	logger    *slog.Logger
}

func NewSeniorityService(repo Repository, customers customer.Service, loans loan.LoanService, logger *slog.Logger) Service {
	return &seniorityService{
		repo:      repo,
		customers: customers,
		loans:     loans,
		logger:    logger.With(slog.String("component", "seniorityService")),
	}
}

func (s *seniorityService) Eligibility(ctx context.Context, customerID int64) (*Eligibility, error) {
	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	loans, err := s.loans.ListLoans(ctx, loan.Filter{CustomerID: &customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load loans for customer %d: %w", customerID, err)
	}

	result := &Eligibility{CustomerID: customerID, PaidRatio: decimal.Zero}
	var best *loan.Loan
	bestRatio := decimal.Zero
	for _, l := range loans {
		total := l.TotalRepayable()
		if !total.IsPositive() {
			continue
		}
		ratio := l.PaidAmount.Div(total)
		if best == nil || ratio.GreaterThan(bestRatio) {
			best, bestRatio = l, ratio
		}
	}
	if best == nil {
		return result, nil
	}

	id := best.ID
	result.BestLoanID = &id
	result.PaidRatio = bestRatio.Round(4)
	// compare unrounded amounts so 79.999% never rounds up into eligibility
	result.Eligible = best.PaidAmount.GreaterThanOrEqual(best.TotalRepayable().Mul(EligibilityThreshold))
	return result, nil
}

func (s *seniorityService) Enqueue(ctx context.Context, customerID int64, requestType RequestType, note string) (*Entry, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID), slog.String("requestType", string(requestType)))

	if requestType != RequestLoan && requestType != RequestSubscription {
		return nil, apperrors.NewValidationError("requestType", "request type must be LOAN or SUBSCRIPTION")
	}

	eligibility, err := s.Eligibility(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		logCtx.WarnContext(ctx, "Customer not eligible for seniority list", slog.String("paidRatio", eligibility.PaidRatio.String()))
		return nil, apperrors.NewValidationError("customerId",
			fmt.Sprintf("customer must have repaid at least %s%% of a loan", EligibilityThreshold.Shift(2).String()))
	}

	entry := &Entry{
		CustomerID:  customerID,
		RequestType: requestType,
		Status:      StatusPending,
		Note:        strings.TrimSpace(note),
		RequestedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Customer already has a pending seniority request")
			return nil, fmt.Errorf("%w: customer %d already has a pending %s request", apperrors.ErrAlreadyExists, customerID, requestType)
		}
		logCtx.ErrorContext(ctx, "Failed to save seniority entry", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save seniority entry: %w", err)
	}

	logCtx.InfoContext(ctx, "Customer added to seniority list", slog.Int64("entryID", entry.ID))
	return entry, nil
}

func (s *seniorityService) ListEntries(ctx context.Context, status Status) ([]*Entry, error) {
	entries, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list seniority entries: %w", err)
	}
	return entries, nil
}

func (s *seniorityService) Review(ctx context.Context, entryID int64, approve bool, note string) (*Entry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: seniority entry %d", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to get seniority entry %d: %w", entryID, err)
	}
	if entry.Status != StatusPending {
		return nil, fmt.Errorf("%w: seniority entry %d was already %s", apperrors.ErrConflict, entryID, entry.Status)
	}

	target := StatusRejected
	if approve {
		target = StatusApproved
	}
	reviewedAt := time.Now()
	note = strings.TrimSpace(note)
	if note == "" {
		note = entry.Note
	}

	if err := s.repo.UpdateStatus(ctx, entryID, StatusPending, target, note, reviewedAt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to review seniority entry", slog.Int64("entryID", entryID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to review seniority entry %d: %w", entryID, err)
	}

	entry.Status = target
	entry.Note = note
	entry.ReviewedAt = &reviewedAt
	s.logger.InfoContext(ctx, "Seniority entry reviewed", slog.Int64("entryID", entryID), slog.String("status", string(target)))
	return entry, nil
}

func (s *seniorityService) Remove(ctx context.Context, entryID int64) error {
	if err := s.repo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: seniority entry %d", apperrors.ErrNotFound, entryID)
		}
		return fmt.Errorf("failed to remove seniority entry %d: %w", entryID, err)
	}
	s.logger.InfoContext(ctx, "Seniority entry removed", slog.Int64("entryID", entryID))
	return nil
}
