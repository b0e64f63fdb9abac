package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/event"
	"welfare-ledger/internal/infrastructure/monitoring"
	"welfare-ledger/internal/pkg/apperrors"
	"welfare-ledger/internal/pkg/money"

	"github.com/shopspring/decimal"
)

type LoanService interface {
	CreateLoan(ctx context.Context, customerID int64, original, interest decimal.Decimal, issuedOn time.Time, note string) (*Loan, error)

	// GetLoan returns the loan with its installments and paid amount.
	GetLoan(ctx context.Context, loanID int64) (*Loan, error)

	ListLoans(ctx context.Context, filter Filter) ([]*Loan, error)

	UpdateLoan(ctx context.Context, loanID int64, note *string, interest *decimal.Decimal) (*Loan, error)

	RecordInstallment(ctx context.Context, loanID int64, amount decimal.Decimal, paidOn time.Time, note string) (*Installment, error)

	ListInstallments(ctx context.Context, loanID int64) ([]Installment, error)

	Summary(ctx context.Context, loanID int64) (*Summary, error)
}

type loanServiceImpl struct {
	repo            Repository
	customerService customer.Service
	pub             event.EventPublisher
	logger          *slog.Logger
}

func NewLoanService(r Repository, cs customer.Service, pub event.EventPublisher, logger *slog.Logger) LoanService {
	return &loanServiceImpl{
		repo:            r,
		customerService: cs,
		pub:             pub,
		logger:          logger.With(slog.String("component", "loanService")),
	}
}

func newLoanEventPayload(l *Loan) event.LoanEventPayload {
	return event.LoanEventPayload{
		LoanID:         l.ID,
		CustomerID:     l.CustomerID,
		OriginalAmount: l.OriginalAmount,
		InterestAmount: l.InterestAmount,
		TotalRepayable: l.TotalRepayable(),
		Status:         string(l.Status),
		IssuedOn:       l.IssuedOn,
	}
}

func (s *loanServiceImpl) CreateLoan(ctx context.Context, customerID int64, original, interest decimal.Decimal, issuedOn time.Time, note string) (*Loan, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Creating new loan")

	newLoan, err := NewLoan(customerID, original, interest, issuedOn, note)
	if err != nil {
		logCtx.WarnContext(ctx, "Loan validation failed", slog.Any("error", err))
		return nil, err
	}

	if _, err := s.customerService.GetCustomer(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found for new loan")
			return nil, apperrors.NewValidationError("customerId", fmt.Sprintf("customer %d does not exist", customerID))
		}
		logCtx.ErrorContext(ctx, "Failed to verify customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify customer %d: %w", customerID, err)
	}

	created, err := s.repo.CreateLoan(ctx, newLoan)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to save loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	if pubErr := s.pub.PublishLoanCreated(ctx, event.LoanCreatedEvent{Timestamp: time.Now(), Payload: newLoanEventPayload(created)}); pubErr != nil {
		logCtx.ErrorContext(ctx, "Loan created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Loan created successfully", slog.Int64("loanID", created.ID))
	return created, nil
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", slog.Int64("loanID", loanID))
			return nil, fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to get loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get loan %d: %w", loanID, err)
	}

	installments, err := s.repo.ListInstallments(ctx, loanID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get loan installments", slog.Int64("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get installments for loan %d: %w", loanID, err)
	}
	l.Installments = installments
	return l, nil
}

func (s *loanServiceImpl) ListLoans(ctx context.Context, filter Filter) ([]*Loan, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown loan status %q", filter.Status))
	}
	loans, err := s.repo.ListLoans(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

func (s *loanServiceImpl) UpdateLoan(ctx context.Context, loanID int64, note *string, interest *decimal.Decimal) (l *Loan, err error) {
	logCtx := s.logger.With(slog.Int64("loanID", loanID))
	logCtx.InfoContext(ctx, "Updating loan")

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	l, err = s.repo.GetLoanForUpdate(ctx, tx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
		}
		return nil, fmt.Errorf("failed to lock loan %d: %w", loanID, err)
	}

	wasClosed := l.Status == StatusClosed
	if interest != nil {
		if err = l.ChangeInterest(*interest); err != nil {
			logCtx.WarnContext(ctx, "Interest change rejected", slog.Any("error", err))
			return nil, err
		}
	}
	if note != nil {
		l.Note = strings.TrimSpace(*note)
	}

	if err = s.repo.UpdateLoanInTx(ctx, tx, l); err != nil {
		logCtx.ErrorContext(ctx, "Failed to update loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update loan %d: %w", loanID, err)
	}
	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit loan update: %w", err)
	}

	if !wasClosed && l.Status == StatusClosed {
		s.publishLoanClosed(ctx, l)
	}
	logCtx.InfoContext(ctx, "Loan updated", slog.String("status", string(l.Status)))
	return l, nil
}

func (s *loanServiceImpl) RecordInstallment(ctx context.Context, loanID int64, amount decimal.Decimal, paidOn time.Time, note string) (inst *Installment, err error) {
	logCtx := s.logger.With(slog.Int64("loanID", loanID), slog.String("amount", amount.String()))
	if err := money.Validate("amount", amount); err != nil {
		return nil, err
	}
	logCtx.InfoContext(ctx, "Recording installment")

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if errors.Is(err, apperrors.ErrPaymentExceedsBalance) {
			monitoring.RecordInstallmentRejected()
		}
		if p := recover(); p != nil {
			logCtx.ErrorContext(ctx, "Panic occurred while recording installment", slog.Any("panic", p))
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	l, err := s.repo.GetLoanForUpdate(ctx, tx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
		}
		return nil, fmt.Errorf("failed to lock loan %d: %w", loanID, err)
	}

	closed, err := l.ApplyPayment(amount)
	if err != nil {
		logCtx.WarnContext(ctx, "Installment rejected", slog.Any("error", err))
		return nil, err
	}

	inst = NewInstallment(loanID, amount, paidOn, note)
	if err = s.repo.InsertInstallmentInTx(ctx, tx, inst); err != nil {
		logCtx.ErrorContext(ctx, "Failed to insert installment", slog.Any("error", err))
		return nil, fmt.Errorf("failed to insert installment: %w", err)
	}

	if closed {
		if err = s.repo.UpdateLoanInTx(ctx, tx, l); err != nil {
			logCtx.ErrorContext(ctx, "Failed to close loan", slog.Any("error", err))
			return nil, fmt.Errorf("failed to close loan %d: %w", loanID, err)
		}
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit installment: %w", err)
	}

	monitoring.RecordInstallmentRecorded()
	recorded := event.InstallmentRecordedEvent{
		Timestamp:     time.Now(),
		InstallmentID: inst.ID,
		LoanID:        loanID,
		CustomerID:    l.CustomerID,
		Amount:        inst.Amount,
		PaidOn:        inst.PaidOn,
		Outstanding:   l.Outstanding(),
	}
	if pubErr := s.pub.PublishInstallmentRecorded(ctx, recorded); pubErr != nil {
		logCtx.ErrorContext(ctx, "Installment recorded, but FAILED to publish event", slog.Any("error", pubErr))
	}
	if closed {
		s.publishLoanClosed(ctx, l)
	}

	logCtx.InfoContext(ctx, "Installment recorded", slog.Int64("installmentID", inst.ID), slog.Bool("loanClosed", closed))
	return inst, nil
}

func (s *loanServiceImpl) ListInstallments(ctx context.Context, loanID int64) ([]Installment, error) {
	if _, err := s.repo.GetLoanByID(ctx, loanID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
		}
		return nil, fmt.Errorf("failed to get loan %d: %w", loanID, err)
	}
	installments, err := s.repo.ListInstallments(ctx, loanID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list installments", slog.Int64("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list installments for loan %d: %w", loanID, err)
	}
	return installments, nil
}

func (s *loanServiceImpl) Summary(ctx context.Context, loanID int64) (*Summary, error) {
	l, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	summary := l.Summary()
	return &summary, nil
}

func (s *loanServiceImpl) publishLoanClosed(ctx context.Context, l *Loan) {
	monitoring.RecordLoanClosed()
	if err := s.pub.PublishLoanClosed(ctx, event.LoanClosedEvent{Timestamp: time.Now(), Payload: newLoanEventPayload(l)}); err != nil {
		s.logger.ErrorContext(ctx, "Loan closed, but FAILED to publish event", slog.Int64("loanID", l.ID), slog.Any("error", err))
	}
}
