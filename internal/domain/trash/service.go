package trash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/infrastructure/monitoring"
	"welfare-ledger/internal/pkg/apperrors"
)

type Service interface {
	TrashCustomer(ctx context.Context, customerID int64) error
	TrashLoan(ctx context.Context, loanID int64) error
	TrashInstallment(ctx context.Context, installmentID int64) error
	TrashSubscription(ctx context.Context, subscriptionID int64) error
	TrashDataEntry(ctx context.Context, entryID int64) error
	List(ctx context.Context, kind Kind) ([]Item, error)
	Restore(ctx context.Context, kind Kind, id int64) error
	Purge(ctx context.Context, kind Kind, id int64) error
	PurgeExpired(ctx context.Context, before time.Time) (map[Kind]int64, error)
}

type trashService struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

func NewTrashService(repo Repository, logger *slog.Logger) Service {
	return &trashService{
		repo:   repo,
		now:    time.Now,
		logger: logger.With(slog.String("component", "trashService")),
	}
}

func (s *trashService) TrashCustomer(ctx context.Context, customerID int64) error {
	return s.trash(ctx, KindCustomer, customerID)
}

func (s *trashService) TrashLoan(ctx context.Context, loanID int64) error {
	return s.trash(ctx, KindLoan, loanID)
}

func (s *trashService) TrashInstallment(ctx context.Context, installmentID int64) error {
	return s.trash(ctx, KindInstallment, installmentID)
}

func (s *trashService) TrashSubscription(ctx context.Context, subscriptionID int64) error {
	return s.trash(ctx, KindSubscription, subscriptionID)
}

func (s *trashService) TrashDataEntry(ctx context.Context, entryID int64) error {
	return s.trash(ctx, KindDataEntry, entryID)
}

func (s *trashService) trash(ctx context.Context, kind Kind, id int64) error {
	logCtx := s.logger.With(slog.String("kind", string(kind)), slog.Int64("id", id))

	if err := s.repo.Trash(ctx, kind, id, s.now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Nothing to trash")
			return fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, kind, id)
		}
		logCtx.ErrorContext(ctx, "Failed to move row to trash", slog.Any("error", err))
		return fmt.Errorf("failed to trash %s %d: %w", kind, id, err)
	}

	logCtx.InfoContext(ctx, "Moved to trash")
	return nil
}

func (s *trashService) List(ctx context.Context, kind Kind) ([]Item, error) {
	items, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list trashed %s: %w", kind, err)
	}
	return items, nil
}

func (s *trashService) Restore(ctx context.Context, kind Kind, id int64) error {
	logCtx := s.logger.With(slog.String("kind", string(kind)), slog.Int64("id", id))

	if err := s.repo.Restore(ctx, kind, id); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("%w: trashed %s %d", apperrors.ErrNotFound, kind, id)
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrPaymentExceedsBalance):
			logCtx.WarnContext(ctx, "Restore refused", slog.Any("error", err))
			return err
		}
		logCtx.ErrorContext(ctx, "Failed to restore from trash", slog.Any("error", err))
		return fmt.Errorf("failed to restore %s %d: %w", kind, id, err)
	}

	logCtx.InfoContext(ctx, "Restored from trash")
	return nil
}

func (s *trashService) Purge(ctx context.Context, kind Kind, id int64) error {
	count, err := s.repo.Purge(ctx, kind, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: trashed %s %d", apperrors.ErrNotFound, kind, id)
		}
		return fmt.Errorf("failed to purge %s %d: %w", kind, id, err)
	}

	monitoring.RecordTrashPurged(string(kind), count)
	s.logger.InfoContext(ctx, "Purged from trash", slog.String("kind", string(kind)), slog.Int64("id", id))
	return nil
}

func (s *trashService) PurgeExpired(ctx context.Context, before time.Time) (map[Kind]int64, error) {
	purged := make(map[Kind]int64, len(Kinds))
	for _, kind := range Kinds {
		if err := ctx.Err(); err != nil {
			return purged, err
		}
		count, err := s.repo.PurgeBefore(ctx, kind, before)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to purge expired trash", slog.String("kind", string(kind)), slog.Any("error", err))
			return purged, fmt.Errorf("failed to purge expired %s: %w", kind, err)
		}
		purged[kind] = count
		if count > 0 {
			monitoring.RecordTrashPurged(string(kind), count)
		}
	}

	s.logger.InfoContext(ctx, "Expired trash purged", slog.Time("before", before), slog.Any("purged", purged))
	return purged, nil
}
