package trash

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"welfare-ledger/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Trash(ctx context.Context, kind Kind, id int64, at time.Time) error {
	return m.Called(ctx, kind, id, at).Error(0)
}

func (m *MockRepository) List(ctx context.Context, kind Kind) ([]Item, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockRepository) Restore(ctx context.Context, kind Kind, id int64) error {
	return m.Called(ctx, kind, id).Error(0)
}

func (m *MockRepository) Purge(ctx context.Context, kind Kind, id int64) (int64, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) PurgeBefore(ctx context.Context, kind Kind, before time.Time) (int64, error) {
	args := m.Called(ctx, kind, before)
	return args.Get(0).(int64), args.Error(1)
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newService() (*MockRepository, *trashService) {
	repo := new(MockRepository)
	svc := NewTrashService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))).(*trashService)
	svc.now = func() time.Time { return fixedNow }
	return repo, svc
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("data-entries")
	require.NoError(t, err)
	assert.Equal(t, KindDataEntry, k)

	_, err = ParseKind("accounts")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTrashService_TrashCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Stamps cascade with a single timestamp", func(t *testing.T) {
		repo, svc := newService()
		repo.On("Trash", ctx, KindCustomer, int64(3), fixedNow).Return(nil).Once()

		require.NoError(t, svc.TrashCustomer(ctx, 3))
		repo.AssertExpectations(t)
	})

	t.Run("Missing customer", func(t *testing.T) {
		repo, svc := newService()
		repo.On("Trash", ctx, KindCustomer, int64(4), fixedNow).Return(apperrors.ErrNotFound).Once()

		err := svc.TrashCustomer(ctx, 4)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestTrashService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Restoring installment over balance is refused", func(t *testing.T) {
		repo, svc := newService()
		repo.On("Restore", ctx, KindInstallment, int64(9)).Return(apperrors.ErrPaymentExceedsBalance).Once()

		err := svc.Restore(ctx, KindInstallment, 9)
		assert.ErrorIs(t, err, apperrors.ErrPaymentExceedsBalance)
	})

	t.Run("Restoring child of trashed parent conflicts", func(t *testing.T) {
		repo, svc := newService()
		repo.On("Restore", ctx, KindLoan, int64(2)).Return(apperrors.ErrConflict).Once()

		err := svc.Restore(ctx, KindLoan, 2)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Success", func(t *testing.T) {
		repo, svc := newService()
		repo.On("Restore", ctx, KindCustomer, int64(3)).Return(nil).Once()

		assert.NoError(t, svc.Restore(ctx, KindCustomer, 3))
	})
}

func TestTrashService_Purge(t *testing.T) {
	ctx := context.Background()
	repo, svc := newService()
	repo.On("Purge", ctx, KindCustomer, int64(3)).Return(int64(1), nil).Once()
	repo.On("Purge", ctx, KindLoan, int64(8)).Return(int64(0), apperrors.ErrNotFound).Once()

	assert.NoError(t, svc.Purge(ctx, KindCustomer, 3))
	assert.ErrorIs(t, svc.Purge(ctx, KindLoan, 8), apperrors.ErrNotFound)
}

func TestTrashService_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	before := fixedNow.AddDate(0, 0, -30)

	t.Run("Purges every kind children first", func(t *testing.T) {
		repo, svc := newService()
		var order []Kind
		for _, kind := range Kinds {
			k := kind
			repo.On("PurgeBefore", ctx, k, before).Run(func(mock.Arguments) { order = append(order, k) }).Return(int64(2), nil).Once()
		}

		purged, err := svc.PurgeExpired(ctx, before)

		require.NoError(t, err)
		assert.Equal(t, Kinds, order)
		assert.Equal(t, int64(2), purged[KindCustomer])
		repo.AssertExpectations(t)
	})

	t.Run("Stops on first failure", func(t *testing.T) {
		repo, svc := newService()
		repo.On("PurgeBefore", ctx, KindInstallment, before).Return(int64(0), errors.New("timeout")).Once()

		_, err := svc.PurgeExpired(ctx, before)

		assert.Error(t, err)
		repo.AssertNumberOfCalls(t, "PurgeBefore", 1)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		_, svc := newService()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.PurgeExpired(cctx, before)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
