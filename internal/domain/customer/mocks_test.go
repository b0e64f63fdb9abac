package customer

import (
	"context"

	"welfare-ledger/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, cust *Customer) error {
	args := m.Called(ctx, cust)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *MockRepository) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, search string) ([]*Customer, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Customer), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, cust *Customer) error {
	args := m.Called(ctx, cust)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, ev event.CustomerCreatedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, ev event.CustomerUpdatedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockEventPublisher) PublishLoanCreated(ctx context.Context, ev event.LoanCreatedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockEventPublisher) PublishLoanClosed(ctx context.Context, ev event.LoanClosedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockEventPublisher) PublishInstallmentRecorded(ctx context.Context, ev event.InstallmentRecordedEvent) error {
	return m.Called(ctx, ev).Error(0)
}
