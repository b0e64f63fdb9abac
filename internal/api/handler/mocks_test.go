package handler_test

import (
	"context"
	"io"
	"time"

	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/domain/ledger"
	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/domain/seniority"
	"welfare-ledger/internal/domain/subscription"
	"welfare-ledger/internal/domain/trash"
	"welfare-ledger/internal/export"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct{ mock.Mock }

func (m *MockCustomerService) CreateCustomer(ctx context.Context, name, phone, address string) (*customer.Customer, error) {
	ret := m.Called(ctx, name, phone, address)
	c, _ := ret.Get(0).(*customer.Customer)
	return c, ret.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := m.Called(ctx, customerID)
	c, _ := ret.Get(0).(*customer.Customer)
	return c, ret.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, search string) ([]*customer.Customer, error) {
	ret := m.Called(ctx, search)
	cs, _ := ret.Get(0).([]*customer.Customer)
	return cs, ret.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID int64, name, phone, address string) (*customer.Customer, error) {
	ret := m.Called(ctx, customerID, name, phone, address)
	c, _ := ret.Get(0).(*customer.Customer)
	return c, ret.Error(1)
}

func (m *MockCustomerService) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	ret := m.Called(ctx, phone)
	c, _ := ret.Get(0).(*customer.Customer)
	return c, ret.Error(1)
}

type MockLoanService struct{ mock.Mock }

func (m *MockLoanService) CreateLoan(ctx context.Context, customerID int64, original, interest decimal.Decimal, issuedOn time.Time, note string) (*loan.Loan, error) {
	ret := m.Called(ctx, customerID, original, interest, issuedOn, note)
	l, _ := ret.Get(0).(*loan.Loan)
	return l, ret.Error(1)
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID int64) (*loan.Loan, error) {
	ret := m.Called(ctx, loanID)
	l, _ := ret.Get(0).(*loan.Loan)
	return l, ret.Error(1)
}

func (m *MockLoanService) ListLoans(ctx context.Context, filter loan.Filter) ([]*loan.Loan, error) {
	ret := m.Called(ctx, filter)
	ls, _ := ret.Get(0).([]*loan.Loan)
	return ls, ret.Error(1)
}

func (m *MockLoanService) UpdateLoan(ctx context.Context, loanID int64, note *string, interest *decimal.Decimal) (*loan.Loan, error) {
	ret := m.Called(ctx, loanID, note, interest)
	l, _ := ret.Get(0).(*loan.Loan)
	return l, ret.Error(1)
}

func (m *MockLoanService) RecordInstallment(ctx context.Context, loanID int64, amount decimal.Decimal, paidOn time.Time, note string) (*loan.Installment, error) {
	ret := m.Called(ctx, loanID, amount, paidOn, note)
	i, _ := ret.Get(0).(*loan.Installment)
	return i, ret.Error(1)
}

func (m *MockLoanService) ListInstallments(ctx context.Context, loanID int64) ([]loan.Installment, error) {
	ret := m.Called(ctx, loanID)
	is, _ := ret.Get(0).([]loan.Installment)
	return is, ret.Error(1)
}

func (m *MockLoanService) Summary(ctx context.Context, loanID int64) (*loan.Summary, error) {
	ret := m.Called(ctx, loanID)
	s, _ := ret.Get(0).(*loan.Summary)
	return s, ret.Error(1)
}

type MockTrashService struct{ mock.Mock }

func (m *MockTrashService) TrashCustomer(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrashService) TrashLoan(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrashService) TrashInstallment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrashService) TrashSubscription(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrashService) TrashDataEntry(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrashService) List(ctx context.Context, kind trash.Kind) ([]trash.Item, error) {
	ret := m.Called(ctx, kind)
	items, _ := ret.Get(0).([]trash.Item)
	return items, ret.Error(1)
}

func (m *MockTrashService) Restore(ctx context.Context, kind trash.Kind, id int64) error {
	return m.Called(ctx, kind, id).Error(0)
}

func (m *MockTrashService) Purge(ctx context.Context, kind trash.Kind, id int64) error {
	return m.Called(ctx, kind, id).Error(0)
}

func (m *MockTrashService) PurgeExpired(ctx context.Context, before time.Time) (map[trash.Kind]int64, error) {
	ret := m.Called(ctx, before)
	counts, _ := ret.Get(0).(map[trash.Kind]int64)
	return counts, ret.Error(1)
}

type MockSubscriptionService struct{ mock.Mock }

func (m *MockSubscriptionService) RecordSubscription(ctx context.Context, customerID int64, amount decimal.Decimal, paidOn time.Time, period, note string) (*subscription.Subscription, error) {
	ret := m.Called(ctx, customerID, amount, paidOn, period, note)
	s, _ := ret.Get(0).(*subscription.Subscription)
	return s, ret.Error(1)
}

func (m *MockSubscriptionService) GetSubscription(ctx context.Context, id int64) (*subscription.Subscription, error) {
	ret := m.Called(ctx, id)
	s, _ := ret.Get(0).(*subscription.Subscription)
	return s, ret.Error(1)
}

func (m *MockSubscriptionService) ListSubscriptions(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, error) {
	ret := m.Called(ctx, filter)
	ss, _ := ret.Get(0).([]*subscription.Subscription)
	return ss, ret.Error(1)
}

func (m *MockSubscriptionService) TotalForCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	ret := m.Called(ctx, customerID)
	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

type MockLedgerService struct{ mock.Mock }

func (m *MockLedgerService) AddEntry(ctx context.Context, entryType ledger.EntryType, category, description string, amount decimal.Decimal, entryDate time.Time) (*ledger.DataEntry, error) {
	ret := m.Called(ctx, entryType, category, description, amount, entryDate)
	e, _ := ret.Get(0).(*ledger.DataEntry)
	return e, ret.Error(1)
}

func (m *MockLedgerService) GetEntry(ctx context.Context, id int64) (*ledger.DataEntry, error) {
	ret := m.Called(ctx, id)
	e, _ := ret.Get(0).(*ledger.DataEntry)
	return e, ret.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, filter ledger.Filter) ([]*ledger.DataEntry, error) {
	ret := m.Called(ctx, filter)
	es, _ := ret.Get(0).([]*ledger.DataEntry)
	return es, ret.Error(1)
}

func (m *MockLedgerService) Balance(ctx context.Context, from, to *time.Time) (*ledger.Balance, error) {
	ret := m.Called(ctx, from, to)
	b, _ := ret.Get(0).(*ledger.Balance)
	return b, ret.Error(1)
}

type MockSeniorityService struct{ mock.Mock }

func (m *MockSeniorityService) Eligibility(ctx context.Context, customerID int64) (*seniority.Eligibility, error) {
	ret := m.Called(ctx, customerID)
	e, _ := ret.Get(0).(*seniority.Eligibility)
	return e, ret.Error(1)
}

func (m *MockSeniorityService) Enqueue(ctx context.Context, customerID int64, requestType seniority.RequestType, note string) (*seniority.Entry, error) {
	ret := m.Called(ctx, customerID, requestType, note)
	e, _ := ret.Get(0).(*seniority.Entry)
	return e, ret.Error(1)
}

func (m *MockSeniorityService) ListEntries(ctx context.Context, status seniority.Status) ([]*seniority.Entry, error) {
	ret := m.Called(ctx, status)
	es, _ := ret.Get(0).([]*seniority.Entry)
	return es, ret.Error(1)
}

func (m *MockSeniorityService) Review(ctx context.Context, entryID int64, approve bool, note string) (*seniority.Entry, error) {
	ret := m.Called(ctx, entryID, approve, note)
	e, _ := ret.Get(0).(*seniority.Entry)
	return e, ret.Error(1)
}

func (m *MockSeniorityService) Remove(ctx context.Context, entryID int64) error {
	return m.Called(ctx, entryID).Error(0)
}

type MockExportService struct{ mock.Mock }

func (m *MockExportService) Export(ctx context.Context, dataset export.Dataset, format export.Format, w io.Writer) error {
	ret := m.Called(ctx, dataset, format, w)
	if body, ok := ret.Get(0).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return ret.Error(1)
}

func (m *MockExportService) LoanStatement(ctx context.Context, loanID int64, w io.Writer) error {
	ret := m.Called(ctx, loanID, w)
	if body, ok := ret.Get(0).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return ret.Error(1)
}

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*account.LoginResult, error) {
	ret := m.Called(ctx, email, password)
	r, _ := ret.Get(0).(*account.LoginResult)
	return r, ret.Error(1)
}

func (m *MockAccountService) CreateUser(ctx context.Context, email, password string, role account.Role, customerID *int64) (*account.Account, error) {
	ret := m.Called(ctx, email, password, role, customerID)
	a, _ := ret.Get(0).(*account.Account)
	return a, ret.Error(1)
}

func (m *MockAccountService) ResetPassword(ctx context.Context, accountID int64) (string, error) {
	ret := m.Called(ctx, accountID)
	return ret.String(0), ret.Error(1)
}

func (m *MockAccountService) ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error {
	return m.Called(ctx, accountID, oldPassword, newPassword).Error(0)
}

func (m *MockAccountService) Me(ctx context.Context, accountID int64) (*account.Account, error) {
	ret := m.Called(ctx, accountID)
	a, _ := ret.Get(0).(*account.Account)
	return a, ret.Error(1)
}

func (m *MockAccountService) SeedAdmin(ctx context.Context, email, password string) (*account.Account, error) {
	ret := m.Called(ctx, email, password)
	a, _ := ret.Get(0).(*account.Account)
	return a, ret.Error(1)
}

type MockDeepLinkDeliverer struct{ mock.Mock }

func (m *MockDeepLinkDeliverer) DeliverDeepLink(ctx context.Context, deviceID, rawURL string) (string, error) {
	ret := m.Called(ctx, deviceID, rawURL)
	return ret.String(0), ret.Error(1)
}
