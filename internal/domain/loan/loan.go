package loan

import (
	"fmt"
	"strings"
	"time"

	"welfare-ledger/internal/pkg/apperrors"
	"welfare-ledger/internal/pkg/money"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusClosed
}

type Loan struct {
	ID             int64           `json:"id"`
	CustomerID     int64           `json:"customerId"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	InterestAmount decimal.Decimal `json:"interestAmount"`
	IssuedOn       time.Time       `json:"issuedOn"`
	Status         Status          `json:"status"`
	Note           string          `json:"note"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      *time.Time      `json:"deletedAt,omitempty"`

	// PaidAmount is the sum of the loan's live installments, filled by the repository.
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Installments []Installment   `json:"installments,omitempty"`
}

type Installment struct {
	ID        int64           `json:"id"`
	LoanID    int64           `json:"loanId"`
	Amount    decimal.Decimal `json:"amount"`
	PaidOn    time.Time       `json:"paidOn"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
	DeletedAt *time.Time      `json:"deletedAt,omitempty"`
}

type Filter struct {
	CustomerID *int64
	Status     Status
}

type Summary struct {
	LoanID           int64           `json:"loanId"`
	CustomerID       int64           `json:"customerId"`
	Status           Status          `json:"status"`
	TotalRepayable   decimal.Decimal `json:"totalRepayable"`
	Paid             decimal.Decimal `json:"paid"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	Progress         decimal.Decimal `json:"progress"`
	InstallmentCount int             `json:"installmentCount"`
	LastPaidOn       *time.Time      `json:"lastPaidOn,omitempty"`
}

func NewLoan(customerID int64, original, interest decimal.Decimal, issuedOn time.Time, note string) (*Loan, error) {
	if customerID <= 0 {
		return nil, apperrors.NewValidationError("customerId", "customer is required")
	}
	if !original.IsPositive() {
		return nil, apperrors.NewValidationError("originalAmount", "original amount must be greater than zero")
	}
	if err := money.Validate("originalAmount", original); err != nil {
		return nil, err
	}
	if interest.IsNegative() {
		return nil, apperrors.NewValidationError("interestAmount", "interest amount cannot be negative")
	}
	if err := money.Validate("interestAmount", interest); err != nil {
		return nil, err
	}
	if issuedOn.IsZero() {
		issuedOn = time.Now()
	}

	return &Loan{
		CustomerID:     customerID,
		OriginalAmount: original.Round(2),
		InterestAmount: interest.Round(2),
		IssuedOn:       truncateToDay(issuedOn),
		Status:         StatusActive,
		Note:           strings.TrimSpace(note),
		PaidAmount:     decimal.Zero,
	}, nil
}

func (l *Loan) TotalRepayable() decimal.Decimal {
	return l.OriginalAmount.Add(l.InterestAmount)
}

func (l *Loan) Outstanding() decimal.Decimal {
	outstanding := l.TotalRepayable().Sub(l.PaidAmount)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// Progress is the paid share of the total repayable amount, between 0 and 1.
func (l *Loan) Progress() decimal.Decimal {
	total := l.TotalRepayable()
	if !total.IsPositive() {
		return decimal.Zero
	}
	ratio := l.PaidAmount.DivRound(total, 4)
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio
}

// StatusFor returns the status a loan must carry when paid equals the given amount.
func (l *Loan) StatusFor(paid decimal.Decimal) Status {
	if paid.GreaterThanOrEqual(l.TotalRepayable()) {
		return StatusClosed
	}
	return StatusActive
}

// ApplyPayment checks that amount fits into the outstanding balance and, if so,
// adds it to PaidAmount and reports whether the loan is now fully repaid.
func (l *Loan) ApplyPayment(amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, apperrors.NewValidationError("amount", "installment amount must be greater than zero")
	}
	if err := money.Validate("amount", amount); err != nil {
		return false, err
	}
	outstanding := l.Outstanding()
	if amount.GreaterThan(outstanding) {
		return false, fmt.Errorf("%w: %w", apperrors.ErrPaymentExceedsBalance, &apperrors.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("installment of %s exceeds the remaining balance of %s", amount.StringFixed(2), outstanding.StringFixed(2)),
		})
	}

	l.PaidAmount = l.PaidAmount.Add(amount)
	l.Status = l.StatusFor(l.PaidAmount)
	return l.Status == StatusClosed, nil
}

// ChangeInterest updates the interest portion; the new total may not drop below what was already paid.
func (l *Loan) ChangeInterest(interest decimal.Decimal) error {
	if interest.IsNegative() {
		return apperrors.NewValidationError("interestAmount", "interest amount cannot be negative")
	}
	if err := money.Validate("interestAmount", interest); err != nil {
		return err
	}
	newTotal := l.OriginalAmount.Add(interest)
	if newTotal.LessThan(l.PaidAmount) {
		return apperrors.NewValidationError("interestAmount",
			fmt.Sprintf("total repayable %s would be below the %s already paid", newTotal.StringFixed(2), l.PaidAmount.StringFixed(2)))
	}
	l.InterestAmount = interest.Round(2)
	l.Status = l.StatusFor(l.PaidAmount)
	return nil
}

func (l *Loan) Summary() Summary {
	summary := Summary{
		LoanID:           l.ID,
		CustomerID:       l.CustomerID,
		Status:           l.Status,
		TotalRepayable:   l.TotalRepayable(),
		Paid:             l.PaidAmount,
		Outstanding:      l.Outstanding(),
		Progress:         l.Progress(),
		InstallmentCount: len(l.Installments),
	}
	for i := range l.Installments {
		paidOn := l.Installments[i].PaidOn
		if summary.LastPaidOn == nil || paidOn.After(*summary.LastPaidOn) {
			summary.LastPaidOn = &paidOn
		}
	}
	return summary
}

func NewInstallment(loanID int64, amount decimal.Decimal, paidOn time.Time, note string) *Installment {
	if paidOn.IsZero() {
		paidOn = time.Now()
	}
	return &Installment{
		LoanID: loanID,
		Amount: amount.Round(2),
		PaidOn: truncateToDay(paidOn),
		Note:   strings.TrimSpace(note),
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
