package loan

import (
	"testing"
	"time"

	"welfare-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewLoan(t *testing.T) {
	issued := time.Date(2026, 3, 14, 15, 4, 5, 0, time.UTC)
	l, err := NewLoan(4, d("10000"), d("1200"), issued, "  festival advance ")
	require.NoError(t, err)

	assert.Equal(t, int64(4), l.CustomerID)
	assert.True(t, d("11200").Equal(l.TotalRepayable()))
	assert.True(t, d("11200").Equal(l.Outstanding()))
	assert.Equal(t, StatusActive, l.Status)
	assert.Equal(t, "festival advance", l.Note)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), l.IssuedOn)
}

func TestNewLoan_Validation(t *testing.T) {
	tests := []struct {
		name       string
		customerID int64
		original   decimal.Decimal
		interest   decimal.Decimal
		field      string
	}{
		{"missing customer", 0, d("100"), d("0"), "customerId"},
		{"zero original", 1, d("0"), d("0"), "originalAmount"},
		{"negative original", 1, d("-5"), d("0"), "originalAmount"},
		{"negative interest", 1, d("100"), d("-1"), "interestAmount"},
		{"sub-cent original", 1, d("100.004"), d("0"), "originalAmount"},
		{"sub-cent interest", 1, d("100"), d("0.001"), "interestAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoan(tt.customerID, tt.original, tt.interest, time.Now(), "")
			require.ErrorIs(t, err, apperrors.ErrValidation)
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestLoan_ApplyPayment(t *testing.T) {
	t.Run("Partial payment keeps loan active", func(t *testing.T) {
		l := &Loan{OriginalAmount: d("1000"), InterestAmount: d("100"), PaidAmount: d("0"), Status: StatusActive}

		closed, err := l.ApplyPayment(d("500"))

		require.NoError(t, err)
		assert.False(t, closed)
		assert.True(t, d("600").Equal(l.Outstanding()))
		assert.Equal(t, StatusActive, l.Status)
	})

	t.Run("Exact remaining balance closes loan", func(t *testing.T) {
		l := &Loan{OriginalAmount: d("1000"), InterestAmount: d("100"), PaidAmount: d("600"), Status: StatusActive}

		closed, err := l.ApplyPayment(d("500"))

		require.NoError(t, err)
		assert.True(t, closed)
		assert.Equal(t, StatusClosed, l.Status)
		assert.True(t, l.Outstanding().IsZero())
	})

	t.Run("Overpayment is rejected with remaining balance", func(t *testing.T) {
		l := &Loan{OriginalAmount: d("1000"), InterestAmount: d("100"), PaidAmount: d("600"), Status: StatusActive}

		closed, err := l.ApplyPayment(d("500.01"))

		assert.False(t, closed)
		assert.ErrorIs(t, err, apperrors.ErrPaymentExceedsBalance)
		assert.Contains(t, err.Error(), "500.00")
		assert.Equal(t, "installment of 500.01 exceeds the remaining balance of 500.00", apperrors.UserMessage(err))
		assert.True(t, d("600").Equal(l.PaidAmount), "rejected payment must not change paid amount")
	})

	t.Run("Payment on closed loan is rejected", func(t *testing.T) {
		l := &Loan{OriginalAmount: d("1000"), InterestAmount: d("0"), PaidAmount: d("1000"), Status: StatusClosed}

		_, err := l.ApplyPayment(d("1"))

		assert.ErrorIs(t, err, apperrors.ErrPaymentExceedsBalance)
	})

	t.Run("Non-positive amount", func(t *testing.T) {
		l := &Loan{OriginalAmount: d("1000"), InterestAmount: d("0"), PaidAmount: d("0")}

		_, err := l.ApplyPayment(d("0"))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.NotErrorIs(t, err, apperrors.ErrPaymentExceedsBalance)
	})
}

func TestLoan_ApplyPayment_Precision(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"rounds up to the full balance", "99.996"},
		{"just above the balance", "100.004"},
		{"rounds down to zero", "0.001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Loan{OriginalAmount: d("100"), InterestAmount: d("0"), PaidAmount: d("0"), Status: StatusActive}

			closed, err := l.ApplyPayment(d(tt.amount))

			require.ErrorIs(t, err, apperrors.ErrValidation)
			assert.NotErrorIs(t, err, apperrors.ErrPaymentExceedsBalance)
			assert.False(t, closed)
			assert.True(t, l.PaidAmount.IsZero())
			assert.Equal(t, StatusActive, l.Status)
		})
	}

	t.Run("Whole cents settle the balance exactly", func(t *testing.T) {
		l := &Loan{OriginalAmount: d("100"), InterestAmount: d("0"), PaidAmount: d("0.01"), Status: StatusActive}

		closed, err := l.ApplyPayment(d("99.990"))

		require.NoError(t, err)
		assert.True(t, closed)
		assert.Equal(t, StatusClosed, l.Status)
	})
}

func TestLoan_ChangeInterest(t *testing.T) {
	l := &Loan{OriginalAmount: d("1000"), InterestAmount: d("200"), PaidAmount: d("1100"), Status: StatusActive}

	err := l.ChangeInterest(d("50"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.True(t, d("200").Equal(l.InterestAmount))

	require.NoError(t, l.ChangeInterest(d("100")))
	assert.Equal(t, StatusClosed, l.Status)

	require.NoError(t, l.ChangeInterest(d("150")))
	assert.Equal(t, StatusActive, l.Status, "raising interest reopens a closed loan")

	err = l.ChangeInterest(d("100.004"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.True(t, d("150").Equal(l.InterestAmount))
	assert.Equal(t, StatusActive, l.Status)
}

func TestLoan_ProgressAndSummary(t *testing.T) {
	first := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	l := &Loan{
		ID:             3,
		CustomerID:     9,
		OriginalAmount: d("800"),
		InterestAmount: d("200"),
		PaidAmount:     d("800"),
		Status:         StatusActive,
		Installments: []Installment{
			{ID: 1, Amount: d("300"), PaidOn: last},
			{ID: 2, Amount: d("500"), PaidOn: first},
		},
	}

	assert.True(t, d("0.8").Equal(l.Progress()))

	summary := l.Summary()
	assert.Equal(t, int64(3), summary.LoanID)
	assert.True(t, d("1000").Equal(summary.TotalRepayable))
	assert.True(t, d("200").Equal(summary.Outstanding))
	assert.Equal(t, 2, summary.InstallmentCount)
	require.NotNil(t, summary.LastPaidOn)
	assert.Equal(t, last, *summary.LastPaidOn)
}
