package subscription

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"welfare-ledger/internal/pkg/apperrors"
	"welfare-ledger/internal/pkg/money"

	"github.com/shopspring/decimal"
)

const periodLayout = "2006-01"

var periodPattern = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)

type Subscription struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	PaidOn     time.Time       `json:"paidOn"`
	Period     string          `json:"period"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"createdAt"`
	DeletedAt  *time.Time      `json:"deletedAt,omitempty"`
}

type Filter struct {
	CustomerID *int64
	Period     string
}

// NormalizePeriod validates a YYYY-MM period; an empty period falls back to paidOn's month.
func NormalizePeriod(period string, paidOn time.Time) (string, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return paidOn.Format(periodLayout), nil
	}
	if !periodPattern.MatchString(period) {
		return "", apperrors.NewValidationError("period", fmt.Sprintf("period %q must use the YYYY-MM format", period))
	}
	return period, nil
}

func NewSubscription(customerID int64, amount decimal.Decimal, paidOn time.Time, period, note string) (*Subscription, error) {
	if customerID <= 0 {
		return nil, apperrors.NewValidationError("customerId", "customer is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount", "subscription amount must be greater than zero")
	}
	if err := money.Validate("amount", amount); err != nil {
		return nil, err
	}
	if paidOn.IsZero() {
		paidOn = time.Now()
	}
	paidOn = time.Date(paidOn.Year(), paidOn.Month(), paidOn.Day(), 0, 0, 0, 0, time.UTC)

	normalized, err := NormalizePeriod(period, paidOn)
	if err != nil {
		return nil, err
	}

	return &Subscription{
		CustomerID: customerID,
		Amount:     amount.Round(2),
		PaidOn:     paidOn,
		Period:     normalized,
		Note:       strings.TrimSpace(note),
	}, nil
}
