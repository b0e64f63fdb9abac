package ledger

import (
	"fmt"
	"strings"
	"time"

	"welfare-ledger/internal/pkg/apperrors"
	"welfare-ledger/internal/pkg/money"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryCredit EntryType = "CREDIT"
	EntryDebit  EntryType = "DEBIT"
)

func ParseEntryType(s string) (EntryType, error) {
	switch t := EntryType(strings.ToUpper(strings.TrimSpace(s))); t {
	case EntryCredit, EntryDebit:
		return t, nil
	default:
		return "", apperrors.NewValidationError("entryType", fmt.Sprintf("entry type %q must be CREDIT or DEBIT", s))
	}
}

// DataEntry is a miscellaneous ledger record that is not tied to a customer.
type DataEntry struct {
	ID          int64           `json:"id"`
	EntryType   EntryType       `json:"entryType"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	EntryDate   time.Time       `json:"entryDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
}

type Filter struct {
	From *time.Time
	To   *time.Time
	Type EntryType
}

type Balance struct {
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
	Net     decimal.Decimal `json:"net"`
}

func NewDataEntry(entryType EntryType, category, description string, amount decimal.Decimal, entryDate time.Time) (*DataEntry, error) {
	if entryType != EntryCredit && entryType != EntryDebit {
		return nil, apperrors.NewValidationError("entryType", "entry type must be CREDIT or DEBIT")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.NewValidationError("category", "category cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if err := money.Validate("amount", amount); err != nil {
		return nil, err
	}
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	return &DataEntry{
		EntryType:   entryType,
		Category:    category,
		Description: strings.TrimSpace(description),
		Amount:      amount.Round(2),
		EntryDate:   time.Date(entryDate.Year(), entryDate.Month(), entryDate.Day(), 0, 0, 0, 0, time.UTC),
	}, nil
}
