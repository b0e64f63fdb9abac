package money

import (
	"fmt"

	"welfare-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// Scale matches the NUMERIC(14,2) columns every amount is stored in.
const Scale = 2

var maxAmount = decimal.RequireFromString("999999999999.99")

// Validate rejects amounts the database would round or refuse, so the value checked
// against balances is exactly the value stored.
func Validate(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(Scale)) {
		return apperrors.NewValidationError(field, fmt.Sprintf("%s has more than %d decimal places", amount.String(), Scale))
	}
	if amount.Abs().GreaterThan(maxAmount) {
		return apperrors.NewValidationError(field, fmt.Sprintf("%s exceeds the largest supported amount", amount.String()))
	}
	return nil
}
