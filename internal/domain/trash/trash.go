package trash

import (
	"fmt"
	"time"

	"welfare-ledger/internal/pkg/apperrors"
)

type Kind string

const (
	KindCustomer     Kind = "customers"
	KindLoan         Kind = "loans"
	KindInstallment  Kind = "installments"
	KindSubscription Kind = "subscriptions"
	KindDataEntry    Kind = "data-entries"
)

// Kinds lists every trashable kind in purge order, children before parents.
var Kinds = []Kind{KindInstallment, KindSubscription, KindDataEntry, KindLoan, KindCustomer}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", apperrors.NewValidationError("kind", fmt.Sprintf("unknown trash kind %q", s))
}

// Item is one soft-deleted row as shown in the trash view.
type Item struct {
	Kind       Kind      `json:"kind"`
	ID         int64     `json:"id"`
	Label      string    `json:"label"`
	CustomerID *int64    `json:"customerId,omitempty"`
	DeletedAt  time.Time `json:"deletedAt"`
}
