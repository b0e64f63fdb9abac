package event

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerEventPayload struct {
	CustomerID int64     `json:"customerId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type LoanEventPayload struct {
	LoanID         int64           `json:"loanId"`
	CustomerID     int64           `json:"customerId"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	InterestAmount decimal.Decimal `json:"interestAmount"`
	TotalRepayable decimal.Decimal `json:"totalRepayable"`
	Status         string          `json:"status"`
	IssuedOn       time.Time       `json:"issuedOn"`
}

type LoanCreatedEvent struct {
	Timestamp time.Time        `json:"timestamp"`
	Payload   LoanEventPayload `json:"payload"`
}

type LoanClosedEvent struct {
	Timestamp time.Time        `json:"timestamp"`
	Payload   LoanEventPayload `json:"payload"`
}

type InstallmentRecordedEvent struct {
	Timestamp     time.Time       `json:"timestamp"`
	InstallmentID int64           `json:"installmentId"`
	LoanID        int64           `json:"loanId"`
	CustomerID    int64           `json:"customerId"`
	Amount        decimal.Decimal `json:"amount"`
	PaidOn        time.Time       `json:"paidOn"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}
