package seniority

import (
	"fmt"
	"strings"
	"time"

	"welfare-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type RequestType string

const (
	RequestLoan         RequestType = "LOAN"
	RequestSubscription RequestType = "SUBSCRIPTION"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// EligibilityThreshold is the paid share of a single loan that makes its borrower eligible.
var EligibilityThreshold = decimal.RequireFromString("0.80")

type Entry struct {
	ID           int64       `json:"id"`
	CustomerID   int64       `json:"customerId"`
	CustomerName string      `json:"customerName,omitempty"`
	RequestType  RequestType `json:"requestType"`
	Status       Status      `json:"status"`
	Note         string      `json:"note"`
	RequestedAt  time.Time   `json:"requestedAt"`
	ReviewedAt   *time.Time  `json:"reviewedAt,omitempty"`
}

type Eligibility struct {
	CustomerID int64           `json:"customerId"`
	Eligible   bool            `json:"eligible"`
	BestLoanID *int64          `json:"bestLoanId,omitempty"`
	PaidRatio  decimal.Decimal `json:"paidRatio"`
}

func ParseRequestType(s string) (RequestType, error) {
	switch t := RequestType(strings.ToUpper(strings.TrimSpace(s))); t {
	case RequestLoan, RequestSubscription:
		return t, nil
	default:
		return "", apperrors.NewValidationError("requestType", fmt.Sprintf("request type %q must be LOAN or SUBSCRIPTION", s))
	}
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", apperrors.NewValidationError("status", fmt.Sprintf("unknown seniority status %q", s))
	}
}
