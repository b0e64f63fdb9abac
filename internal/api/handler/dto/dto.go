package dto

import (
	"time"

	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/domain/ledger"
	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/domain/seniority"
	"welfare-ledger/internal/domain/subscription"
)

type ErrorDetail struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

const dateLayout = "2006-01-02"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Account   AccountResponse `json:"account"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type CreateUserRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	CustomerID *int64 `json:"customerId,omitempty"`
}

type ResetPasswordResponse struct {
	AccountID         int64  `json:"accountId"`
	TemporaryPassword string `json:"temporaryPassword"`
}

type AccountResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	CustomerID *int64 `json:"customerId,omitempty"`
}

func NewAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{ID: a.ID, Email: a.Email, Role: string(a.Role), CustomerID: a.CustomerID}
}

type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

type CreateLoanRequest struct {
	CustomerID     int64  `json:"customerId"`
	OriginalAmount string `json:"originalAmount"`
	InterestAmount string `json:"interestAmount"`
	IssuedOn       string `json:"issuedOn"`
	Note           string `json:"note"`
}

// UpdateLoanRequest edits only the fields that are present.
type UpdateLoanRequest struct {
	InterestAmount *string `json:"interestAmount,omitempty"`
	Note           *string `json:"note,omitempty"`
}

type RecordInstallmentRequest struct {
	Amount string `json:"amount"`
	PaidOn string `json:"paidOn"`
	Note   string `json:"note"`
}

type InstallmentResponse struct {
	ID     int64  `json:"id"`
	LoanID int64  `json:"loanId"`
	Amount string `json:"amount"`
	PaidOn string `json:"paidOn"`
	Note   string `json:"note"`
}

func NewInstallmentResponse(i loan.Installment) InstallmentResponse {
	return InstallmentResponse{ID: i.ID, LoanID: i.LoanID, Amount: i.Amount.StringFixed(2), PaidOn: i.PaidOn.Format(dateLayout), Note: i.Note}
}

type LoanResponse struct {
	ID             int64                 `json:"id"`
	CustomerID     int64                 `json:"customerId"`
	OriginalAmount string                `json:"originalAmount"`
	InterestAmount string                `json:"interestAmount"`
	TotalRepayable string                `json:"totalRepayable"`
	PaidAmount     string                `json:"paidAmount"`
	Outstanding    string                `json:"outstanding"`
	Progress       string                `json:"progress"`
	IssuedOn       string                `json:"issuedOn"`
	Status         string                `json:"status"`
	Note           string                `json:"note"`
	Installments   []InstallmentResponse `json:"installments,omitempty"`
}

func NewLoanResponse(l *loan.Loan) LoanResponse {
	resp := LoanResponse{
		ID:             l.ID,
		CustomerID:     l.CustomerID,
		OriginalAmount: l.OriginalAmount.StringFixed(2),
		InterestAmount: l.InterestAmount.StringFixed(2),
		TotalRepayable: l.TotalRepayable().StringFixed(2),
		PaidAmount:     l.PaidAmount.StringFixed(2),
		Outstanding:    l.Outstanding().StringFixed(2),
		Progress:       l.Progress().StringFixed(4),
		IssuedOn:       l.IssuedOn.Format(dateLayout),
		Status:         string(l.Status),
		Note:           l.Note,
	}
	for _, inst := range l.Installments {
		resp.Installments = append(resp.Installments, NewInstallmentResponse(inst))
	}
	return resp
}

type LoanSummaryResponse struct {
	LoanID           int64  `json:"loanId"`
	CustomerID       int64  `json:"customerId"`
	Status           string `json:"status"`
	TotalRepayable   string `json:"totalRepayable"`
	Paid             string `json:"paid"`
	Outstanding      string `json:"outstanding"`
	Progress         string `json:"progress"`
	InstallmentCount int    `json:"installmentCount"`
	LastPaidOn       string `json:"lastPaidOn,omitempty"`
}

func NewLoanSummaryResponse(s *loan.Summary) LoanSummaryResponse {
	resp := LoanSummaryResponse{
		LoanID:           s.LoanID,
		CustomerID:       s.CustomerID,
		Status:           string(s.Status),
		TotalRepayable:   s.TotalRepayable.StringFixed(2),
		Paid:             s.Paid.StringFixed(2),
		Outstanding:      s.Outstanding.StringFixed(2),
		Progress:         s.Progress.StringFixed(4),
		InstallmentCount: s.InstallmentCount,
	}
	if s.LastPaidOn != nil {
		resp.LastPaidOn = s.LastPaidOn.Format(dateLayout)
	}
	return resp
}

type SubscriptionRequest struct {
	CustomerID int64  `json:"customerId"`
	Amount     string `json:"amount"`
	PaidOn     string `json:"paidOn"`
	Period     string `json:"period"`
	Note       string `json:"note"`
}

type SubscriptionResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	Amount     string `json:"amount"`
	PaidOn     string `json:"paidOn"`
	Period     string `json:"period"`
	Note       string `json:"note"`
}

func NewSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{ID: s.ID, CustomerID: s.CustomerID, Amount: s.Amount.StringFixed(2), PaidOn: s.PaidOn.Format(dateLayout), Period: s.Period, Note: s.Note}
}

type DataEntryRequest struct {
	EntryType   string `json:"entryType"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	EntryDate   string `json:"entryDate"`
}

type DataEntryResponse struct {
	ID          int64  `json:"id"`
	EntryType   string `json:"entryType"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	EntryDate   string `json:"entryDate"`
}

func NewDataEntryResponse(e *ledger.DataEntry) DataEntryResponse {
	return DataEntryResponse{ID: e.ID, EntryType: string(e.EntryType), Category: e.Category, Description: e.Description, Amount: e.Amount.StringFixed(2), EntryDate: e.EntryDate.Format(dateLayout)}
}

type SubscriptionTotalResponse struct {
	CustomerID int64  `json:"customerId"`
	Total      string `json:"total"`
}

type BalanceResponse struct {
	Credits string `json:"credits"`
	Debits  string `json:"debits"`
	Net     string `json:"net"`
}

func NewBalanceResponse(b *ledger.Balance) BalanceResponse {
	return BalanceResponse{Credits: b.Credits.StringFixed(2), Debits: b.Debits.StringFixed(2), Net: b.Net.StringFixed(2)}
}

type EnqueueSeniorityRequest struct {
	CustomerID  int64  `json:"customerId"`
	RequestType string `json:"requestType"`
	Note        string `json:"note"`
}

type ReviewSeniorityRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

type EligibilityResponse struct {
	CustomerID int64  `json:"customerId"`
	Eligible   bool   `json:"eligible"`
	BestLoanID *int64 `json:"bestLoanId,omitempty"`
	PaidRatio  string `json:"paidRatio"`
}

func NewEligibilityResponse(e *seniority.Eligibility) EligibilityResponse {
	return EligibilityResponse{CustomerID: e.CustomerID, Eligible: e.Eligible, BestLoanID: e.BestLoanID, PaidRatio: e.PaidRatio.StringFixed(4)}
}

type DeepLinkRequest struct {
	URL string `json:"url"`
}

type DeepLinkResponse struct {
	DeviceID  string `json:"deviceId"`
	RequestID string `json:"requestId"`
}
