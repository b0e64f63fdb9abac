package handler

import (
	"log/slog"
	"net/http"

	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/domain/trash"

	"github.com/shopspring/decimal"
)

type LoanHandler struct {
	service loan.LoanService
	trash   trash.Service
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, t trash.Service, l *slog.Logger) *LoanHandler {
	if s == nil || t == nil {
		panic("loan handler dependencies cannot be nil")
	}
	return &LoanHandler{service: s, trash: t, logger: l.With("component", "LoanHandler")}
}

// loadOwnedLoan fetches a loan the caller may see; other customers' loans look missing.
func (h *LoanHandler) loadOwnedLoan(r *http.Request) (*loan.Loan, error) {
	loanID, err := idParam(r, "loanID")
	if err != nil {
		return nil, err
	}
	l, err := h.service.GetLoan(r.Context(), loanID)
	if err != nil {
		return nil, err
	}
	if err := ownedBy(r, l.CustomerID, "loan", loanID); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateLoan handles POST /loans
// @Summary Issue a loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.CreateLoanRequest true "Loan"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /loans [post]
// @Security BearerAuth
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	original, err := parseAmount("originalAmount", req.OriginalAmount)
	if err != nil {
		respondError(w, err)
		return
	}
	interest := decimal.Zero
	if req.InterestAmount != "" {
		if interest, err = parseAmount("interestAmount", req.InterestAmount); err != nil {
			respondError(w, err)
			return
		}
	}
	issuedOn, err := parseDate("issuedOn", req.IssuedOn)
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateLoan(r.Context(), req.CustomerID, original, interest, issuedOn, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewLoanResponse(created))
}

// ListLoans handles GET /loans
// @Summary List loans
// @Description Scoped customers only see their own loans.
// @Tags Loans
// @Produce json
// @Param customerId query int false "Customer filter (admins only)"
// @Param status query string false "ACTIVE or CLOSED"
// @Success 200 {array} dto.LoanResponse
// @Router /loans [get]
// @Security BearerAuth
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := loan.Filter{Status: loan.Status(q.Get("status"))}

	if p := principal(r); !p.IsAdmin() {
		if p.CustomerID == nil {
			respondJSON(w, http.StatusOK, []dto.LoanResponse{})
			return
		}
		filter.CustomerID = p.CustomerID
	} else if raw := q.Get("customerId"); raw != "" {
		id, err := parseQueryID("customerId", raw)
		if err != nil {
			respondError(w, err)
			return
		}
		filter.CustomerID = &id
	}

	loans, err := h.service.ListLoans(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	resp := make([]dto.LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = dto.NewLoanResponse(l)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetLoan handles GET /loans/{loanID}
// @Summary Get a loan with its installments
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /loans/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	l, err := h.loadOwnedLoan(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewLoanResponse(l))
}

// Summary handles GET /loans/{loanID}/summary
// @Summary Repayment progress of a loan
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID"
// @Success 200 {object} dto.LoanSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /loans/{loanID}/summary [get]
// @Security BearerAuth
func (h *LoanHandler) Summary(w http.ResponseWriter, r *http.Request) {
	loanID, err := idParam(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}
	summary, err := h.service.Summary(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := ownedBy(r, summary.CustomerID, "loan", loanID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewLoanSummaryResponse(summary))
}

// UpdateLoan handles PUT /loans/{loanID}
// @Summary Edit interest or note
// @Description Interest may not drop below what keeps the paid amount within the total.
// @Tags Loans
// @Accept json
// @Produce json
// @Param loanID path int true "Loan ID"
// @Param request body dto.UpdateLoanRequest true "Fields to change"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /loans/{loanID} [put]
// @Security BearerAuth
func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := idParam(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req dto.UpdateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	var interest *decimal.Decimal
	if req.InterestAmount != nil {
		v, err := parseAmount("interestAmount", *req.InterestAmount)
		if err != nil {
			respondError(w, err)
			return
		}
		interest = &v
	}

	updated, err := h.service.UpdateLoan(r.Context(), loanID, req.Note, interest)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewLoanResponse(updated))
}

// DeleteLoan handles DELETE /loans/{loanID}
// @Summary Move a loan and its installments to the trash
// @Tags Loans
// @Param loanID path int true "Loan ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /loans/{loanID} [delete]
// @Security BearerAuth
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := idParam(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.trash.TrashLoan(r.Context(), loanID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordInstallment handles POST /loans/{loanID}/installments
// @Summary Record an installment
// @Description Rejected when the cumulative paid amount would exceed original plus interest. The loan closes when fully paid.
// @Tags Loans
// @Accept json
// @Produce json
// @Param loanID path int true "Loan ID"
// @Param request body dto.RecordInstallmentRequest true "Installment"
// @Success 201 {object} dto.InstallmentResponse
// @Failure 400 {object} dto.ErrorResponse "Amount exceeds the remaining balance"
// @Failure 404 {object} dto.ErrorResponse
// @Router /loans/{loanID}/installments [post]
// @Security BearerAuth
func (h *LoanHandler) RecordInstallment(w http.ResponseWriter, r *http.Request) {
	loanID, err := idParam(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req dto.RecordInstallmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	paidOn, err := parseDate("paidOn", req.PaidOn)
	if err != nil {
		respondError(w, err)
		return
	}

	inst, err := h.service.RecordInstallment(r.Context(), loanID, amount, paidOn, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewInstallmentResponse(*inst))
}

// ListInstallments handles GET /loans/{loanID}/installments
// @Summary List installments of a loan
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID"
// @Success 200 {array} dto.InstallmentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /loans/{loanID}/installments [get]
// @Security BearerAuth
func (h *LoanHandler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	l, err := h.loadOwnedLoan(r)
	if err != nil {
		respondError(w, err)
		return
	}
	resp := make([]dto.InstallmentResponse, len(l.Installments))
	for i, inst := range l.Installments {
		resp[i] = dto.NewInstallmentResponse(inst)
	}
	respondJSON(w, http.StatusOK, resp)
}

// DeleteInstallment handles DELETE /installments/{installmentID}
// @Summary Move an installment to the trash
// @Description The loan status is recomputed from the remaining installments.
// @Tags Loans
// @Param installmentID path int true "Installment ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /installments/{installmentID} [delete]
// @Security BearerAuth
func (h *LoanHandler) DeleteInstallment(w http.ResponseWriter, r *http.Request) {
	installmentID, err := idParam(r, "installmentID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.trash.TrashInstallment(r.Context(), installmentID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
