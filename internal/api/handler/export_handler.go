package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/export"

	"github.com/go-chi/chi/v5"
)

type ExportHandler struct {
	service export.Service
	loans   loan.LoanService
	logger  *slog.Logger
	now     func() time.Time
}

func NewExportHandler(s export.Service, loans loan.LoanService, l *slog.Logger) *ExportHandler {
	if s == nil || loans == nil {
		panic("export handler dependencies cannot be nil")
	}
	return &ExportHandler{service: s, loans: loans, logger: l.With("component", "ExportHandler"), now: time.Now}
}

// Export handles GET /exports/{dataset}
// @Summary Download a dataset
// @Tags Exports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param dataset path string true "customers, loans, installments, subscriptions or data-entries"
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /exports/{dataset} [get]
// @Security BearerAuth
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	dataset, err := export.ParseDataset(chi.URLParam(r, "dataset"))
	if err != nil {
		respondError(w, err)
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respondError(w, err)
		return
	}

	// Buffered so a failure halfway through still yields a JSON error.
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), dataset, format, &buf); err != nil {
		h.logger.ErrorContext(r.Context(), "Export failed", "dataset", dataset, "error", err)
		respondError(w, err)
		return
	}
	h.attach(w, format.ContentType(), export.Filename(dataset, format, h.now()), buf.Bytes())
}

// LoanStatement handles GET /loans/{loanID}/statement.pdf
// @Summary Printable loan statement
// @Tags Exports
// @Produce application/pdf
// @Param loanID path int true "Loan ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /loans/{loanID}/statement.pdf [get]
// @Security BearerAuth
func (h *ExportHandler) LoanStatement(w http.ResponseWriter, r *http.Request) {
	loanID, err := idParam(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}
	l, err := h.loans.GetLoan(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := ownedBy(r, l.CustomerID, "loan", loanID); err != nil {
		respondError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.LoanStatement(r.Context(), loanID, &buf); err != nil {
		h.logger.ErrorContext(r.Context(), "Statement rendering failed", "loan_id", loanID, "error", err)
		respondError(w, err)
		return
	}
	name := fmt.Sprintf("loan-%d-statement.pdf", loanID)
	h.attach(w, "application/pdf", name, buf.Bytes())
}

func (h *ExportHandler) attach(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
