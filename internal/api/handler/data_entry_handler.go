package handler

import (
	"log/slog"
	"net/http"

	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/ledger"
	"welfare-ledger/internal/domain/trash"
)

type DataEntryHandler struct {
	service ledger.Service
	trash   trash.Service
	logger  *slog.Logger
}

func NewDataEntryHandler(s ledger.Service, t trash.Service, l *slog.Logger) *DataEntryHandler {
	if s == nil || t == nil {
		panic("data entry handler dependencies cannot be nil")
	}
	return &DataEntryHandler{service: s, trash: t, logger: l.With("component", "DataEntryHandler")}
}

// AddEntry handles POST /data-entries
// @Summary Add a record
// @Tags Data entries
// @Accept json
// @Produce json
// @Param request body dto.DataEntryRequest true "Entry"
// @Success 201 {object} dto.DataEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /data-entries [post]
// @Security BearerAuth
func (h *DataEntryHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.DataEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	entryType, err := ledger.ParseEntryType(req.EntryType)
	if err != nil {
		respondError(w, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	entryDate, err := parseDate("entryDate", req.EntryDate)
	if err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.service.AddEntry(r.Context(), entryType, req.Category, req.Description, amount, entryDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewDataEntryResponse(entry))
}

func (h *DataEntryHandler) dateRange(r *http.Request) (ledger.Filter, error) {
	q := r.URL.Query()
	from, err := parseOptionalDate("from", q.Get("from"))
	if err != nil {
		return ledger.Filter{}, err
	}
	to, err := parseOptionalDate("to", q.Get("to"))
	if err != nil {
		return ledger.Filter{}, err
	}
	filter := ledger.Filter{From: from, To: to}
	if raw := q.Get("type"); raw != "" {
		if filter.Type, err = ledger.ParseEntryType(raw); err != nil {
			return ledger.Filter{}, err
		}
	}
	return filter, nil
}

// ListEntries handles GET /data-entries
// @Summary List records
// @Tags Data entries
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Param type query string false "CREDIT or DEBIT"
// @Success 200 {array} dto.DataEntryResponse
// @Router /data-entries [get]
// @Security BearerAuth
func (h *DataEntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := h.dateRange(r)
	if err != nil {
		respondError(w, err)
		return
	}
	entries, err := h.service.ListEntries(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	resp := make([]dto.DataEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.NewDataEntryResponse(e)
	}
	respondJSON(w, http.StatusOK, resp)
}

// Balance handles GET /data-entries/balance
// @Summary Credit and debit totals
// @Tags Data entries
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} dto.BalanceResponse
// @Router /data-entries/balance [get]
// @Security BearerAuth
func (h *DataEntryHandler) Balance(w http.ResponseWriter, r *http.Request) {
	filter, err := h.dateRange(r)
	if err != nil {
		respondError(w, err)
		return
	}
	balance, err := h.service.Balance(r.Context(), filter.From, filter.To)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewBalanceResponse(balance))
}

// GetEntry handles GET /data-entries/{entryID}
// @Summary Get a record
// @Tags Data entries
// @Produce json
// @Param entryID path int true "Entry ID"
// @Success 200 {object} dto.DataEntryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /data-entries/{entryID} [get]
// @Security BearerAuth
func (h *DataEntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "entryID")
	if err != nil {
		respondError(w, err)
		return
	}
	entry, err := h.service.GetEntry(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewDataEntryResponse(entry))
}

// DeleteEntry handles DELETE /data-entries/{entryID}
// @Summary Move a record to the trash
// @Tags Data entries
// @Param entryID path int true "Entry ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /data-entries/{entryID} [delete]
// @Security BearerAuth
func (h *DataEntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "entryID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.trash.TrashDataEntry(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
