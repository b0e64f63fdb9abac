package handler

import (
	"log/slog"
	"net/http"

	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/seniority"
)

type SeniorityHandler struct {
	service seniority.Service
	logger  *slog.Logger
}

func NewSeniorityHandler(s seniority.Service, l *slog.Logger) *SeniorityHandler {
	if s == nil {
		panic("seniority service cannot be nil")
	}
	return &SeniorityHandler{service: s, logger: l.With("component", "SeniorityHandler")}
}

// ListEntries handles GET /seniority
// @Summary Loan seniority list
// @Tags Seniority
// @Produce json
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {array} seniority.Entry
// @Router /seniority [get]
// @Security BearerAuth
func (h *SeniorityHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	var status seniority.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		var err error
		if status, err = seniority.ParseStatus(raw); err != nil {
			respondError(w, err)
			return
		}
	}
	entries, err := h.service.ListEntries(r.Context(), status)
	if err != nil {
		respondError(w, err)
		return
	}
	if entries == nil {
		entries = []*seniority.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Enqueue handles POST /seniority
// @Summary Add a customer to the seniority queue
// @Description Requires at least 80% repaid on one loan and no pending request.
// @Tags Seniority
// @Accept json
// @Produce json
// @Param request body dto.EnqueueSeniorityRequest true "Request"
// @Success 201 {object} seniority.Entry
// @Failure 400 {object} dto.ErrorResponse "Not eligible"
// @Failure 409 {object} dto.ErrorResponse "Already queued"
// @Router /seniority [post]
// @Security BearerAuth
func (h *SeniorityHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req dto.EnqueueSeniorityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	requestType, err := seniority.ParseRequestType(req.RequestType)
	if err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.service.Enqueue(r.Context(), req.CustomerID, requestType, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// Eligibility handles GET /seniority/eligibility/{customerID}
// @Summary Seniority eligibility of a customer
// @Tags Seniority
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.EligibilityResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /seniority/eligibility/{customerID} [get]
// @Security BearerAuth
func (h *SeniorityHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	customerID, err := idParam(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	e, err := h.service.Eligibility(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewEligibilityResponse(e))
}

// Review handles PUT /seniority/{entryID}/review
// @Summary Approve or reject a pending request
// @Tags Seniority
// @Accept json
// @Produce json
// @Param entryID path int true "Entry ID"
// @Param request body dto.ReviewSeniorityRequest true "Decision"
// @Success 200 {object} seniority.Entry
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /seniority/{entryID}/review [put]
// @Security BearerAuth
func (h *SeniorityHandler) Review(w http.ResponseWriter, r *http.Request) {
	entryID, err := idParam(r, "entryID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req dto.ReviewSeniorityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.service.Review(r.Context(), entryID, req.Approve, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// Remove handles DELETE /seniority/{entryID}
// @Summary Remove an entry from the seniority list
// @Tags Seniority
// @Param entryID path int true "Entry ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /seniority/{entryID} [delete]
// @Security BearerAuth
func (h *SeniorityHandler) Remove(w http.ResponseWriter, r *http.Request) {
	entryID, err := idParam(r, "entryID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.Remove(r.Context(), entryID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
