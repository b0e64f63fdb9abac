package handler

import (
	"log/slog"
	"net/http"

	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/subscription"
	"welfare-ledger/internal/domain/trash"
)

type SubscriptionHandler struct {
	service subscription.Service
	trash   trash.Service
	logger  *slog.Logger
}

func NewSubscriptionHandler(s subscription.Service, t trash.Service, l *slog.Logger) *SubscriptionHandler {
	if s == nil || t == nil {
		panic("subscription handler dependencies cannot be nil")
	}
	return &SubscriptionHandler{service: s, trash: t, logger: l.With("component", "SubscriptionHandler")}
}

// RecordSubscription handles POST /subscriptions
// @Summary Record a subscription payment
// @Description Period is YYYY-MM and defaults to the month of paidOn.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body dto.SubscriptionRequest true "Subscription"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /subscriptions [post]
// @Security BearerAuth
func (h *SubscriptionHandler) RecordSubscription(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscriptionRequest
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

	sub, err := h.service.RecordSubscription(r.Context(), req.CustomerID, amount, paidOn, req.Period, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewSubscriptionResponse(sub))
}

// ListSubscriptions handles GET /subscriptions
// @Summary List subscriptions
// @Description Scoped customers only see their own subscriptions.
// @Tags Subscriptions
// @Produce json
// @Param customerId query int false "Customer filter (admins only)"
// @Param period query string false "YYYY-MM"
// @Success 200 {array} dto.SubscriptionResponse
// @Router /subscriptions [get]
// @Security BearerAuth
func (h *SubscriptionHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := subscription.Filter{Period: q.Get("period")}

	if p := principal(r); !p.IsAdmin() {
		if p.CustomerID == nil {
			respondJSON(w, http.StatusOK, []dto.SubscriptionResponse{})
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

	subs, err := h.service.ListSubscriptions(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	resp := make([]dto.SubscriptionResponse, len(subs))
	for i, s := range subs {
		resp[i] = dto.NewSubscriptionResponse(s)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetSubscription handles GET /subscriptions/{subscriptionID}
// @Summary Get a subscription payment
// @Tags Subscriptions
// @Produce json
// @Param subscriptionID path int true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subscriptions/{subscriptionID} [get]
// @Security BearerAuth
func (h *SubscriptionHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "subscriptionID")
	if err != nil {
		respondError(w, err)
		return
	}
	sub, err := h.service.GetSubscription(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := ownedBy(r, sub.CustomerID, "subscription", id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewSubscriptionResponse(sub))
}

// CustomerTotal handles GET /customers/{customerID}/subscriptions/total
// @Summary Total subscription fees paid by a customer
// @Tags Subscriptions
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.SubscriptionTotalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{customerID}/subscriptions/total [get]
// @Security BearerAuth
func (h *SubscriptionHandler) CustomerTotal(w http.ResponseWriter, r *http.Request) {
	customerID, err := idParam(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := ownedBy(r, customerID, "customer", customerID); err != nil {
		respondError(w, err)
		return
	}
	total, err := h.service.TotalForCustomer(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.SubscriptionTotalResponse{CustomerID: customerID, Total: total.StringFixed(2)})
}

// DeleteSubscription handles DELETE /subscriptions/{subscriptionID}
// @Summary Move a subscription to the trash
// @Tags Subscriptions
// @Param subscriptionID path int true "Subscription ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /subscriptions/{subscriptionID} [delete]
// @Security BearerAuth
func (h *SubscriptionHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "subscriptionID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.trash.TrashSubscription(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
