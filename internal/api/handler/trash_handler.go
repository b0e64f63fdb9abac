package handler

import (
	"log/slog"
	"net/http"

	"welfare-ledger/internal/domain/trash"

	"github.com/go-chi/chi/v5"
)

type TrashHandler struct {
	service trash.Service
	logger  *slog.Logger
}

func NewTrashHandler(s trash.Service, l *slog.Logger) *TrashHandler {
	if s == nil {
		panic("trash service cannot be nil")
	}
	return &TrashHandler{service: s, logger: l.With("component", "TrashHandler")}
}

// List handles GET /trash/{kind}
// @Summary Trashed items of one kind
// @Tags Trash
// @Produce json
// @Param kind path string true "customers, loans, installments, subscriptions or data-entries"
// @Success 200 {array} trash.Item
// @Router /trash/{kind} [get]
// @Security BearerAuth
func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, err := trash.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := h.service.List(r.Context(), kind)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []trash.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Restore handles POST /trash/{kind}/{id}/restore
// @Summary Restore a trashed item
// @Description Restoring a customer brings back what was trashed with it.
// @Tags Trash
// @Param kind path string true "Kind"
// @Param id path int true "ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Parent is still in the trash"
// @Router /trash/{kind}/{id}/restore [post]
// @Security BearerAuth
func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	kind, id, err := h.target(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.Restore(r.Context(), kind, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Purge handles DELETE /trash/{kind}/{id}
// @Summary Delete a trashed item permanently
// @Tags Trash
// @Param kind path string true "Kind"
// @Param id path int true "ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /trash/{kind}/{id} [delete]
// @Security BearerAuth
func (h *TrashHandler) Purge(w http.ResponseWriter, r *http.Request) {
	kind, id, err := h.target(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.Purge(r.Context(), kind, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TrashHandler) target(r *http.Request) (trash.Kind, int64, error) {
	kind, err := trash.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", 0, err
	}
	id, err := idParam(r, "id")
	if err != nil {
		return "", 0, err
	}
	return kind, id, nil
}
