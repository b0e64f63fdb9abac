package handler

import (
	"context"
	"log/slog"
	"net/http"

	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/bridge"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

// DeepLinkDeliverer is satisfied by *bridge.Hub.
type DeepLinkDeliverer interface {
	DeliverDeepLink(ctx context.Context, deviceID, rawURL string) (string, error)
}

type BridgeHandler struct {
	hub    DeepLinkDeliverer
	ws     http.Handler
	logger *slog.Logger
}

func NewBridgeHandler(hub DeepLinkDeliverer, ws http.Handler, l *slog.Logger) *BridgeHandler {
	if hub == nil || ws == nil {
		panic("bridge handler dependencies cannot be nil")
	}
	return &BridgeHandler{hub: hub, ws: ws, logger: l.With("component", "BridgeHandler")}
}

// Connect handles GET /bridge/ws
// @Summary Open the native shell channel
// @Description Upgrades to a websocket carrying bridge messages for one device.
// @Tags Bridge
// @Param deviceId query string true "Device identifier"
// @Param pushToken query string false "Push token known at connect time"
// @Param platform query string false "ios or android"
// @Success 101
// @Failure 400 {object} dto.ErrorResponse
// @Router /bridge/ws [get]
func (h *BridgeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	h.ws.ServeHTTP(w, r)
}

// DeliverDeepLink handles POST /bridge/devices/{deviceID}/deeplinks
// @Summary Open a link inside a connected device
// @Description The page must acknowledge within the ack timeout or the shell force-navigates.
// @Tags Bridge
// @Accept json
// @Produce json
// @Param deviceID path string true "Device identifier"
// @Param request body dto.DeepLinkRequest true "Link"
// @Success 202 {object} dto.DeepLinkResponse
// @Failure 404 {object} dto.ErrorResponse "Device not connected"
// @Router /bridge/devices/{deviceID}/deeplinks [post]
// @Security BearerAuth
func (h *BridgeHandler) DeliverDeepLink(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "deviceID")
	if deviceID == "" {
		respondError(w, apperrors.NewValidationError("deviceId", "device id is required"))
		return
	}
	var req dto.DeepLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.URL == "" {
		respondError(w, apperrors.NewValidationError("url", "url is required"))
		return
	}

	requestID, err := h.hub.DeliverDeepLink(r.Context(), deviceID, req.URL)
	if err != nil {
		respondError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Deep link dispatched", "device_id", deviceID, "request_id", requestID)
	respondJSON(w, http.StatusAccepted, dto.DeepLinkResponse{DeviceID: deviceID, RequestID: requestID})
}

var _ DeepLinkDeliverer = (*bridge.Hub)(nil)
