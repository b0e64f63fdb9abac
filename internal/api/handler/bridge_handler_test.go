package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"welfare-ledger/internal/api/handler"
	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBridgeHandler(t *testing.T) {
	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	t.Run("connect delegates to the websocket server", func(t *testing.T) {
		h := handler.NewBridgeHandler(new(MockDeepLinkDeliverer), ws, testLogger())
		rec := httptest.NewRecorder()
		h.Connect(rec, httptest.NewRequest(http.MethodGet, "/bridge/ws?deviceId=d1", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("deep link accepted", func(t *testing.T) {
		hub := new(MockDeepLinkDeliverer)
		h := handler.NewBridgeHandler(hub, ws, testLogger())
		hub.On("DeliverDeepLink", mock.Anything, "d1", "welfare://loans/10").Return("01HZX", nil)

		rec := httptest.NewRecorder()
		req := newRequest(t, http.MethodPost, "/bridge/devices/d1/deeplinks", dto.DeepLinkRequest{URL: "welfare://loans/10"}, adminPrincipal, map[string]string{"deviceID": "d1"})
		h.DeliverDeepLink(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"deviceId":"d1","requestId":"01HZX"}`, rec.Body.String())
	})

	t.Run("device offline", func(t *testing.T) {
		hub := new(MockDeepLinkDeliverer)
		h := handler.NewBridgeHandler(hub, ws, testLogger())
		hub.On("DeliverDeepLink", mock.Anything, "gone", "/loans").Return("", fmt.Errorf("%w: device gone is not connected", apperrors.ErrNotFound))

		rec := httptest.NewRecorder()
		req := newRequest(t, http.MethodPost, "/bridge/devices/gone/deeplinks", dto.DeepLinkRequest{URL: "/loans"}, adminPrincipal, map[string]string{"deviceID": "gone"})
		h.DeliverDeepLink(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing url", func(t *testing.T) {
		hub := new(MockDeepLinkDeliverer)
		h := handler.NewBridgeHandler(hub, ws, testLogger())

		rec := httptest.NewRecorder()
		req := newRequest(t, http.MethodPost, "/bridge/devices/d1/deeplinks", dto.DeepLinkRequest{}, adminPrincipal, map[string]string{"deviceID": "d1"})
		h.DeliverDeepLink(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "url", decodeError(t, rec).Field)
		hub.AssertNotCalled(t, "DeliverDeepLink")
	})
}
