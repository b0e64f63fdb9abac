package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"welfare-ledger/internal/api/handler/dto"
	mw "welfare-ledger/internal/api/middleware"
	"welfare-ledger/internal/domain/account"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var adminPrincipal = mw.Principal{AccountID: 1, Role: account.RoleAdmin}

func customerPrincipal(customerID int64) mw.Principal {
	return mw.Principal{AccountID: 2, Role: account.RoleCustomer, CustomerID: &customerID}
}

// newRequest builds a request carrying chi URL params and the given caller.
func newRequest(t *testing.T, method, target string, body any, p mw.Principal, params map[string]string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(mw.WithPrincipal(ctx, p))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorDetail {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}
