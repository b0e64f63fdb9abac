package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"welfare-ledger/internal/api/handler"
	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/seniority"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeniorityHandler(t *testing.T) {
	t.Run("list all when no status given", func(t *testing.T) {
		svc := new(MockSeniorityService)
		h := handler.NewSeniorityHandler(svc, testLogger())
		svc.On("ListEntries", mock.Anything, seniority.Status("")).Return(nil, nil)

		rec := httptest.NewRecorder()
		h.ListEntries(rec, newRequest(t, http.MethodGet, "/seniority", nil, adminPrincipal, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := new(MockSeniorityService)
		h := handler.NewSeniorityHandler(svc, testLogger())

		rec := httptest.NewRecorder()
		h.ListEntries(rec, newRequest(t, http.MethodGet, "/seniority?status=WAITING", nil, adminPrincipal, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("enqueue", func(t *testing.T) {
		svc := new(MockSeniorityService)
		h := handler.NewSeniorityHandler(svc, testLogger())
		svc.On("Enqueue", mock.Anything, int64(4), seniority.RequestLoan, "needs top-up").
			Return(&seniority.Entry{ID: 1, CustomerID: 4, RequestType: seniority.RequestLoan, Status: seniority.StatusPending}, nil)

		rec := httptest.NewRecorder()
		body := dto.EnqueueSeniorityRequest{CustomerID: 4, RequestType: "loan", Note: "needs top-up"}
		h.Enqueue(rec, newRequest(t, http.MethodPost, "/seniority", body, adminPrincipal, nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var entry seniority.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		assert.Equal(t, seniority.StatusPending, entry.Status)
	})

	t.Run("enqueue while pending", func(t *testing.T) {
		svc := new(MockSeniorityService)
		h := handler.NewSeniorityHandler(svc, testLogger())
		svc.On("Enqueue", mock.Anything, int64(4), seniority.RequestSubscription, "").
			Return(nil, fmt.Errorf("%w: customer 4 already has a pending request", apperrors.ErrAlreadyExists))

		rec := httptest.NewRecorder()
		body := dto.EnqueueSeniorityRequest{CustomerID: 4, RequestType: "SUBSCRIPTION"}
		h.Enqueue(rec, newRequest(t, http.MethodPost, "/seniority", body, adminPrincipal, nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("eligibility", func(t *testing.T) {
		svc := new(MockSeniorityService)
		h := handler.NewSeniorityHandler(svc, testLogger())
		best := int64(10)
		svc.On("Eligibility", mock.Anything, int64(4)).
			Return(&seniority.Eligibility{CustomerID: 4, Eligible: true, BestLoanID: &best, PaidRatio: decimal.RequireFromString("0.85")}, nil)

		rec := httptest.NewRecorder()
		h.Eligibility(rec, newRequest(t, http.MethodGet, "/seniority/eligibility/4", nil, adminPrincipal, map[string]string{"customerID": "4"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"customerId":4,"eligible":true,"bestLoanId":10,"paidRatio":"0.8500"}`, rec.Body.String())
	})

	t.Run("review and remove", func(t *testing.T) {
		svc := new(MockSeniorityService)
		h := handler.NewSeniorityHandler(svc, testLogger())
		params := map[string]string{"entryID": "1"}
		svc.On("Review", mock.Anything, int64(1), true, "ok").
			Return(&seniority.Entry{ID: 1, Status: seniority.StatusApproved}, nil)
		svc.On("Remove", mock.Anything, int64(1)).Return(nil)

		rec := httptest.NewRecorder()
		h.Review(rec, newRequest(t, http.MethodPut, "/seniority/1/review", dto.ReviewSeniorityRequest{Approve: true, Note: "ok"}, adminPrincipal, params))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.Remove(rec, newRequest(t, http.MethodDelete, "/seniority/1", nil, adminPrincipal, params))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})
}
