package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"welfare-ledger/internal/api/handler"
	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/ledger"
	"welfare-ledger/internal/domain/subscription"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionHandler(t *testing.T) {
	t.Run("record", func(t *testing.T) {
		svc, trashSvc := new(MockSubscriptionService), new(MockTrashService)
		h := handler.NewSubscriptionHandler(svc, trashSvc, testLogger())
		paidOn := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
		svc.On("RecordSubscription", mock.Anything, int64(4), decimalEq("200"), paidOn, "", "").
			Return(&subscription.Subscription{ID: 1, CustomerID: 4, Amount: decimal.RequireFromString("200"), PaidOn: paidOn, Period: "2024-05"}, nil)

		rec := httptest.NewRecorder()
		body := dto.SubscriptionRequest{CustomerID: 4, Amount: "200", PaidOn: "2024-05-03"}
		h.RecordSubscription(rec, newRequest(t, http.MethodPost, "/subscriptions", body, adminPrincipal, nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.SubscriptionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "2024-05", resp.Period)
	})

	t.Run("scoped list ignores customer filter", func(t *testing.T) {
		svc, trashSvc := new(MockSubscriptionService), new(MockTrashService)
		h := handler.NewSubscriptionHandler(svc, trashSvc, testLogger())
		svc.On("ListSubscriptions", mock.Anything, mock.MatchedBy(func(f subscription.Filter) bool {
			return f.CustomerID != nil && *f.CustomerID == 4 && f.Period == "2024-05"
		})).Return([]*subscription.Subscription{}, nil)

		rec := httptest.NewRecorder()
		h.ListSubscriptions(rec, newRequest(t, http.MethodGet, "/subscriptions?customerId=8&period=2024-05", nil, customerPrincipal(4), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("customer account without a customer sees nothing", func(t *testing.T) {
		svc, trashSvc := new(MockSubscriptionService), new(MockTrashService)
		h := handler.NewSubscriptionHandler(svc, trashSvc, testLogger())

		rec := httptest.NewRecorder()
		p := customerPrincipal(1)
		p.CustomerID = nil
		h.ListSubscriptions(rec, newRequest(t, http.MethodGet, "/subscriptions", nil, p, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		svc.AssertNotCalled(t, "ListSubscriptions")
	})

	t.Run("get hides other customers", func(t *testing.T) {
		svc, trashSvc := new(MockSubscriptionService), new(MockTrashService)
		h := handler.NewSubscriptionHandler(svc, trashSvc, testLogger())
		svc.On("GetSubscription", mock.Anything, int64(6)).Return(&subscription.Subscription{ID: 6, CustomerID: 4, Amount: decimal.RequireFromString("200"), Period: "2024-05"}, nil)
		params := map[string]string{"subscriptionID": "6"}

		rec := httptest.NewRecorder()
		h.GetSubscription(rec, newRequest(t, http.MethodGet, "/subscriptions/6", nil, customerPrincipal(4), params))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.GetSubscription(rec, newRequest(t, http.MethodGet, "/subscriptions/6", nil, customerPrincipal(9), params))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("customer total", func(t *testing.T) {
		svc, trashSvc := new(MockSubscriptionService), new(MockTrashService)
		h := handler.NewSubscriptionHandler(svc, trashSvc, testLogger())
		svc.On("TotalForCustomer", mock.Anything, int64(4)).Return(decimal.RequireFromString("600"), nil)

		rec := httptest.NewRecorder()
		h.CustomerTotal(rec, newRequest(t, http.MethodGet, "/customers/4/subscriptions/total", nil, customerPrincipal(4), map[string]string{"customerID": "4"}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"customerId":4,"total":"600.00"}`, rec.Body.String())

		rec = httptest.NewRecorder()
		h.CustomerTotal(rec, newRequest(t, http.MethodGet, "/customers/5/subscriptions/total", nil, customerPrincipal(4), map[string]string{"customerID": "5"}))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertNumberOfCalls(t, "TotalForCustomer", 1)
	})

	t.Run("trash", func(t *testing.T) {
		svc, trashSvc := new(MockSubscriptionService), new(MockTrashService)
		h := handler.NewSubscriptionHandler(svc, trashSvc, testLogger())
		trashSvc.On("TrashSubscription", mock.Anything, int64(5)).Return(nil)

		rec := httptest.NewRecorder()
		h.DeleteSubscription(rec, newRequest(t, http.MethodDelete, "/subscriptions/5", nil, adminPrincipal, map[string]string{"subscriptionID": "5"}))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestDataEntryHandler(t *testing.T) {
	t.Run("add debit", func(t *testing.T) {
		svc, trashSvc := new(MockLedgerService), new(MockTrashService)
		h := handler.NewDataEntryHandler(svc, trashSvc, testLogger())
		date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		svc.On("AddEntry", mock.Anything, ledger.EntryDebit, "rent", "hall rent", decimalEq("1200"), date).
			Return(&ledger.DataEntry{ID: 3, EntryType: ledger.EntryDebit, Category: "rent", Amount: decimal.RequireFromString("1200"), EntryDate: date}, nil)

		rec := httptest.NewRecorder()
		body := dto.DataEntryRequest{EntryType: "debit", Category: "rent", Description: "hall rent", Amount: "1200", EntryDate: "2024-06-01"}
		h.AddEntry(rec, newRequest(t, http.MethodPost, "/data-entries", body, adminPrincipal, nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown entry type", func(t *testing.T) {
		svc, trashSvc := new(MockLedgerService), new(MockTrashService)
		h := handler.NewDataEntryHandler(svc, trashSvc, testLogger())

		rec := httptest.NewRecorder()
		body := dto.DataEntryRequest{EntryType: "refund", Amount: "1"}
		h.AddEntry(rec, newRequest(t, http.MethodPost, "/data-entries", body, adminPrincipal, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "AddEntry")
	})

	t.Run("list with range and type", func(t *testing.T) {
		svc, trashSvc := new(MockLedgerService), new(MockTrashService)
		h := handler.NewDataEntryHandler(svc, trashSvc, testLogger())
		svc.On("ListEntries", mock.Anything, mock.MatchedBy(func(f ledger.Filter) bool {
			return f.From != nil && f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) && f.To == nil && f.Type == ledger.EntryCredit
		})).Return([]*ledger.DataEntry{}, nil)

		rec := httptest.NewRecorder()
		h.ListEntries(rec, newRequest(t, http.MethodGet, "/data-entries?from=2024-01-01&type=CREDIT", nil, adminPrincipal, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("balance", func(t *testing.T) {
		svc, trashSvc := new(MockLedgerService), new(MockTrashService)
		h := handler.NewDataEntryHandler(svc, trashSvc, testLogger())
		svc.On("Balance", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return(&ledger.Balance{
			Credits: decimal.RequireFromString("500"),
			Debits:  decimal.RequireFromString("120.5"),
			Net:     decimal.RequireFromString("379.5"),
		}, nil)

		rec := httptest.NewRecorder()
		h.Balance(rec, newRequest(t, http.MethodGet, "/data-entries/balance", nil, adminPrincipal, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"credits":"500.00","debits":"120.50","net":"379.50"}`, rec.Body.String())
	})

	t.Run("bad date in range", func(t *testing.T) {
		svc, trashSvc := new(MockLedgerService), new(MockTrashService)
		h := handler.NewDataEntryHandler(svc, trashSvc, testLogger())

		rec := httptest.NewRecorder()
		h.Balance(rec, newRequest(t, http.MethodGet, "/data-entries/balance?to=June", nil, adminPrincipal, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "to", decodeError(t, rec).Field)
	})

	t.Run("get", func(t *testing.T) {
		svc, trashSvc := new(MockLedgerService), new(MockTrashService)
		h := handler.NewDataEntryHandler(svc, trashSvc, testLogger())
		svc.On("GetEntry", mock.Anything, int64(3)).Return(&ledger.DataEntry{ID: 3, EntryType: ledger.EntryCredit, Amount: decimal.RequireFromString("75")}, nil)

		rec := httptest.NewRecorder()
		h.GetEntry(rec, newRequest(t, http.MethodGet, "/data-entries/3", nil, adminPrincipal, map[string]string{"entryID": "3"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.DataEntryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.ID)
	})

	t.Run("trash", func(t *testing.T) {
		svc, trashSvc := new(MockLedgerService), new(MockTrashService)
		h := handler.NewDataEntryHandler(svc, trashSvc, testLogger())
		trashSvc.On("TrashDataEntry", mock.Anything, int64(3)).Return(nil)

		rec := httptest.NewRecorder()
		h.DeleteEntry(rec, newRequest(t, http.MethodDelete, "/data-entries/3", nil, adminPrincipal, map[string]string{"entryID": "3"}))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
