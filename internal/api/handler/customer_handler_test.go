package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"welfare-ledger/internal/api/handler"
	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, trashSvc := new(MockCustomerService), new(MockTrashService)
		h := handler.NewCustomerHandler(svc, trashSvc, testLogger())

		body := dto.CustomerRequest{Name: "Asha Rao", Phone: "9876543210", Address: "12 Lake Road"}
		svc.On("CreateCustomer", mock.Anything, body.Name, body.Phone, body.Address).
			Return(&customer.Customer{ID: 7, Name: body.Name, Phone: body.Phone, Address: body.Address}, nil)

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, newRequest(t, http.MethodPost, "/customers", body, adminPrincipal, nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CustomerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "9876543210", resp.Phone)
		svc.AssertExpectations(t)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		svc, trashSvc := new(MockCustomerService), new(MockTrashService)
		h := handler.NewCustomerHandler(svc, trashSvc, testLogger())

		svc.On("CreateCustomer", mock.Anything, "Asha", "9876543210", "").
			Return(nil, fmt.Errorf("%w: phone 9876543210 is already registered", apperrors.ErrAlreadyExists))

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, newRequest(t, http.MethodPost, "/customers", dto.CustomerRequest{Name: "Asha", Phone: "9876543210"}, adminPrincipal, nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "ALREADY_EXISTS", decodeError(t, rec).Code)
	})

	t.Run("invalid phone", func(t *testing.T) {
		svc, trashSvc := new(MockCustomerService), new(MockTrashService)
		h := handler.NewCustomerHandler(svc, trashSvc, testLogger())

		svc.On("CreateCustomer", mock.Anything, "Asha", "12345", "").
			Return(nil, apperrors.NewValidationError("phone", "phone must be exactly 10 digits"))

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, newRequest(t, http.MethodPost, "/customers", dto.CustomerRequest{Name: "Asha", Phone: "12345"}, adminPrincipal, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		detail := decodeError(t, rec)
		assert.Equal(t, "VALIDATION_FAILED", detail.Code)
		assert.Equal(t, "phone", detail.Field)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		svc, trashSvc := new(MockCustomerService), new(MockTrashService)
		h := handler.NewCustomerHandler(svc, trashSvc, testLogger())

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, newRequest(t, http.MethodPost, "/customers", map[string]string{"nickname": "x"}, adminPrincipal, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateCustomer")
	})
}

func TestGetCustomer(t *testing.T) {
	t.Run("admin sees any customer", func(t *testing.T) {
		svc, trashSvc := new(MockCustomerService), new(MockTrashService)
		h := handler.NewCustomerHandler(svc, trashSvc, testLogger())
		svc.On("GetCustomer", mock.Anything, int64(3)).Return(&customer.Customer{ID: 3, Name: "Ravi"}, nil)

		rec := httptest.NewRecorder()
		h.GetCustomer(rec, newRequest(t, http.MethodGet, "/customers/3", nil, adminPrincipal, map[string]string{"customerID": "3"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("scoped customer cannot see another customer", func(t *testing.T) {
		svc, trashSvc := new(MockCustomerService), new(MockTrashService)
		h := handler.NewCustomerHandler(svc, trashSvc, testLogger())

		rec := httptest.NewRecorder()
		h.GetCustomer(rec, newRequest(t, http.MethodGet, "/customers/3", nil, customerPrincipal(4), map[string]string{"customerID": "3"}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertNotCalled(t, "GetCustomer")
	})

	t.Run("invalid id", func(t *testing.T) {
		svc, trashSvc := new(MockCustomerService), new(MockTrashService)
		h := handler.NewCustomerHandler(svc, trashSvc, testLogger())

		rec := httptest.NewRecorder()
		h.GetCustomer(rec, newRequest(t, http.MethodGet, "/customers/abc", nil, adminPrincipal, map[string]string{"customerID": "abc"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ARGUMENT", decodeError(t, rec).Code)
	})
}

func TestListAndDeleteCustomer(t *testing.T) {
	svc, trashSvc := new(MockCustomerService), new(MockTrashService)
	h := handler.NewCustomerHandler(svc, trashSvc, testLogger())

	svc.On("ListCustomers", mock.Anything, "rao").Return([]*customer.Customer{{ID: 1, Name: "Asha Rao"}}, nil)
	rec := httptest.NewRecorder()
	h.ListCustomers(rec, newRequest(t, http.MethodGet, "/customers?q=rao", nil, adminPrincipal, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var list []dto.CustomerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	trashSvc.On("TrashCustomer", mock.Anything, int64(1)).Return(nil)
	rec = httptest.NewRecorder()
	h.DeleteCustomer(rec, newRequest(t, http.MethodDelete, "/customers/1", nil, adminPrincipal, map[string]string{"customerID": "1"}))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	trashSvc.AssertExpectations(t)
}

func TestListCustomersByPhone(t *testing.T) {
	svc, trashSvc := new(MockCustomerService), new(MockTrashService)
	h := handler.NewCustomerHandler(svc, trashSvc, testLogger())

	svc.On("FindByPhone", mock.Anything, "9876543210").Return(&customer.Customer{ID: 7, Name: "Ravi", Phone: "9876543210"}, nil).Once()
	rec := httptest.NewRecorder()
	h.ListCustomers(rec, newRequest(t, http.MethodGet, "/customers?phone=9876543210", nil, adminPrincipal, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []dto.CustomerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)
	svc.AssertNotCalled(t, "ListCustomers", mock.Anything, mock.Anything)

	svc.On("FindByPhone", mock.Anything, "1112223334").Return(nil, fmt.Errorf("%w: no customer", apperrors.ErrNotFound)).Once()
	rec = httptest.NewRecorder()
	h.ListCustomers(rec, newRequest(t, http.MethodGet, "/customers?phone=1112223334", nil, adminPrincipal, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
