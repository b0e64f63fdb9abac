package handler

import (
	"log/slog"
	"net/http"

	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/domain/trash"
)

type CustomerHandler struct {
	service customer.Service
	trash   trash.Service
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.Service, t trash.Service, l *slog.Logger) *CustomerHandler {
	if s == nil || t == nil {
		panic("customer handler dependencies cannot be nil")
	}
	return &CustomerHandler{service: s, trash: t, logger: l.With("component", "CustomerHandler")}
}

// CreateCustomer handles POST /customers
// @Summary Add a customer
// @Description Phone must be exactly 10 digits and unique.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid name or phone"
// @Failure 409 {object} dto.ErrorResponse "Phone already registered"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), req.Name, req.Phone, req.Address)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(created))
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Tags Customers
// @Produce json
// @Param q query string false "Name or phone fragment"
// @Param phone query string false "Exact 10 digit phone"
// @Success 200 {array} dto.CustomerResponse
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if phone := r.URL.Query().Get("phone"); phone != "" {
		cust, err := h.service.FindByPhone(r.Context(), phone)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, []dto.CustomerResponse{dto.NewCustomerResponse(cust)})
		return
	}

	customers, err := h.service.ListCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]dto.CustomerResponse, len(customers))
	for i, c := range customers {
		resp[i] = dto.NewCustomerResponse(c)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Get a customer
// @Description Scoped customers may read only their own record.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := idParam(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := ownedBy(r, customerID, "customer", customerID); err != nil {
		respondError(w, err)
		return
	}

	c, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(c))
}

// UpdateCustomer handles PUT /customers/{customerID}
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param request body dto.CustomerRequest true "Customer"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Phone already registered"
// @Router /customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := idParam(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdateCustomer(r.Context(), customerID, req.Name, req.Phone, req.Address)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// DeleteCustomer handles DELETE /customers/{customerID}
// @Summary Move a customer to the trash
// @Description Loans, installments and subscriptions of the customer go to the trash with it.
// @Tags Customers
// @Param customerID path int true "Customer ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := idParam(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.trash.TrashCustomer(r.Context(), customerID); err != nil {
		respondError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Customer moved to trash", slog.Int64("customerID", customerID))
	w.WriteHeader(http.StatusNoContent)
}
