package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"welfare-ledger/internal/api/handler/dto"
	mw "welfare-ledger/internal/api/middleware"
	"welfare-ledger/internal/pkg/apperrors"
	"welfare-ledger/internal/pkg/money"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: no request body", apperrors.ErrInvalidArgument)
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"code":"INTERNAL","message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// respondError maps sentinel errors to a status and an operator-facing message.
func respondError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	message := apperrors.UserMessage(err)
	field := ""

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		field = validationErr.Field
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, apperrors.ErrPaymentExceedsBalance):
		status, code = http.StatusBadRequest, "PAYMENT_EXCEEDS_BALANCE"
	case errors.Is(err, apperrors.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_FAILED"
	case errors.Is(err, apperrors.ErrInvalidArgument):
		status, code, message = http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, code = http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, apperrors.ErrConflict):
		status, code, message = http.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, apperrors.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, status, dto.ErrorResponse{Error: dto.ErrorDetail{Code: code, Message: message, Field: field}})
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", apperrors.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

func parseQueryID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(field, "must be a positive number")
	}
	return id, nil
}

func principal(r *http.Request) mw.Principal {
	p, _ := mw.PrincipalFrom(r.Context())
	return p
}

// ownedBy hides records of other customers from scoped callers as if they did not exist.
func ownedBy(r *http.Request, customerID int64, what string, id int64) error {
	p := principal(r)
	if p.IsAdmin() {
		return nil
	}
	if p.CustomerID == nil || *p.CustomerID != customerID {
		return fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, what, id)
	}
	return nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError(field, fmt.Sprintf("%q is not a valid amount", raw))
	}
	if err := money.Validate(field, amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// parseDate accepts YYYY-MM-DD; empty means zero time so the domain can default it.
func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, fmt.Sprintf("%q must use the YYYY-MM-DD format", raw))
	}
	return t, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
