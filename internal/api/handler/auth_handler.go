package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"welfare-ledger/internal/api/handler/dto"
	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/pkg/apperrors"
)

type AuthHandler struct {
	service account.Service
	logger  *slog.Logger
}

func NewAuthHandler(s account.Service, l *slog.Logger) *AuthHandler {
	if s == nil {
		panic("account service cannot be nil")
	}
	return &AuthHandler{service: s, logger: l.With("component", "AuthHandler")}
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Exchanges email and password for a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Login failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Account:   dto.NewAccountResponse(result.Account),
	})
}

// Me handles GET /auth/me
// @Summary Current account
// @Tags Auth
// @Produce json
// @Description With authentication disabled the caller is an administrator without an account, reported by role only.
// @Success 200 {object} dto.AccountResponse
// @Router /auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if p.AccountID == 0 {
		respondJSON(w, http.StatusOK, dto.AccountResponse{Role: string(p.Role)})
		return
	}

	acc, err := h.service.Me(r.Context(), p.AccountID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewAccountResponse(acc))
}

// ChangePassword handles PUT /auth/password
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Param request body dto.ChangePasswordRequest true "Old and new password"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "New password too short"
// @Failure 401 {object} dto.ErrorResponse "Old password does not match"
// @Failure 409 {object} dto.ErrorResponse "Authentication is disabled"
// @Router /auth/password [put]
// @Security BearerAuth
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	p := principal(r)
	if p.AccountID == 0 {
		respondError(w, fmt.Errorf("%w: authentication is disabled, there is no account whose password could change", apperrors.ErrConflict))
		return
	}

	if err := h.service.ChangePassword(r.Context(), p.AccountID, req.OldPassword, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Password changed", slog.Int64("accountID", p.AccountID))
	w.WriteHeader(http.StatusNoContent)
}

// CreateUser handles POST /admin/users
// @Summary Create a login
// @Description Creates an ADMIN or a CUSTOMER login; CUSTOMER logins are scoped to an existing customer.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "New account"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /admin/users [post]
// @Security BearerAuth
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	role, err := account.ParseRole(req.Role)
	if err != nil {
		respondError(w, err)
		return
	}

	acc, err := h.service.CreateUser(r.Context(), req.Email, req.Password, role, req.CustomerID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Account created", slog.Int64("accountID", acc.ID), slog.String("role", string(acc.Role)))
	respondJSON(w, http.StatusCreated, dto.NewAccountResponse(acc))
}

// ResetPassword handles POST /admin/users/{accountID}/reset-password
// @Summary Reset a password
// @Description Sets a random temporary password, mails it when mail is enabled and returns it once.
// @Tags Admin
// @Produce json
// @Param accountID path int true "Account ID"
// @Success 200 {object} dto.ResetPasswordResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{accountID}/reset-password [post]
// @Security BearerAuth
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	accountID, err := idParam(r, "accountID")
	if err != nil {
		respondError(w, err)
		return
	}

	temporary, err := h.service.ResetPassword(r.Context(), accountID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.ResetPasswordResponse{AccountID: accountID, TemporaryPassword: temporary})
}
