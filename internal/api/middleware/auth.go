package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"welfare-ledger/internal/config"
	"welfare-ledger/internal/domain/account"
)

type TokenVerifier interface {
	Parse(token string) (*account.Claims, error)
}

// Principal is the authenticated caller. CustomerID is set for scoped customers only.
type Principal struct {
	AccountID  int64
	Role       account.Role
	CustomerID *int64
}

func (p Principal) IsAdmin() bool {
	return p.Role == account.RoleAdmin
}

// Scope returns the customer a scoped caller is limited to, or nil for admins.
func (p Principal) Scope() *int64 {
	if p.IsAdmin() {
		return nil
	}
	return p.CustomerID
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// AuthMiddleware verifies the bearer token and stores the Principal in the request context.
// Download links opened outside the app may carry the token as access_token instead.
// With auth disabled every request runs as an administrator.
func AuthMiddleware(cfg config.AuthConfig, tokens TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		logger.Warn("Authentication is disabled; all requests run with administrator rights")
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := WithPrincipal(r.Context(), Principal{Role: account.RoleAdmin})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				logger.WarnContext(r.Context(), "AuthMiddleware: Missing bearer token")
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", "")
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				logger.WarnContext(r.Context(), "AuthMiddleware: Invalid token", slog.Any("error", err))
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", "")
				return
			}
			accountID, err := claims.AccountID()
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", "")
				return
			}

			p := Principal{AccountID: accountID, Role: claims.Role, CustomerID: claims.CustomerID}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return r.URL.Query().Get("access_token")
}

// RequireAdmin turns scoped customers away from admin-only routes; the client redirects them to /loans.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", "")
			return
		}
		if !p.IsAdmin() {
			writeError(w, http.StatusForbidden, "ADMIN_ONLY", "This page is only available to administrators.", "/loans")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorBody struct {
	Error struct {
		Code     string `json:"code"`
		Message  string `json:"message"`
		Redirect string `json:"redirect,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message, redirect string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	body.Error.Redirect = redirect
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
