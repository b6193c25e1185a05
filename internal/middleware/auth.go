package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/internal/service"
)

// inline error responder
func respondError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": message})
}

// Authenticate attaches the bearer token's principal to the request
// context. Requests without a usable token continue anonymously; access
// decisions are left to RequireRole and Deny.
func Authenticate(tokenSvc service.TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("layer", "middleware", "component", "authenticate")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			principal, err := tokenSvc.ValidateToken(tokenStr)
			if err != nil {
				logger.Debug("Ignoring invalid bearer token", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := model.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects anonymous requests with 401 and principals holding
// none of roles with 403.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := model.PrincipalFromContext(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			if !slices.Contains(roles, p.Role) {
				respondError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Deny answers every request it sees: 401 when anonymous, 403 otherwise.
func Deny(w http.ResponseWriter, r *http.Request) {
	if _, ok := model.PrincipalFromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	respondError(w, http.StatusForbidden, "forbidden", "access denied")
}
