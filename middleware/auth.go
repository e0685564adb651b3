package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/ticket-tournament/models"
)

// AdminCookieName is the cookie the admin login sets.
const AdminCookieName = "admin_token"

// TokenParser проверяет подпись и срок действия токена.
type TokenParser interface {
	Parse(token string) (jwt.MapClaims, error)
}

// RequireAdmin accepts the admin_token cookie, or a Bearer token for API clients.
func RequireAdmin(tokens TokenParser) func(http.Handler) http.Handler {
	return requireRole(tokens, models.RoleAdmin, func(r *http.Request) string {
		if cookie, err := r.Cookie(AdminCookieName); err == nil && cookie.Value != "" {
			return cookie.Value
		}
		return bearerToken(r)
	})
}

// RequirePlayer принимает только заголовок Authorization: Bearer.
func RequirePlayer(tokens TokenParser) func(http.Handler) http.Handler {
	return requireRole(tokens, models.RolePlayer, bearerToken)
}

func requireRole(tokens TokenParser, role models.UserRole, extract func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extract(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := WithClaims(r.Context(), claims)
			userRole, err := GetUserRoleFromContext(ctx)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if userRole != role {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			if _, err := GetUserIDFromContext(ctx); err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
