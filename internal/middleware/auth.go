package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sya-pos/possyncgo/internal/utils"
)

type contextKey string

// DeviceContextKey carries the validated device claims for handlers that
// want them.
const DeviceContextKey contextKey = "device"

// DeviceAuth verifies the Bearer token terminals present on the sync
// endpoints. When no secret is configured the middleware is a no-op, so a
// zero-config local install still syncs.
func DeviceAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(parts[1], secret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), DeviceContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext extracts the tenant id bound to the device token, if the
// request was authenticated. JWT numeric claims decode as float64.
func TenantFromContext(ctx context.Context) (uint, bool) {
	claims, ok := ctx.Value(DeviceContextKey).(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["tenantId"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
