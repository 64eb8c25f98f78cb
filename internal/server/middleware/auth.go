package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/homeblocks/internal/server/handlers"
	"github.com/iudanet/homeblocks/internal/server/jwt"
	"github.com/iudanet/homeblocks/pkg/api"
)

// AuthMiddleware создает middleware для проверки integration token
func AuthMiddleware(logger *slog.Logger, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header")
				handlers.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "API token is missing.")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("Invalid Authorization header format")
				handlers.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "Authorization header must use the Bearer scheme.")
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				logger.Warn("Invalid integration token", "error", err)
				handlers.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "API token is invalid.")
				return
			}

			ctx := context.WithValue(r.Context(), handlers.WorkspaceKey, claims.Subject)
			logger.Debug("Request authenticated", "workspace", claims.Subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
