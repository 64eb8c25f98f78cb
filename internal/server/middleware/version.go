package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/homeblocks/internal/server/handlers"
	"github.com/iudanet/homeblocks/pkg/api"
)

// VersionMiddleware требует заголовок api.VersionHeader с поддерживаемой версией API
// и возвращает его в ответе.
func VersionMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			version := r.Header.Get(api.VersionHeader)
			switch version {
			case api.Version:
			case "":
				handlers.WriteError(w, http.StatusBadRequest, api.CodeValidation,
					fmt.Sprintf("%s header should be defined", api.VersionHeader))
				return
			default:
				logger.Warn("Unsupported API version", "version", version)
				handlers.WriteError(w, http.StatusBadRequest, api.CodeValidation,
					fmt.Sprintf("%s %q is not supported, use %s", api.VersionHeader, version, api.Version))
				return
			}

			w.Header().Set(api.VersionHeader, api.Version)
			next.ServeHTTP(w, r)
		})
	}
}
