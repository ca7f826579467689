package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/meterline/storefront-backend/api/responses"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey guards the admin surface with a shared static key. With no
// key configured the surface is disabled outright.
func AdminKey(apiKey string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if apiKey == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "not found"))
				return
			}

			provided := strings.TrimSpace(r.Header.Get(adminKeyHeader))
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{"ip": ClientIP(r)})
					logg.Warn(logCtx, "admin.key.rejected")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
