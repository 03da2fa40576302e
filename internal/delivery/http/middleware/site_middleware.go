package middleware

import (
	"context"
	"net/http"

	"storeconsole-backend/internal/domain"
	"storeconsole-backend/pkg/logger"
)

// SiteResolver turns the request's {siteId} path value into a site id.
type SiteResolver func(r *http.Request) (int64, bool)

// NewSiteAccessMiddleware resolves the site of the request and checks the
// operator may manage it. MUST be used AFTER AuthMiddleware.
func NewSiteAccessMiddleware(resolve SiteResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operator := OperatorFromContext(r.Context())
			if operator == nil {
				http.Error(w, "Unauthorized: No operator found in context", http.StatusUnauthorized)
				return
			}

			siteID, ok := resolve(r)
			if !ok {
				http.Error(w, "Bad Request: Invalid site id", http.StatusBadRequest)
				return
			}

			if !operator.CanManage(siteID) {
				http.Error(w, "Forbidden: Site not managed by operator", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), domain.SiteContextKey, siteID)
			siteLogger := logger.WithSiteID(*logger.WithContext(ctx), siteID)
			ctx = logger.NewContext(ctx, &siteLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SiteIDFromContext returns the site resolved by the site access middleware.
func SiteIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(domain.SiteContextKey).(int64)
	return id, ok
}
