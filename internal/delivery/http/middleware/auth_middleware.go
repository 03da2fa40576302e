package middleware

import (
	"context"
	"net/http"

	"storeconsole-backend/internal/domain"
	"storeconsole-backend/pkg/utils"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Token from header or cookie
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			http.Error(w, "Unauthorized: Invalid or missing token", http.StatusUnauthorized)
			return
		}

		// The operator is built from the claims alone; there is no user store.
		operator := &domain.Operator{
			ID:    claims.OperatorID,
			Email: claims.Email,
			Role:  claims.Role,
			Sites: claims.Sites,
		}

		ctx := context.WithValue(r.Context(), domain.OperatorContextKey, operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OperatorFromContext returns the authenticated operator, or nil.
func OperatorFromContext(ctx context.Context) *domain.Operator {
	op, _ := ctx.Value(domain.OperatorContextKey).(*domain.Operator)
	return op
}
