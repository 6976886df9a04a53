package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireRole returns middleware that admits only callers whose JWT role is
// one of allowedRoles. Rejections are logged with the caller's user id.
func RequireRole(log *zap.Logger, allowedRoles ...string) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				log.Info("role rejected",
					zap.String("user_id", claims.UserID),
					zap.String("role", claims.Role),
					zap.String("path", r.URL.Path),
				)
				writeJSONError(w, r, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
