package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crowdfund-dashboard/internal/domain"
	jwtinfra "github.com/crowdfund-dashboard/internal/infrastructure/jwt"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenVerifier validates a Bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

// Auth returns middleware that validates the Bearer JWT and injects claims into context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, r, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := verifier.Verify(tokenStr)
			if err != nil {
				writeJSONError(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtinfra.Claims)
	return c, ok
}

// PrincipalFromRequest builds the caller identity from the verified claims and
// the raw Bearer token.
func PrincipalFromRequest(r *http.Request) (domain.Principal, bool) {
	c, ok := ClaimsFromContext(r.Context())
	if !ok {
		return domain.Principal{}, false
	}
	return domain.Principal{
		UserID: c.UserID,
		Role:   c.Role,
		Token:  strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
	}, true
}

// WithClaims returns ctx carrying claims. Handlers under test use it to skip
// token verification.
func WithClaims(ctx context.Context, claims *jwtinfra.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
