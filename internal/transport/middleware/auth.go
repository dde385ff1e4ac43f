package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/ediflow-backend/pkg/ctxutil"
)

// TokenValidator resolves partner API tokens.
type TokenValidator interface {
	ValidatePartnerToken(token string) (ctxutil.Partner, error)
}

// PartnerAuth resolves the caller's partner from a bearer token.
// Requests without a token stay anonymous; documents they create get
// no default partner. An invalid token is rejected.
func PartnerAuth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			partner, err := validator.ValidatePartnerToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithPartner(r.Context(), partner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
