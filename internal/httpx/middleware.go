package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nikolayk812/tarzi-cart/internal/session"
)

type contextKey int

const (
	ctxKeyOwnerID contextKey = iota
	ctxKeyToken
)

// Authenticate rejects requests without a valid bearer token and stores the
// token's owner in the request context.
func Authenticate(verifier *session.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authorization header required")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || scheme != "Bearer" || token == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid authorization header format")
				return
			}

			claims, err := verifier.Verify(token)
			if errors.Is(err, session.ErrSessionExpired) {
				writeError(w, http.StatusUnauthorized, "session_expired", "Session expired, please sign in again")
				return
			}
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyOwnerID, claims.OwnerID)
			ctx = context.WithValue(ctx, ctxKeyToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ownerFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(ctxKeyOwnerID).(string)
	return ownerID
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ctxKeyToken).(string)
	return token
}
