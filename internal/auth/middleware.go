package auth

import (
	"net/http"
	"strings"

	"github.com/mood-journal/mood-journal/internal/platform/httpx"
	"github.com/mood-journal/mood-journal/internal/shared"
)

// RequireAuth rejects requests without a valid bearer token and injects
// the authenticated principal into the request context. Every journal
// route runs behind this middleware.
func RequireAuth(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			userID, err := tokens.Validate(token)
			if err != nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			ctx := shared.ContextWithPrincipal(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
