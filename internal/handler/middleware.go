package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"international-payments/internal/auth"
	"international-payments/internal/errors"
)

// RequireAuth rejects requests without a valid bearer token and threads the
// resolved caller id through the request context. No core logic runs for an
// unauthenticated request.
func RequireAuth(tokens *auth.Manager, logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.Warn("Unauthorized request", "path", r.URL.Path)
				writeError(w, errors.ErrUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn("Rejected invalid token", "path", r.URL.Path)
				writeError(w, errors.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}
