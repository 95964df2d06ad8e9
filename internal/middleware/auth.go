package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/weatherlog/weatherlog-go/internal/apperr"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	tokenKey  contextKey = "token"
)

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// SessionAuth returns middleware that verifies the Bearer token from the Authorization
// header against the user's current session. Expired tokens get 403, every other
// verification failure 401.
func SessionAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)

			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				kind := apperr.KindOf(err)
				status := http.StatusUnauthorized
				switch kind {
				case apperr.Expired:
					status = http.StatusForbidden
				case apperr.Internal:
					slog.Error("session verification failed", "error", err)
					status = http.StatusInternalServerError
				}
				writeJSONError(w, status, err, kind)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// It returns "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// TokenFromContext returns the verified session token of the request.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

func writeJSONError(w http.ResponseWriter, status int, err error, kind apperr.Kind) {
	msg := err.Error()
	if kind == apperr.Internal {
		msg = "Internal server error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg, "kind": kind.String()})
}
