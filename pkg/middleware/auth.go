package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Prasi710/Turffy/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const UserIDKey contextKey = "user_id"

// TokenVerifier resolves a bearer credential to a stable user ID. Token
// issuance lives with the auth domain; the middleware only consumes the
// check.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth guards a single route. Every failure mode (missing,
// malformed, expired, forged) produces the same response so callers
// cannot distinguish which case occurred.
func RequireAuth(verifier TokenVerifier, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token := extractBearerToken(r)
			if token == "" {
				rejectUnauthorized(w, log, r, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				rejectUnauthorized(w, log, r, "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Unauthorized request",
		"request_id", requestIDFrom(r),
		"reason", reason,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
