package middleware

import (
	"context"
	"net/http"
	"strings"

	"sprintboard/internal/logger"
	"sprintboard/internal/models/user"

	"go.uber.org/zap"
)

const userKey contextKey = "user"

type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// Authenticate rejects requests without a valid bearer token with a 401 envelope
// and stores the resolved user in the request context.
func Authenticate(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			token = strings.TrimSpace(token)

			u, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Warn("HTTP: Запрос без действующего токена",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Error(err))
				writeFailure(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) *user.User {
	if u, ok := ctx.Value(userKey).(*user.User); ok {
		return u
	}
	return nil
}
