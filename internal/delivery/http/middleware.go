package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shortener/internal/usecase"
	"shortener/pkg/problemdetails"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated caller's user id, or nil for
// anonymous requests.
func UserIDFromContext(ctx context.Context) *int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return &id
	}
	return nil
}

// AuthMiddleware resolves the caller's identity from a Bearer token.
// Requests without an Authorization header pass through as anonymous;
// individual handlers decide whether anonymous access is acceptable. A token
// that is present but invalid is rejected.
func AuthMiddleware(auth *usecase.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeProblem(w, problemdetails.New(
					http.StatusUnauthorized,
					problemdetails.TypeUnauthorized,
					"Unauthorized",
					"Authorization header must use the Bearer scheme",
				))
				return
			}

			userID, err := auth.ParseToken(tokenString)
			if err != nil {
				writeProblem(w, problemdetails.New(
					http.StatusUnauthorized,
					problemdetails.TypeUnauthorized,
					"Unauthorized",
					"Invalid or expired token",
				))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerMiddleware returns a middleware that logs HTTP requests using Zap
func LoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote_addr", r.RemoteAddr),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
