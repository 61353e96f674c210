// Package auth authenticates requests from Bearer tokens and exposes the
// authenticated identity through pkg/requestcontext.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "campus/pkg/domain"
	"campus/pkg/requestcontext"
)

// Claims is the validated identity the middleware needs from a token.
type Claims struct {
	UserID string
	Locale string
	Staff  bool
}

// TokenValidator validates a raw token string.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

type contextKeyStaff struct{}

// ContextKeyStaff is exported for tests that need raw context.WithValue.
var ContextKeyStaff = contextKeyStaff{}

// IsStaff reports whether the authenticated user carries the staff claim.
func IsStaff(ctx context.Context) bool {
	staff, ok := ctx.Value(ContextKeyStaff).(bool)
	return ok && staff
}

// WithStaff marks a context as belonging to a staff user.
func WithStaff(ctx context.Context, staff bool) context.Context {
	return context.WithValue(ctx, ContextKeyStaff, staff)
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + errCode + `","error_description":"` + errDesc + `"}`))
}

// RequireAuth rejects requests without a valid Bearer token and installs the
// user ID, locale, and staff marker into the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			userID, err := id.ParseUserID(claims.UserID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed subject",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithUserID(ctx, userID)
			if claims.Locale != "" {
				ctx = requestcontext.WithLocale(ctx, claims.Locale)
			}
			ctx = WithStaff(ctx, claims.Staff)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff rejects authenticated requests whose token lacks the staff
// claim. Apply after RequireAuth.
func RequireStaff(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !IsStaff(ctx) {
				logger.WarnContext(ctx, "forbidden - staff claim required",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "Staff access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
