package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"campus/pkg/platform/httputil"
	"campus/pkg/requestcontext"
)

// EnabledSource reports whether rate limiting is switched on. The site
// configuration service satisfies this.
type EnabledSource interface {
	RateLimitingEnabled(ctx context.Context) (bool, error)
}

// Middleware enforces the limiter on every request while the rate-limit
// configuration is enabled. Checks fail open: a broken config read or store
// never takes the API down.
type Middleware struct {
	limiter *Limiter
	enabled EnabledSource
	logger  *slog.Logger
}

func NewMiddleware(limiter *Limiter, enabled EnabledSource, logger *slog.Logger) *Middleware {
	return &Middleware{
		limiter: limiter,
		enabled: enabled,
		logger:  logger,
	}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		enabled, err := m.enabled.RateLimitingEnabled(ctx)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to read rate-limit configuration", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !enabled {
			next.ServeHTTP(w, r)
			return
		}

		result := m.limiter.Allow(clientKey(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"message":     "Too many requests. Please try again later.",
				"retry_after": result.RetryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller: the authenticated user when present,
// otherwise the remote IP.
func clientKey(r *http.Request) string {
	if userID := requestcontext.UserID(r.Context()); !userID.IsZero() {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
