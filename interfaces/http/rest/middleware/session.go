package middleware

import (
	"net/http"
	"strings"

	"postcards/pkg/common"
	"postcards/pkg/session"

	"go.uber.org/zap"
)

// VisitorSession attaches the visitor identity from the session cookie
// when one is present. The story is public, so a missing or invalid
// session never blocks the request; handlers that want the visitor's
// name just fall back to anonymous.
func VisitorSession(tokens *session.TokenManager, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				logger.Debug("Ignoring invalid session token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := session.SetVisitorInContext(r.Context(), &session.Visitor{
				VisitorID: claims.VisitorID,
				Name:      claims.Name,
			})
			ctx = common.WithVisitorID(ctx, claims.VisitorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteRateLimit limits write requests per client IP
func WriteRateLimit(limiter *session.IPRateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := limiter.Allow(r.Context(), clientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests,
					common.StandardErrorCodes.TooManyRequests, "Rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP address
func clientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
