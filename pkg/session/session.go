package session

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// CookieName is the visitor session cookie
const CookieName = "pc_session"

// Visitor is the session identity attached to a request
type Visitor struct {
	VisitorID string
	Name      string
}

type contextKey string

const visitorContextKey contextKey = "visitor"

// ErrNoVisitor is returned when the context carries no session
var ErrNoVisitor = errors.New("no visitor in context")

// SetVisitorInContext attaches a visitor to the context
func SetVisitorInContext(ctx context.Context, visitor *Visitor) context.Context {
	return context.WithValue(ctx, visitorContextKey, visitor)
}

// GetVisitorFromContext extracts the visitor from the context
func GetVisitorFromContext(ctx context.Context) (*Visitor, error) {
	visitor, ok := ctx.Value(visitorContextKey).(*Visitor)
	if !ok || visitor == nil {
		return nil, ErrNoVisitor
	}
	return visitor, nil
}

// SetCookie writes the session cookie
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token from the cookie, falling
// back to a bearer Authorization header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
