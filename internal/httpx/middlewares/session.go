// Package middlewares holds the chi middleware specific to the
// storefront: session attachment and the admin bearer-token guard.
package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderXSessionID carries the browsing session that owns the cart.
const HeaderXSessionID = "X-Session-ID"

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

// ContextKeySessionID is the context key for the session ID.
const ContextKeySessionID contextKey = "session_id"

// AttachSession reads the session ID from the request header, minting a
// fresh one when absent, stores it in the request context, and echoes
// it back so first-time clients learn their session.
func AttachSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(HeaderXSessionID)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		w.Header().Set(HeaderXSessionID, sessionID)

		ctx := context.WithValue(r.Context(), ContextKeySessionID, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID extracts the session ID attached by AttachSession. Empty
// when the middleware did not run (e.g. in isolated handler tests).
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeySessionID).(string)
	return id
}
