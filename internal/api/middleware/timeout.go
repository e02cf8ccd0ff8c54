package middleware

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeout bounds every handler's request context to d, so a
// slow store query or OSINT adapter call can never hold a connection
// open indefinitely (spec.md §5's per-call deadline rule).
func RequestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
