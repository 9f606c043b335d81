package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in declaration order, so the first entry is the
// outermost wrapper.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		h = mws[i](h)
	}
	return h
}

// Recover converts handler panics into a 500 and logs the stack.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slogx.FromContext(r.Context()).Error("panic serving request",
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					WriteJSON(w, http.StatusInternalServerError, map[string]string{
						"error":             "server_error",
						"error_description": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
