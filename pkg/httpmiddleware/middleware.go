// Package httpmiddleware provides the HTTP middleware stack: panic recovery,
// request ids, CORS, rate limiting, and request logging.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Wrap applies the given middlewares to h. The first middleware in the list
// becomes the outermost handler.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
