// Package middleware holds the chi middlewares shared by the API routes.
package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Logger injects a request-scoped zerolog logger into the context. Chart
// parameters (granularity, date, user) travel in the query string, so the
// raw query is attached alongside method and path; everything logged below
// the handler carries these fields.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Str("remote_ip", req.RemoteAddr).
				Logger()

			ctx := reqLogger.WithContext(req.Context())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
