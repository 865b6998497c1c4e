package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/kubishi-relay/pkg/ctxutil"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

// Incoming IDs longer than this are replaced.
const maxRequestIDLen = 128

// RequestID returns middleware that puts a request ID into the context and
// the response headers. A well-formed incoming X-Request-Id is reused.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
