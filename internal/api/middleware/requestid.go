package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/staffdesk/admin/pkg/logger"
	"go.uber.org/zap"
)

type ctxKey string

const RequestIDKey ctxKey = "request_id"

const (
	requestIDHeader   = "X-Request-ID"
	maxRequestIDBytes = 64
)

// RequestID ensures each request has an ID in context and response headers.
// Client-supplied IDs longer than 64 bytes are replaced.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > maxRequestIDBytes {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request id from context.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(RequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Log returns the global logger tagged with the request id carried by ctx.
func Log(ctx context.Context) *zap.Logger {
	if id := GetRequestID(ctx); id != "" {
		return logger.L().With(zap.String("request_id", id))
	}
	return logger.L()
}
