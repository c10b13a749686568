package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id back to the caller.
const RequestIDHeader = "X-Request-ID"

type requestMeta struct {
	id     string
	userID int64
}

// RequestID returns the id assigned by RequestLogger.
func RequestID(ctx context.Context) string {
	if meta, ok := ctx.Value(requestContextKey).(*requestMeta); ok {
		return meta.id
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger assigns a request id and logs one entry per request.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			meta := &requestMeta{id: uuid.NewString()}
			w.Header().Set(RequestIDHeader, meta.id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestContextKey, meta)))

			entry := log.WithFields(logrus.Fields{
				"request_id":  meta.id,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if meta.userID != 0 {
				entry = entry.WithField("user_id", meta.userID)
			}
			switch {
			case rec.status >= 500:
				entry.Error("HTTP request completed")
			case rec.status >= 400:
				entry.Warn("HTTP request completed")
			default:
				entry.Info("HTTP request completed")
			}
		})
	}
}
