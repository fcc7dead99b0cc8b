package daemon

import (
	"net/http"

	"github.com/felixge/httpsnoop"

	"quirknotes/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// LoggingMiddleware writes one log line per request with the status and
// latency captured by httpsnoop.
func LoggingMiddleware(logger logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = logging.NewRequestID()
			}
			w.Header().Set(requestIDHeader, reqID)
			metrics := httpsnoop.CaptureMetrics(next, w, r)
			fields := []logging.Field{
				logging.F("request_id", reqID),
				logging.F("method", r.Method),
				logging.F("path", r.URL.Path),
				logging.F("status", metrics.Code),
				logging.F("bytes", metrics.Written),
				logging.F("latency_ms", metrics.Duration.Milliseconds()),
			}
			if metrics.Code >= http.StatusInternalServerError {
				logger.Warn("http_request", fields...)
				return
			}
			logger.Info("http_request", fields...)
		})
	}
}
