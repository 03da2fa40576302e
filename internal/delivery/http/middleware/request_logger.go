package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"storeconsole-backend/pkg/logger"
	"storeconsole-backend/pkg/utils"
)

// HTTPRecorder receives request measurements. *metrics.Metrics satisfies it.
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// NewRequestLogger logs all HTTP requests with timing and status and
// records them on recorder when one is given.
func NewRequestLogger(recorder HTTPRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()[:8]
			}

			reqLogger := logger.WithRequestID(requestID)
			ctx := logger.NewContext(r.Context(), &reqLogger)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			// The mux fills in the matched pattern on the request it was given.
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			if recorder != nil {
				recorder.RecordHTTPRequest(r.Method, route, wrapped.statusCode, duration)
			}

			// Auth runs further down the chain, so read the token again.
			operatorID := ""
			if claims, err := utils.ExtractClaims(r); err == nil {
				operatorID = claims.OperatorID
			}

			logEvent := reqLogger.Info()
			if wrapped.statusCode >= 500 {
				logEvent = reqLogger.Error()
			} else if wrapped.statusCode >= 400 {
				logEvent = reqLogger.Warn()
			}

			logEvent.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Str("query", r.URL.RawQuery).
				Int("status", wrapped.statusCode).
				Dur("duration_ms", duration).
				Str("ip", remoteIP(r)).
				Str("forwarded_for", r.Header.Get("X-Forwarded-For")).
				Str("origin", r.Header.Get("Origin")).
				Str("user_agent", r.UserAgent()).
				Str("operator_id", operatorID).
				Msg("HTTP")
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
