package api

import (
	"net/http"
	"time"

	"github.com/fatih/color"
)

// responseWriter wrapper to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLogger logs every request with its status and duration, colored by
// status class.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		line := "[%s] %s %s %d (%v)"
		args := []interface{}{start.Format("15:04:05"), r.Method, r.URL.Path, wrapped.statusCode, duration}

		switch {
		case wrapped.statusCode >= 500:
			color.Red(line, args...)
		case wrapped.statusCode >= 400:
			color.Yellow(line, args...)
		default:
			color.Green(line, args...)
		}
	})
}
