package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// responseWriter records status and size; error bodies are kept for the log line.
type responseWriter struct {
	http.ResponseWriter
	body        *bytes.Buffer
	status      int
	size        int
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
		body:           &bytes.Buffer{},
	}
}

func (rw *responseWriter) WriteHeader(status int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	if rw.status >= http.StatusBadRequest {
		rw.body.Write(b)
	}

	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		attrs := []any{
			slog.String("method", r.Method),
			slog.String("uri", r.RequestURI),
			slog.Int("status", rw.status),
			slog.Int("size", rw.size),
			slog.Duration("duration", time.Since(start)),
		}
		if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
			attrs = append(attrs, slog.String("request_id", reqID))
		}

		switch {
		case rw.status >= http.StatusInternalServerError:
			slog.Error("request failed", append(attrs, slog.String("response_body", rw.body.String()))...)
		case rw.status >= http.StatusBadRequest:
			slog.Warn("request rejected", append(attrs, slog.String("response_body", rw.body.String()))...)
		default:
			slog.Info("request served", attrs...)
		}
	})
}
