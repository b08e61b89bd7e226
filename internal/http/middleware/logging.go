package middleware

import (
	"net/http"
	"time"

	"commerce-api/internal/logger"
)

type logOptions struct {
	skips map[string]struct{}
}

// LogOption configures LogRequests.
type LogOption func(*logOptions)

// WithSkips disables logging for the given exact paths.
func WithSkips(paths ...string) LogOption {
	return func(o *logOptions) {
		for _, p := range paths {
			o.skips[p] = struct{}{}
		}
	}
}

// LogRequests logs one line per request with status and duration.
func LogRequests(opts ...LogOption) func(http.Handler) http.Handler {
	o := &logOptions{skips: map[string]struct{}{}}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := o.skips[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := wrap(w)
			next.ServeHTTP(ww, r)

			logger.Infof("%s %s %d %dms request_id=%s remote=%s",
				r.Method, r.URL.Path, ww.status, time.Since(start).Milliseconds(),
				RequestIDFrom(r.Context()), r.RemoteAddr)
		})
	}
}

// statusWriter captures the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func wrap(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
