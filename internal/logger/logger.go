// Package logger provides the application logger and HTTP request logging.
package logger

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

// NewZapLog creates a production zap logger writing at the given level.
func NewZapLog(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapcfg := zap.NewProductionConfig()
	zapcfg.Level = lvl
	zl, err := zapcfg.Build()
	if err != nil {
		return nil, err
	}
	return zl, nil
}

// RequestLogger sets object structure.
type RequestLogger struct {
	log *zap.Logger
}

// NewRequestLogger initializes a new request logging middleware.
func NewRequestLogger(log *zap.Logger) *RequestLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &RequestLogger{log: log}
}

// RequestLogHandle logs every handled request once the response is written.
func (l *RequestLogger) RequestLogHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wl := newResponseWriterLogger(w)
		start := time.Now()
		next.ServeHTTP(wl, r)
		l.log.Info("request served",
			zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wl.statusCode),
			zap.Int("size", wl.length),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// responseWriterLogger records the status code and the body size of a response.
type responseWriterLogger struct {
	http.ResponseWriter
	statusCode int
	length     int
	written    bool
}

func newResponseWriterLogger(w http.ResponseWriter) *responseWriterLogger {
	return &responseWriterLogger{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader stores the status code on its first call.
func (wl *responseWriterLogger) WriteHeader(code int) {
	if !wl.written {
		wl.statusCode = code
		wl.written = true
	}
	wl.ResponseWriter.WriteHeader(code)
}

// Write counts the bytes written.
func (wl *responseWriterLogger) Write(b []byte) (int, error) {
	wl.written = true
	n, err := wl.ResponseWriter.Write(b)
	wl.length += n
	return n, err
}

// Flush supports streaming handlers such as the profiler.
func (wl *responseWriterLogger) Flush() {
	if f, ok := wl.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
