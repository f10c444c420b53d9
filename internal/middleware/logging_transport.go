package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LoggingTransport is an http.RoundTripper that logs every outgoing request
// with method, path, status code and latency. Status-based levels mirror the
// usual server-side request logger: 5xx logged at error, 4xx at warn,
// everything else at info.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *zap.Logger
}

// NewLoggingTransport wraps base with request logging. A nil base falls back
// to http.DefaultTransport.
func NewLoggingTransport(base http.RoundTripper, logger *zap.Logger) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingTransport{Base: base, Logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Base.RoundTrip(req)
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Duration("latency", latency),
	}
	if q := req.URL.RawQuery; q != "" {
		fields = append(fields, zap.String("query", q))
	}

	if err != nil {
		fields = append(fields, zap.Error(err))
		t.Logger.Error("Outgoing request failed", fields...)
		return nil, err
	}

	fields = append(fields, zap.Int("status_code", resp.StatusCode))
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		t.Logger.Error("Outgoing request", fields...)
	case resp.StatusCode >= http.StatusBadRequest:
		t.Logger.Warn("Outgoing request", fields...)
	default:
		t.Logger.Info("Outgoing request", fields...)
	}
	return resp, nil
}
