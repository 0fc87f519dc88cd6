package logx

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Transport is an http.RoundTripper that logs every outbound API call.
// Each call gets a correlation id that only appears in the log; the request itself is not modified.
type Transport struct {
	// Base performs the actual round trip. http.DefaultTransport is used when nil.
	Base http.RoundTripper
}

// NewTransport wraps base with outbound request logging.
func NewTransport(base http.RoundTripper) *Transport {
	return &Transport{Base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	logger := Logger().With().
		Str("component", "api-client").
		Str("call_id", uuid.NewString()).
		Str("request_method", r.Method).
		Str("request_path", r.URL.Path).
		Logger()

	start := time.Now()
	res, err := base.RoundTrip(r)
	latency := time.Since(start)

	if err != nil {
		logger.Warn().Err(err).Dur("latency", latency).Msg("API call failed before a response was received")
		return nil, err
	}

	logEvent := logger.Debug()
	if res.StatusCode >= 500 {
		logEvent = logger.Error()
	} else if res.StatusCode >= 400 {
		logEvent = logger.Warn()
	}

	logEvent.
		Int("status", res.StatusCode).
		Dur("latency", latency).
		Msg("API call completed")

	return res, nil
}
