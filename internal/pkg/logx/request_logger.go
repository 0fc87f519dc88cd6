package logx

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// anonymizeIP drops the host part of a remote address.
// For IPv4 it zeros the last octet; for IPv6 it keeps the /64 prefix.
func anonymizeIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	ip := net.ParseIP(addr)
	switch {
	case ip == nil:
		return "unknown_ip"
	case ip.IsLoopback():
		return "127.0.0.1"
	case ip.To4() != nil:
		return ip.To4().Mask(net.CIDRMask(24, 32)).String()
	default:
		return ip.Mask(net.CIDRMask(64, 128)).String()
	}
}

// RequestLogger is the access log middleware of the stub backend.
// Handlers reach the request-scoped logger through hlog.FromRequest.
func RequestLogger() func(next http.Handler) http.Handler {
	withLogger := hlog.NewHandler(Component("stub-http"))
	access := hlog.AccessHandler(logAccess)

	return func(next http.Handler) http.Handler {
		return withLogger(access(next))
	}
}

func logAccess(r *http.Request, status, size int, latency time.Duration) {
	if status == 0 {
		status = http.StatusOK
	}

	level := zerolog.InfoLevel
	switch {
	case status >= 500:
		level = zerolog.ErrorLevel
	case status >= 400:
		level = zerolog.WarnLevel
	}

	hlog.FromRequest(r).WithLevel(level).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("remote_ip", anonymizeIP(r.RemoteAddr)).
		Str("request_method", r.Method).
		Str("route", routePattern(r)).
		Int("status", status).
		Int("bytes", size).
		Dur("latency", latency).
		Msg("Request served")
}

// routePattern is the matched chi pattern, such as /api/event/{id}, or the raw path
// when the request did not go through a chi router.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
