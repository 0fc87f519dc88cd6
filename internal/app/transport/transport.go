package transport

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"eventify/internal/app/session"
	"eventify/internal/pkg/logx"
	"eventify/internal/pkg/metrics"
)

// Options configures an AuthTransport.
type Options struct {
	// Base performs the actual round trip. http.DefaultTransport is used when nil.
	Base http.RoundTripper

	// Notifier receives Invalidation events. A new Notifier is created when nil.
	Notifier *Notifier

	// Metrics records request durations and invalidations. Optional.
	Metrics *metrics.Metrics
}

// AuthTransport is an http.RoundTripper that attaches the stored bearer token and
// invalidates the stored session on 401 responses.
type AuthTransport struct {
	// base performs the round trip once the token is attached.
	base http.RoundTripper

	// store is a reference to the session store; the transport does not own it.
	store session.Store

	// notifier publishes invalidations to the navigation layer.
	notifier *Notifier

	// metrics is optional.
	metrics *metrics.Metrics

	// invalidateMu serializes the compare-and-clear of the stored session.
	invalidateMu sync.Mutex

	// structured logger with transport context.
	logger zerolog.Logger
}

// New returns an AuthTransport reading tokens from store.
func New(store session.Store, opts Options) *AuthTransport {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NewNotifier()
	}

	return &AuthTransport{
		base:     base,
		store:    store,
		notifier: notifier,
		metrics:  opts.Metrics,
		logger:   logx.Component("auth-transport"),
	}
}

// Install sets an AuthTransport as client's transport and returns it.
// Installing again replaces the previous AuthTransport instead of wrapping it:
// the previous base transport is reused unless opts.Base is set, and so are its
// Notifier and Metrics unless opts provides them. Existing subscribers therefore
// keep receiving invalidations.
func Install(client *http.Client, store session.Store, opts Options) *AuthTransport {
	current := client.Transport

	if prev, ok := current.(*AuthTransport); ok {
		current = prev.base
		if opts.Notifier == nil {
			opts.Notifier = prev.notifier
		}
		if opts.Metrics == nil {
			opts.Metrics = prev.metrics
		}
	}

	if opts.Base == nil {
		opts.Base = current
	}

	t := New(store, opts)
	client.Transport = t
	return t
}

// Notifier returns the notifier invalidations are published on.
func (t *AuthTransport) Notifier() *Notifier {
	return t.notifier
}

// RoundTrip implements http.RoundTripper.
// The caller's request is never modified; when a token is attached, a clone is sent.
func (t *AuthTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	token := t.resolveToken(ctx)

	out := r
	if token != "" {
		out = r.Clone(ctx)
		out.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := t.base.RoundTrip(out)
	if err != nil {
		t.metrics.ObserveRequest(r.Method, routeOf(r), 0, start)
		return nil, err
	}
	t.metrics.ObserveRequest(r.Method, routeOf(r), res.StatusCode, start)

	if res.StatusCode == http.StatusUnauthorized {
		t.invalidate(ctx, r, token)
	}

	return res, nil
}

// resolveToken returns the stored token, or "" when there is no usable session.
// A store failure or an undecodable blob is treated as no session.
func (t *AuthTransport) resolveToken(ctx context.Context) string {
	blob, ok, err := t.store.Load(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("Session store read failed; sending request without credentials")
		return ""
	}

	token := session.TokenOf(blob, ok)
	if ok && token == "" {
		t.logger.Warn().Msg("Stored session could not be decoded; sending request without credentials")
	}
	return token
}

// invalidate clears the stored session and publishes an Invalidation.
// When the stored token no longer matches the one that was rejected, a new
// session was saved while the request was in flight and it is kept.
func (t *AuthTransport) invalidate(ctx context.Context, r *http.Request, sentToken string) {
	ctx = context.WithoutCancel(ctx)

	t.invalidateMu.Lock()
	defer t.invalidateMu.Unlock()

	if blob, ok, err := t.store.Load(ctx); err == nil {
		if current := session.TokenOf(blob, ok); current != "" && current != sentToken {
			t.logger.Info().
				Str("request_path", r.URL.Path).
				Msg("Unauthorized response for a replaced session; keeping the current session")
			return
		}
	}

	if err := t.store.Clear(ctx); err != nil {
		t.logger.Error().Err(err).Msg("Failed to clear session after unauthorized response")
	}

	t.metrics.SessionInvalidated()
	t.logger.Warn().
		Str("request_method", r.Method).
		Str("request_path", r.URL.Path).
		Msg("Session invalidated by unauthorized response")

	t.notifier.Publish(Invalidation{
		At:     time.Now(),
		Method: r.Method,
		Path:   r.URL.Path,
	})
}

// routeOf returns the request path with numeric segments replaced by {id}, to keep metric labels bounded.
func routeOf(r *http.Request) string {
	segments := strings.Split(r.URL.Path, "/")
	for i, s := range segments {
		if _, err := strconv.Atoi(s); err == nil {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}
