package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/logx"
	"eventify/internal/pkg/resp"
)

type payloadKey struct{}

// Identify verifies the bearer token of each request, if any, and stores its
// Payload in the request context. Requests without a usable token pass through
// anonymously; Require rejects them.
func (i *Issuer) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearer(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		payload, err := i.Verify(token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				logx.Debug("Expired bearer token, treating as anonymous", "path", r.URL.Path)
			} else {
				logx.Warn("Rejected bearer token, treating as anonymous", "path", r.URL.Path, "error", err.Error())
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), payloadKey{}, payload)))
	})
}

// Require answers 401 with a plain-text body unless Identify accepted a token.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromRequest(r) == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FromRequest returns the verified Payload of r, or nil for an anonymous request.
func FromRequest(r *http.Request) *Payload {
	payload, _ := r.Context().Value(payloadKey{}).(*Payload)
	return payload
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
