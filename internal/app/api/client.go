/*
Package api is the typed client of the events backend.

This file defines the Client and the single request path shared by every operation:
JSON encoding, status classification and response decoding. Authentication is not
handled here; it belongs to the http.Client's transport (see package transport).
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/logx"
)

// maxResponseBody bounds how much of a response body is read.
const maxResponseBody = 4 << 20

// Client issues the requests of the events API relative to a base URL.
type Client struct {
	// baseURL always ends with a slash so relative paths resolve below it.
	baseURL *url.URL

	// http carries the transport chain (authentication, logging, timeout).
	http *http.Client

	logger zerolog.Logger
}

// New returns a Client for baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute", baseURL)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: u,
		http:    httpClient,
		logger:  logx.Component("api-client"),
	}, nil
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// do sends one request and decodes a 2xx body into out (when out is non-nil).
// Failures are *errs.CustomError values: ErrCanceled, ErrNetwork, a status error
// built by errs.FromResponse, or ErrDecodeResponse.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errs.NewError(errs.ErrUnknown, fmt.Errorf("encode %s %s request: %w", method, path, err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return errs.NewError(errs.ErrUnknown, fmt.Errorf("build %s %s request: %w", method, path, err))
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return errs.Wrap(errs.ErrCanceled, err)
		}
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Request failed without a response")
		return errs.Wrap(errs.ErrNetwork, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
	if err != nil {
		if ctx.Err() != nil {
			return errs.Wrap(errs.ErrCanceled, err)
		}
		return errs.Wrap(errs.ErrNetwork, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errs.FromResponse(res.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Response body did not match the expected schema")
		return errs.Wrap(errs.ErrDecodeResponse, err)
	}
	return nil
}
