/*
Package resp writes stub backend responses in the events API format.

Successes carry the bare JSON entity. Errors carry the plain-text message,
which the client shows verbatim.
*/
package resp

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"eventify/internal/pkg/errs"
)

// RespondJSON writes payload as JSON with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Int("http_status", httpStatus).Msg("Failed to encode JSON response")
		write(w, http.StatusInternalServerError, "text/plain; charset=utf-8", []byte(errs.NewError(errs.ErrUnknown).Message))
		return
	}
	write(w, httpStatus, "application/json", body)
}

// RespondSuccess writes data with 200 OK.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusOK, data)
}

// RespondCreated writes data with 201 Created.
func RespondCreated(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusCreated, data)
}

// RespondError writes the message of customErr as plain text.
// A nil error or one without an HTTP status is sent as 500.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	status := customErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(customErr).Msg("Request failed")
	}

	write(w, status, "text/plain; charset=utf-8", []byte(customErr.Message))
}

func write(w http.ResponseWriter, status int, contentType string, body []byte) {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
