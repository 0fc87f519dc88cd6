/*
Package req decodes JSON request bodies for the stub backend.
*/
package req

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/logx"
)

// MaxBodySize bounds a JSON request body.
const MaxBodySize int64 = 1 << 20

// BindJSON decodes exactly one JSON value from the body of r into dst.
// Every failure maps to ErrInvalidRequest; the reason is only logged.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	if err := decode(w, r, dst); err != nil {
		logx.Debug("Rejected request body", "path", r.URL.Path, "reason", err.Error())
		return errs.Wrap(errs.ErrInvalidRequest, err)
	}
	return nil
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return errors.New("content type is not application/json")
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must hold a single JSON value")
	}
	return nil
}
