/*
Package session holds the authenticated session of the client and the stores that persist it.

A session is saved as one opaque serialized blob under a single named slot. Every
Store implementation is safe for concurrent use: Save and Clear are atomic with
respect to Load, so a reader sees either the old blob or the new one, never a
partial write.
*/
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"eventify/internal/app/user"
	"eventify/internal/pkg/errs"
)

const (
	// DefaultNamespace names the preferences file or key prefix holding the slot.
	DefaultNamespace = "events_project_prefs"

	// DefaultSlot is the storage slot holding the serialized session.
	DefaultSlot = "login_response"
)

// ErrEmptyToken is returned by Decode for a blob without a token.
var ErrEmptyToken = errors.New("session: token is empty")

// Session is the authentication payload returned by login and sign-up.
type Session struct {
	// Token is the bearer token. It is non-empty for every stored session.
	Token string `json:"token"`

	// User is the profile of the signed-in user.
	User user.Profile `json:"user"`
}

// Store persists one serialized session blob.
type Store interface {
	// Save stores blob, replacing any previous value.
	Save(ctx context.Context, blob []byte) error

	// Load returns the stored blob. ok is false when nothing is stored.
	Load(ctx context.Context) (blob []byte, ok bool, err error)

	// Clear removes the stored blob. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Encode serializes s for storage.
func Encode(s *Session) ([]byte, error) {
	if s == nil || strings.TrimSpace(s.Token) == "" {
		return nil, ErrEmptyToken
	}
	return json.Marshal(s)
}

// Decode parses a stored blob. A blob without a token is rejected.
func Decode(blob []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Token) == "" {
		return nil, ErrEmptyToken
	}
	return &s, nil
}

// Current loads and decodes the stored session.
// It returns ErrNoSession when nothing is stored, ErrSessionCorrupt when the blob
// cannot be decoded and ErrSessionStorage when the store fails.
func Current(ctx context.Context, store Store) (*Session, error) {
	blob, ok, err := store.Load(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrSessionStorage, err)
	}
	if !ok {
		return nil, errs.NewError(errs.ErrNoSession)
	}

	s, err := Decode(blob)
	if err != nil {
		return nil, errs.Wrap(errs.ErrSessionCorrupt, err)
	}
	return s, nil
}

// Persist encodes s and saves it, replacing the previous session.
func Persist(ctx context.Context, store Store, s *Session) error {
	blob, err := Encode(s)
	if err != nil {
		return errs.Wrap(errs.ErrSessionCorrupt, err)
	}
	if err := store.Save(ctx, blob); err != nil {
		return errs.Wrap(errs.ErrSessionStorage, err)
	}
	return nil
}

// TokenOf returns the token of a stored blob, or "" when the blob is absent or cannot be decoded.
func TokenOf(blob []byte, ok bool) string {
	if !ok {
		return ""
	}
	s, err := Decode(blob)
	if err != nil {
		return ""
	}
	return s.Token
}
