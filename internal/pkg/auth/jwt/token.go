/*
Package jwt issues and verifies the bearer tokens of the stub backend.

Tokens are HS256-signed and carry the user id as subject. The client never
looks inside them; it only stores and replays the string.
*/
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"eventify/internal/app/user"
)

const (
	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = 24 * time.Hour

	// TokenIssuer is the iss claim of every stub token.
	TokenIssuer = "eventify-stub"
)

var (
	// ErrTokenInvalid means the token is malformed, badly signed or names no user.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired means the token was valid but its lifetime is over.
	ErrTokenExpired = errors.New("token expired")
)

// Issuer signs and verifies tokens with one shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer for secret. A non-positive ttl means DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token identifying profile.
func (i *Issuer) Issue(profile user.Profile) (string, error) {
	if profile.ID <= 0 {
		return "", fmt.Errorf("issue token: %w", ErrTokenInvalid)
	}

	now := i.now()
	claims := newPayload(profile)
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(i.ttl).Unix()
	claims.Issuer = TokenIssuer

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, lifetime and claims of token.
// It returns ErrTokenExpired or ErrTokenInvalid on failure.
func (i *Issuer) Verify(token string) (*Payload, error) {
	claims := &Payload{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err == nil {
		return claims, nil
	}

	var ve *jwt.ValidationError
	if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
		return nil, ErrTokenExpired
	}
	return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
}
