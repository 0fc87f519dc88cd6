package jwt

import (
	"strconv"

	"github.com/golang-jwt/jwt"

	"eventify/internal/app/user"
)

// Payload is the claim set of a stub bearer token.
// The subject is the decimal user id; UserID repeats it as a number for handlers.
type Payload struct {
	jwt.StandardClaims

	UserID int    `json:"uid"`
	Email  string `json:"email,omitempty"`
}

// newPayload builds the claims for profile. Timing fields are set by the Issuer.
func newPayload(profile user.Profile) *Payload {
	return &Payload{
		StandardClaims: jwt.StandardClaims{Subject: strconv.Itoa(profile.ID)},
		UserID:         profile.ID,
		Email:          profile.Email,
	}
}

// Valid adds the user id check to the standard time and issuer checks.
func (p *Payload) Valid() error {
	if err := p.StandardClaims.Valid(); err != nil {
		return err
	}
	if p.UserID <= 0 || p.Subject != strconv.Itoa(p.UserID) {
		return ErrTokenInvalid
	}
	if !p.VerifyIssuer(TokenIssuer, true) {
		return ErrTokenInvalid
	}
	return nil
}
