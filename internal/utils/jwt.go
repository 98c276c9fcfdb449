package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"

	"github.com/iliyamo/author-service/internal/validate"
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are short-lived and sent in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidSubject is returned when a token's sub claim is not an author id.
var ErrInvalidSubject = errors.New("invalid token subject")

// NewAccessToken builds and signs an HS256 JWT for an author.  The subject
// (sub) claim carries the author id in its canonical 36 character form so
// it can be fed straight back into the identifier validator.
func NewAccessToken(secret string, authorID uuid.UUID, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": authorID.String(),
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw with secret and returns the author id from
// its subject claim.  Tokens signed with anything but HMAC are rejected.
func ParseAccessToken(secret, raw string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !tok.Valid {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, ErrInvalidSubject
	}
	id, err := validate.ParseIdentifier(sub)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidSubject, err)
	}
	return id, nil
}
