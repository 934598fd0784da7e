package utils // package utils provides helpers for token signing and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens
	"github.com/google/uuid"
)

// AccessTokenTTL is the fixed validity window of every access token.
const AccessTokenTTL = time.Hour

// ErrInvalidToken is returned by ParseAccessToken for any token that is
// malformed, signed with another key or algorithm, expired, or missing the
// username claim.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT asserting username.  The
// token carries the claims username, exp, iat and a random jti, and expires
// AccessTokenTTL after now.
func NewAccessToken(secret, username string, now time.Time) (AccessToken, error) {
	now = now.UTC()
	exp := now.Add(AccessTokenTTL)
	claims := jwt.MapClaims{
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
		"jti":      uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: time.Unix(exp.Unix(), 0).UTC()}, nil
}

// ParseAccessToken verifies the signature and expiry of raw as of now and
// returns the username it asserts.
func ParseAccessToken(secret, raw string, now time.Time) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject anything not signed with HMAC; HS256 is the only method issued.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", ErrInvalidToken
	}
	return username, nil
}
