package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo carries the claims hints extracted from a stored bearer token.
// The token is treated as opaque for authentication purposes; the claims are
// read without signature verification purely as local hints (expiry logging,
// opportunistic refresh decisions). The server remains the authority.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ParseTokenInfo extracts claims hints from a JWT-shaped token. Returns an
// error for tokens that are not parseable as JWTs; callers treat that as
// "no hints available", not as an invalid credential.
func ParseTokenInfo(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// Expired reports whether the token carries an expiry in the past. Tokens
// without an exp claim never report expired.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}
