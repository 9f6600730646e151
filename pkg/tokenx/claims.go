package tokenx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session tokens.
// Short enough that a stolen token goes stale quickly, long enough
// that a user is not forced back through login mid-session.
const DefaultSessionTTL = 30 * time.Minute

// Claims are the signed contents of every token this service issues.
// The origin is part of the signed payload so a token minted for one
// client application cannot be replayed through another.
type Claims struct {
	jwt.RegisteredClaims

	// Origin identifies the client application the token was issued to.
	Origin string `json:"origin,omitempty"`
}

// newSessionClaims builds the claims for a finite-lifetime session token.
func newSessionClaims(login, origin, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Origin: origin,
	}
}

// newLogoutClaims builds the claims for a logout token. It carries the
// same subject and origin but no expiry: the holder keeps a decodable
// credential for traceability, and the connection flag is what makes it
// non-authenticating.
func newLogoutClaims(login, origin, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  login,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       newJTI(),
		},
		Origin: origin,
	}
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
