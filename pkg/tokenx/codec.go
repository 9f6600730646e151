// Package tokenx converts between (login, origin) pairs and signed bearer
// tokens. It is a pure codec: no stored state, no side effects beyond
// reading the clock.
package tokenx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only failure Verify reports. Signature, expiry
// and origin failures are deliberately collapsed into it so callers
// cannot learn which check rejected a token.
var ErrInvalidToken = errors.New("tokenx: invalid token")

// MinSecretLen is the smallest accepted HMAC secret, in bytes.
const MinSecretLen = 32

// Codec signs and verifies tokens with a single process-wide HS256 secret.
// The zero value is not usable; construct with NewCodec.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCodec validates the signing configuration and returns a ready Codec.
// ttl is the lifetime applied to session tokens; logout tokens never expire.
func NewCodec(secret []byte, issuer string, ttl time.Duration) (*Codec, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("tokenx: secret must be at least %d bytes, got %d", MinSecretLen, len(secret))
	}
	if issuer == "" {
		return nil, errors.New("tokenx: issuer is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Codec{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// SessionTTL reports the configured session token lifetime.
func (c *Codec) SessionTTL() time.Duration { return c.ttl }

// Generate mints a session token for login, bound to origin, expiring
// after the configured lifetime.
func (c *Codec) Generate(login, origin string) (string, error) {
	return c.sign(newSessionClaims(login, origin, c.issuer, c.ttl, time.Now().UTC()))
}

// NoLifetimeToken mints a logout token for login, bound to origin, with
// no expiry. It decodes and verifies forever but never authorizes on its
// own: the caller's connection flag gates that.
func (c *Codec) NoLifetimeToken(login, origin string) (string, error) {
	return c.sign(newLogoutClaims(login, origin, c.issuer, time.Now().UTC()))
}

// Verify checks the token's signature, its expiry when one is embedded,
// and that its embedded origin equals origin exactly. On success it
// returns the subject login. Every failure is ErrInvalidToken.
func (c *Codec) Verify(tokenStr, origin string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	if claims.Origin != origin {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func (c *Codec) sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("tokenx: sign: %w", err)
	}
	return signed, nil
}
