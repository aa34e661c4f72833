// Package token issues and verifies signed access tokens.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/abhi1083/simple-crud-ops/internal/errs"
)

// Claims is the verified payload of a token.
type Claims struct {
	Subject   uuid.UUID // authenticated user id
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies HS256 JWTs with a single shared secret.
// Verification is a pure computation and safe under arbitrary concurrency.
type Codec struct {
	secret []byte
}

// NewCodec constructs a Codec with the given signing secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Issue creates a signed token for subject expiring at now + ttl.
func (c *Codec) Issue(subject uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	return signed, exp, err
}

// Verify decodes raw and returns its claims. The signing method is pinned to
// HS256: a token declaring any other (or no) algorithm is rejected as
// malformed, never verified under a substituted method. Expiry is checked
// with no leeway; a token at or past its expiry instant is expired.
func (c *Codec) Verify(raw string) (Claims, error) {
	var rc jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(raw, &rc, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errs.ErrTokenMalformed
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, errs.ErrTokenMalformed):
		return Claims{}, errs.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, errs.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, errs.ErrBadSignature
	case err != nil, !parsed.Valid:
		return Claims{}, errs.ErrTokenMalformed
	}

	sub, err := uuid.FromString(rc.Subject)
	if err != nil {
		return Claims{}, errs.ErrTokenMalformed
	}
	out := Claims{Subject: sub, ExpiresAt: rc.ExpiresAt.Time}
	if rc.IssuedAt != nil {
		out.IssuedAt = rc.IssuedAt.Time
	}
	return out, nil
}
