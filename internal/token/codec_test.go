package token

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/abhi1083/simple-crud-ops/internal/errs"
)

var testSecret = []byte("test-secret")

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	c := NewCodec(testSecret)
	subject := uuid.Must(uuid.NewV4())

	signed, exp, err := c.Issue(subject, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := c.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, subject, claims.Subject)
	require.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
	require.False(t, claims.IssuedAt.IsZero())
}

func TestCodec_Verify_Expired(t *testing.T) {
	c := NewCodec(testSecret)
	subject := uuid.Must(uuid.NewV4())

	signed, _, err := c.Issue(subject, -time.Minute)
	require.NoError(t, err)

	_, err = c.Verify(signed)
	require.ErrorIs(t, err, errs.ErrTokenExpired)
}

func TestCodec_Verify_BadSignature(t *testing.T) {
	other := NewCodec([]byte("another-secret"))
	subject := uuid.Must(uuid.NewV4())

	signed, _, err := other.Issue(subject, time.Hour)
	require.NoError(t, err)

	_, err = NewCodec(testSecret).Verify(signed)
	require.ErrorIs(t, err, errs.ErrBadSignature)
}

func TestCodec_Verify_WrongAlgorithmIsMalformed(t *testing.T) {
	c := NewCodec(testSecret)
	subject := uuid.Must(uuid.NewV4())
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	// HS512 signed with the correct secret must still be rejected.
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = c.Verify(hs512)
	require.ErrorIs(t, err, errs.ErrTokenMalformed)

	// alg=none must never be accepted.
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Verify(none)
	require.ErrorIs(t, err, errs.ErrTokenMalformed)
}

func TestCodec_Verify_Garbage(t *testing.T) {
	c := NewCodec(testSecret)
	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := c.Verify(raw)
		require.ErrorIs(t, err, errs.ErrTokenMalformed, "raw=%q", raw)
	}
}

func TestCodec_Verify_NonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "alice@example.com",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = NewCodec(testSecret).Verify(signed)
	require.ErrorIs(t, err, errs.ErrTokenMalformed)
}

func TestCodec_Verify_MissingExpiry(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:  uuid.Must(uuid.NewV4()).String(),
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = NewCodec(testSecret).Verify(signed)
	require.ErrorIs(t, err, errs.ErrTokenMalformed)
}
