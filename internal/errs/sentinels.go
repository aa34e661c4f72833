// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not
	// owned by the caller; the two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCredentials indicates a failed login. Unknown email and wrong
	// password both map here so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable indicates the backing store did not answer in time.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Token verification outcomes. Kept distinct so the boundary can report
// missing vs expired vs invalid, even though all map to the same HTTP status.
var (
	// ErrMissingToken indicates no token was presented.
	ErrMissingToken = errors.New("token missing")

	// ErrTokenMalformed indicates the token could not be decoded or declares
	// an unexpected signing algorithm.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrBadSignature indicates the signature does not verify under the
	// configured secret.
	ErrBadSignature = errors.New("bad signature")

	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)
