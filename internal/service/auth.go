// Package service contains application services for authentication and templates.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/abhi1083/simple-crud-ops/internal/crypto"
	"github.com/abhi1083/simple-crud-ops/internal/errs"
	"github.com/abhi1083/simple-crud-ops/internal/model"
	"github.com/abhi1083/simple-crud-ops/internal/repository"
	"github.com/abhi1083/simple-crud-ops/internal/token"
)

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, firstName, lastName, email, password string) (userID string, err error)
	// Authenticate verifies credentials and issues an access token.
	Authenticate(ctx context.Context, email, password string) (accessToken string, err error)
}

type AuthServiceImpl struct {
	users      repository.UserRepository
	codec      *token.Codec
	accessTTL  time.Duration
	bcryptCost int
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, codec *token.Codec, accessTTL time.Duration, bcryptCost int) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, codec: codec, accessTTL: accessTTL, bcryptCost: bcryptCost}
}

// Register hashes the password and creates the user record. Duplicate emails
// surface as errs.ErrAlreadyExists from the store's uniqueness constraint.
func (s *AuthServiceImpl) Register(ctx context.Context, firstName, lastName, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("empty email/password")
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	pwdHash, err := pkgcrypto.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	u := &model.User{
		ID:        uid,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		PwdHash:   pwdHash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return uid.String(), nil
}

// Authenticate verifies the password and issues a token with the user id as
// subject. Unknown email and wrong password produce the identical outcome so
// the response shape cannot be used to probe which accounts exist.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrStoreUnavailable) {
			return "", err
		}
		// any lookup failure masked as bad credentials
		return "", errs.ErrInvalidCredentials
	}
	if !pkgcrypto.VerifyPassword(password, u.PwdHash) {
		return "", errs.ErrInvalidCredentials
	}

	signed, _, err := s.codec.Issue(u.ID, s.accessTTL)
	if err != nil {
		return "", err
	}
	return signed, nil
}
