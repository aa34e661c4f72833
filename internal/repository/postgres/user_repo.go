package postgres

import (
	"context"
	"errors"

	"github.com/abhi1083/simple-crud-ops/internal/errs"
	"github.com/abhi1083/simple-crud-ops/internal/model"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. The unique index on email makes the
// existence check and the insert a single atomic step.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, first_name, last_name, email, pwd_hash)
VALUES ($1, $2, $3, $4, $5)`
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.FirstName, u.LastName, u.Email, u.PwdHash)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return storeErr(err)
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, first_name, last_name, email, pwd_hash, created_at
FROM users WHERE email=$1`
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()
	row := r.db.Pool.QueryRow(ctx, q, email)
	var u model.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PwdHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return &u, nil
}
