package postgres

import (
	"context"
	"errors"

	"github.com/abhi1083/simple-crud-ops/internal/errs"
	"github.com/abhi1083/simple-crud-ops/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// TemplateRepo implements TemplateRepository using PostgreSQL. Payloads live
// in a jsonb column; every scoped operation is one statement conditioned on
// id AND owner_id, so ownership never changes between a check and a write.
type TemplateRepo struct{ db *DB }

// NewTemplateRepo constructs a template repository.
func NewTemplateRepo(db *DB) *TemplateRepo { return &TemplateRepo{db: db} }

// Create inserts a new template and returns the store-assigned id.
func (r *TemplateRepo) Create(ctx context.Context, ownerID uuid.UUID, payload model.Payload) (uuid.UUID, error) {
	const q = `
INSERT INTO templates (owner_id, payload)
VALUES ($1, $2)
RETURNING id`
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()
	var id uuid.UUID
	if err := r.db.Pool.QueryRow(ctx, q, ownerID, payload).Scan(&id); err != nil {
		return uuid.Nil, storeErr(err)
	}
	return id, nil
}

// ListByOwner returns all templates for the owner in store order.
func (r *TemplateRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.TemplateSummary, error) {
	const q = `SELECT id, payload FROM templates WHERE owner_id=$1`
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := []model.TemplateSummary{}
	for rows.Next() {
		var s model.TemplateSummary
		if err := rows.Scan(&s.ID, &s.Payload); err != nil {
			return nil, storeErr(err)
		}
		out = append(out, s)
	}
	return out, storeErr(rows.Err())
}

// Get returns a single template within the owner's scope. A template owned
// by someone else scans as no rows, same as one that does not exist.
func (r *TemplateRepo) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Template, error) {
	const q = `
SELECT id, owner_id, payload, created_at, updated_at
FROM templates WHERE id=$1 AND owner_id=$2`
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()
	row := r.db.Pool.QueryRow(ctx, q, id, ownerID)
	var t model.Template
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Payload, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return &t, nil
}

// Update shallow-merges partial into the stored payload. jsonb || overwrites
// matching top-level keys and keeps the rest, in the same conditional UPDATE
// that checks ownership.
func (r *TemplateRepo) Update(ctx context.Context, ownerID, id uuid.UUID, partial model.Payload) error {
	const q = `
UPDATE templates
SET payload = payload || $3, updated_at = now()
WHERE id=$1 AND owner_id=$2`
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()
	tag, err := r.db.Pool.Exec(ctx, q, id, ownerID, partial)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the template within the owner's scope.
func (r *TemplateRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const q = `DELETE FROM templates WHERE id=$1 AND owner_id=$2`
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()
	tag, err := r.db.Pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
