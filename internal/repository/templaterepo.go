package repository

import (
	"context"

	"github.com/abhi1083/simple-crud-ops/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TemplateRepository provides owner-scoped access to templates. Every read
// and mutation is keyed by (template id, owner id) in a single conditional
// operation; a template that exists under another owner is indistinguishable
// from one that does not exist.
type TemplateRepository interface {
	// Create stores payload under ownerID and returns the assigned id.
	// Deliberately non-idempotent: identical concurrent creates yield
	// distinct templates.
	Create(ctx context.Context, ownerID uuid.UUID, payload model.Payload) (uuid.UUID, error)

	// ListByOwner returns all templates owned by ownerID, store order.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.TemplateSummary, error)

	// Get returns a single template by id within the owner's scope.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Template, error)

	// Update shallow-merges partial into the stored payload: matching
	// top-level keys are overwritten, others untouched.
	Update(ctx context.Context, ownerID, id uuid.UUID, partial model.Payload) error

	// Delete removes the template within the owner's scope.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
