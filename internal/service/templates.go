package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/abhi1083/simple-crud-ops/internal/model"
	"github.com/abhi1083/simple-crud-ops/internal/repository"
)

// TemplateService defines owner-scoped operations over templates. The owner
// id always comes from the authenticated subject, never from request input.
type TemplateService interface {
	// Create stores a new template for the owner and returns its id.
	Create(ctx context.Context, ownerID uuid.UUID, payload model.Payload) (uuid.UUID, error)
	// List returns all templates owned by ownerID.
	List(ctx context.Context, ownerID uuid.UUID) ([]model.TemplateSummary, error)
	// Get returns a single template by id.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Template, error)
	// Update shallow-merges partial into an existing template's payload.
	Update(ctx context.Context, ownerID, id uuid.UUID, partial model.Payload) error
	// Delete removes a template.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type TemplateServiceImpl struct {
	repo repository.TemplateRepository
}

// NewTemplateService constructs TemplateService.
func NewTemplateService(repo repository.TemplateRepository) *TemplateServiceImpl {
	return &TemplateServiceImpl{repo: repo}
}

// Create validates input and delegates to the repository.
func (s *TemplateServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, payload model.Payload) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, errors.New("validation: empty ownerID")
	}
	if payload == nil {
		return uuid.Nil, errors.New("validation: nil payload")
	}
	return s.repo.Create(ctx, ownerID, payload)
}

// List returns the owner's templates, store order.
func (s *TemplateServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]model.TemplateSummary, error) {
	if ownerID == uuid.Nil {
		return nil, errors.New("validation: empty ownerID")
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get fetches a single template by id.
func (s *TemplateServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Template, error) {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, errors.New("validation: empty ownerID/id")
	}
	return s.repo.Get(ctx, ownerID, id)
}

// Update applies a shallow merge to an existing template.
func (s *TemplateServiceImpl) Update(ctx context.Context, ownerID, id uuid.UUID, partial model.Payload) error {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return errors.New("validation: empty ownerID/id")
	}
	if len(partial) == 0 {
		return errors.New("validation: empty update")
	}
	return s.repo.Update(ctx, ownerID, id, partial)
}

// Delete removes a template within the owner's scope.
func (s *TemplateServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil || id == uuid.Nil {
		return errors.New("validation: empty ownerID/id")
	}
	return s.repo.Delete(ctx, ownerID, id)
}
