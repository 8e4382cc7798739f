// Package refdata implements the reference-data CRUD: disability categories
// and types, communities and assistance types. Names are unique per table
// with a case-sensitive exact match, excluding the row being updated.
package refdata

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// referenceStore defines the lookup-table store interface needed by the service.
type referenceStore interface {
	ListCategories(ctx context.Context) ([]domain.DisabilityCategory, error)
	CreateCategory(ctx context.Context, c *domain.DisabilityCategory) (*domain.DisabilityCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CategoryNameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)

	ListTypes(ctx context.Context, categoryID *uuid.UUID) ([]domain.DisabilityType, error)
	CreateType(ctx context.Context, t *domain.DisabilityType) (*domain.DisabilityType, error)
	UpdateType(ctx context.Context, id uuid.UUID, name string) error
	DeleteType(ctx context.Context, id uuid.UUID) error
	TypeNameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	ListCommunities(ctx context.Context) ([]domain.Community, error)
	CreateCommunity(ctx context.Context, c *domain.Community) (*domain.Community, error)
	UpdateCommunity(ctx context.Context, id uuid.UUID, name string) error
	DeleteCommunity(ctx context.Context, id uuid.UUID) error
	CommunityNameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	ListAssistanceTypes(ctx context.Context) ([]domain.AssistanceType, error)
	CreateAssistanceType(ctx context.Context, a *domain.AssistanceType) (*domain.AssistanceType, error)
	UpdateAssistanceType(ctx context.Context, id uuid.UUID, name string) error
	DeleteAssistanceType(ctx context.Context, id uuid.UUID) error
	AssistanceTypeNameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

// Service implements reference-data operations.
type Service struct {
	log   *slog.Logger
	store referenceStore
}

// NewService creates a new refdata service instance.
func NewService(logger *slog.Logger, store referenceStore) *Service {
	return &Service{
		log:   logger.With("service", "refdata"),
		store: store,
	}
}

// checkName rejects blank names and duplicates within one lookup table.
func checkName(ctx context.Context, name string, excludeID *uuid.UUID,
	exists func(context.Context, string, *uuid.UUID) (bool, error)) error {

	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "required")
	}
	taken, err := exists(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("name uniqueness check: %w", err)
	}
	if taken {
		return fmt.Errorf("name %q: %w", name, domain.ErrAlreadyExists)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Disability categories
// ---------------------------------------------------------------------------

func (s *Service) ListCategories(ctx context.Context) ([]domain.DisabilityCategory, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.DisabilityCategory, error) {
	if err := checkName(ctx, name, nil, s.store.CategoryNameExists); err != nil {
		return nil, err
	}
	created, err := s.store.CreateCategory(ctx, &domain.DisabilityCategory{Name: name})
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "disability category created", "category_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, name string) error {
	if err := checkName(ctx, name, &id, s.store.CategoryNameExists); err != nil {
		return err
	}
	return s.store.UpdateCategory(ctx, id, name)
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCategory(ctx, id)
}

// ---------------------------------------------------------------------------
// Disability types
// ---------------------------------------------------------------------------

func (s *Service) ListTypes(ctx context.Context, categoryID *uuid.UUID) ([]domain.DisabilityType, error) {
	return s.store.ListTypes(ctx, categoryID)
}

// CreateType inserts a disability type. The category must resolve: a type
// filed under a nonexistent category is a referential integrity failure,
// not a validation one.
func (s *Service) CreateType(ctx context.Context, categoryID uuid.UUID, name string) (*domain.DisabilityType, error) {
	if err := checkName(ctx, name, nil, s.store.TypeNameExists); err != nil {
		return nil, err
	}

	found, err := s.store.CategoryExists(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("refdata.CreateType: category lookup: %w", err)
	}
	if !found {
		return nil, domain.NewReferentialIntegrityError(domain.Violation{
			Reference: "disability_category",
			ID:        categoryID,
			Message:   "does not exist",
		})
	}

	created, err := s.store.CreateType(ctx, &domain.DisabilityType{CategoryID: categoryID, Name: name})
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "disability type created", "type_id", created.ID, "category_id", categoryID, "name", created.Name)
	return created, nil
}

func (s *Service) UpdateType(ctx context.Context, id uuid.UUID, name string) error {
	if err := checkName(ctx, name, &id, s.store.TypeNameExists); err != nil {
		return err
	}
	return s.store.UpdateType(ctx, id, name)
}

func (s *Service) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteType(ctx, id)
}

// ---------------------------------------------------------------------------
// Communities
// ---------------------------------------------------------------------------

func (s *Service) ListCommunities(ctx context.Context) ([]domain.Community, error) {
	return s.store.ListCommunities(ctx)
}

func (s *Service) CreateCommunity(ctx context.Context, name string) (*domain.Community, error) {
	if err := checkName(ctx, name, nil, s.store.CommunityNameExists); err != nil {
		return nil, err
	}
	return s.store.CreateCommunity(ctx, &domain.Community{Name: name})
}

func (s *Service) UpdateCommunity(ctx context.Context, id uuid.UUID, name string) error {
	if err := checkName(ctx, name, &id, s.store.CommunityNameExists); err != nil {
		return err
	}
	return s.store.UpdateCommunity(ctx, id, name)
}

func (s *Service) DeleteCommunity(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCommunity(ctx, id)
}

// ---------------------------------------------------------------------------
// Assistance types
// ---------------------------------------------------------------------------

func (s *Service) ListAssistanceTypes(ctx context.Context) ([]domain.AssistanceType, error) {
	return s.store.ListAssistanceTypes(ctx)
}

func (s *Service) CreateAssistanceType(ctx context.Context, name string) (*domain.AssistanceType, error) {
	if err := checkName(ctx, name, nil, s.store.AssistanceTypeNameExists); err != nil {
		return nil, err
	}
	return s.store.CreateAssistanceType(ctx, &domain.AssistanceType{Name: name})
}

func (s *Service) UpdateAssistanceType(ctx context.Context, id uuid.UUID, name string) error {
	if err := checkName(ctx, name, &id, s.store.AssistanceTypeNameExists); err != nil {
		return err
	}
	return s.store.UpdateAssistanceType(ctx, id, name)
}

func (s *Service) DeleteAssistanceType(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteAssistanceType(ctx, id)
}
