// Package reference implements the lookup-table store: genders, disability
// categories and types, communities, assistance types and users. It serves
// both foreign-key existence checks and the reference-data CRUD.
package reference

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/pwdcare/registry-backend/internal/adapter/postgres"
	"github.com/pwdcare/registry-backend/internal/domain"
)

// Repo provides lookup-table persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new reference repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Existence checks (foreign key validation)
// ---------------------------------------------------------------------------

func (r *Repo) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return found, nil
}

func (r *Repo) GenderExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM genders WHERE id = $1)`, id)
}

func (r *Repo) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM disability_categories WHERE id = $1)`, id)
}

func (r *Repo) TypeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM disability_types WHERE id = $1)`, id)
}

// TypeBelongsToCategory reports whether the disability type exists AND is
// filed under the given category.
func (r *Repo) TypeBelongsToCategory(ctx context.Context, typeID, categoryID uuid.UUID) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM disability_types WHERE id = $1 AND category_id = $2)`,
		typeID, categoryID)
}

func (r *Repo) CommunityExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM communities WHERE id = $1)`, id)
}

func (r *Repo) AssistanceTypeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM assistance_types WHERE id = $1)`, id)
}

func (r *Repo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
}

// ---------------------------------------------------------------------------
// Name uniqueness (reference-data CRUD)
// ---------------------------------------------------------------------------

// nameExists runs a case-sensitive exact match against the current names of
// a lookup table, excluding the row being updated when excludeID is set.
func (r *Repo) nameExists(ctx context.Context, table, name string, excludeID *uuid.UUID) (bool, error) {
	// squirrel has no EXISTS shorthand; wrap the built subquery by hand.
	sub := postgres.Builder().Select("1").From(table).Where(sq.Eq{"name": name})
	if excludeID != nil {
		sub = sub.Where(sq.NotEq{"id": *excludeID})
	}
	subSQL, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("build name uniqueness query: %w", err)
	}
	return r.exists(ctx, "SELECT EXISTS ("+subSQL+")", args...)
}

func (r *Repo) CategoryNameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	return r.nameExists(ctx, "disability_categories", name, excludeID)
}

func (r *Repo) TypeNameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	return r.nameExists(ctx, "disability_types", name, excludeID)
}

func (r *Repo) CommunityNameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	return r.nameExists(ctx, "communities", name, excludeID)
}

func (r *Repo) AssistanceTypeNameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	return r.nameExists(ctx, "assistance_types", name, excludeID)
}

// ---------------------------------------------------------------------------
// Lookup-table CRUD
// ---------------------------------------------------------------------------

func (r *Repo) ListCategories(ctx context.Context) ([]domain.DisabilityCategory, error) {
	rows := make([]domain.DisabilityCategory, 0)
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT id, name FROM disability_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

func (r *Repo) CreateCategory(ctx context.Context, c *domain.DisabilityCategory) (*domain.DisabilityCategory, error) {
	c.ID = uuid.New()
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`INSERT INTO disability_categories (id, name) VALUES ($1, $2)`, c.ID, c.Name); err != nil {
		return nil, postgres.MapError(err, "disability_category", c.ID)
	}
	return c, nil
}

func (r *Repo) UpdateCategory(ctx context.Context, id uuid.UUID, name string) error {
	return r.updateName(ctx, "disability_categories", "disability_category", id, name)
}

func (r *Repo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.deleteRow(ctx, "disability_categories", "disability_category", id)
}

func (r *Repo) ListTypes(ctx context.Context, categoryID *uuid.UUID) ([]domain.DisabilityType, error) {
	builder := postgres.Builder().Select("id", "category_id", "name").
		From("disability_types").OrderBy("name")
	if categoryID != nil {
		builder = builder.Where(sq.Eq{"category_id": *categoryID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list types query: %w", err)
	}

	rows := make([]domain.DisabilityType, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	return rows, nil
}

func (r *Repo) CreateType(ctx context.Context, t *domain.DisabilityType) (*domain.DisabilityType, error) {
	t.ID = uuid.New()
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`INSERT INTO disability_types (id, category_id, name) VALUES ($1, $2, $3)`,
		t.ID, t.CategoryID, t.Name); err != nil {
		return nil, postgres.MapError(err, "disability_type", t.ID)
	}
	return t, nil
}

func (r *Repo) UpdateType(ctx context.Context, id uuid.UUID, name string) error {
	return r.updateName(ctx, "disability_types", "disability_type", id, name)
}

func (r *Repo) DeleteType(ctx context.Context, id uuid.UUID) error {
	return r.deleteRow(ctx, "disability_types", "disability_type", id)
}

func (r *Repo) ListCommunities(ctx context.Context) ([]domain.Community, error) {
	rows := make([]domain.Community, 0)
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT id, name FROM communities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	return rows, nil
}

func (r *Repo) CreateCommunity(ctx context.Context, c *domain.Community) (*domain.Community, error) {
	c.ID = uuid.New()
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`INSERT INTO communities (id, name) VALUES ($1, $2)`, c.ID, c.Name); err != nil {
		return nil, postgres.MapError(err, "community", c.ID)
	}
	return c, nil
}

func (r *Repo) UpdateCommunity(ctx context.Context, id uuid.UUID, name string) error {
	return r.updateName(ctx, "communities", "community", id, name)
}

func (r *Repo) DeleteCommunity(ctx context.Context, id uuid.UUID) error {
	return r.deleteRow(ctx, "communities", "community", id)
}

func (r *Repo) ListAssistanceTypes(ctx context.Context) ([]domain.AssistanceType, error) {
	rows := make([]domain.AssistanceType, 0)
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT id, name FROM assistance_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list assistance types: %w", err)
	}
	return rows, nil
}

func (r *Repo) CreateAssistanceType(ctx context.Context, a *domain.AssistanceType) (*domain.AssistanceType, error) {
	a.ID = uuid.New()
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`INSERT INTO assistance_types (id, name) VALUES ($1, $2)`, a.ID, a.Name); err != nil {
		return nil, postgres.MapError(err, "assistance_type", a.ID)
	}
	return a, nil
}

func (r *Repo) UpdateAssistanceType(ctx context.Context, id uuid.UUID, name string) error {
	return r.updateName(ctx, "assistance_types", "assistance_type", id, name)
}

func (r *Repo) DeleteAssistanceType(ctx context.Context, id uuid.UUID) error {
	return r.deleteRow(ctx, "assistance_types", "assistance_type", id)
}

// GetUser returns a registry user by id, for naming log entries.
func (r *Repo) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &u,
		`SELECT id, full_name, role FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// Shared statement helpers
// ---------------------------------------------------------------------------

func (r *Repo) updateName(ctx context.Context, table, entity string, id uuid.UUID, name string) error {
	query, args, err := postgres.Builder().Update(table).
		Set("name", name).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update %s query: %w", entity, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) deleteRow(ctx context.Context, table, entity string, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", entity, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
