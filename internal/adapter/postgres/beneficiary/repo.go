// Package beneficiary implements the PWD record store using PostgreSQL.
// The inline documents list is JSONB on the row: it is marshalled on write
// and parsed on read, so callers never see the serialized string.
package beneficiary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/pwdcare/registry-backend/internal/adapter/postgres"
	"github.com/pwdcare/registry-backend/internal/domain"
)

const table = "beneficiaries"

var columns = []string{
	"id", "registered_by", "quarter", "year", "gender_id", "full_name",
	"occupation", "contact_number", "birth_date", "age", "category_id",
	"type_id", "id_number", "community_id", "assistance_type_id", "status",
	"profile_image_path", "documents", "created_at",
}

// Repo provides beneficiary persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new beneficiary repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a beneficiary row (without child collections) by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get beneficiary query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...)
	b, err := scanBeneficiary(row)
	if err != nil {
		return nil, postgres.MapError(err, "beneficiary", id)
	}

	return b, nil
}

// Create inserts a new beneficiary row and returns it.
func (r *Repo) Create(ctx context.Context, b *domain.Beneficiary) (*domain.Beneficiary, error) {
	if strings.TrimSpace(b.FullName) == "" {
		return nil, domain.NewValidationError("full_name", "required")
	}

	b.ID = uuid.New()
	b.CreatedAt = time.Now().UTC()
	if b.Status == "" {
		b.Status = domain.BeneficiaryStatusPending
	}

	docsJSON, err := marshalDocuments(b.Documents)
	if err != nil {
		return nil, err
	}

	query, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(
			b.ID, b.RegisteredBy, b.Quarter, b.Year, b.GenderID, b.FullName,
			b.Occupation, b.ContactNumber, b.BirthDate, b.Age, b.CategoryID,
			b.TypeID, b.IDNumber, b.CommunityID, b.AssistanceTypeID, b.Status,
			b.ProfileImagePath, docsJSON, b.CreatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert beneficiary query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "beneficiary", b.ID)
	}

	return b, nil
}

// Update applies the present fields of params to an existing row.
// Absent fields stay untouched. Returns domain.ErrNotFound if the id does
// not resolve; an empty params is a no-op.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.BeneficiaryUpdateParams) error {
	set := map[string]any{}
	if params.Quarter != nil {
		set["quarter"] = *params.Quarter
	}
	if params.Year != nil {
		set["year"] = *params.Year
	}
	if params.GenderID != nil {
		set["gender_id"] = *params.GenderID
	}
	if params.FullName != nil {
		if strings.TrimSpace(*params.FullName) == "" {
			return domain.NewValidationError("full_name", "required")
		}
		set["full_name"] = *params.FullName
	}
	if params.Occupation != nil {
		set["occupation"] = *params.Occupation
	}
	if params.ContactNumber != nil {
		set["contact_number"] = *params.ContactNumber
	}
	if params.BirthDate != nil {
		set["birth_date"] = *params.BirthDate
	}
	if params.Age != nil {
		set["age"] = *params.Age
	}
	if params.CategoryID != nil {
		set["category_id"] = *params.CategoryID
	}
	if params.TypeID != nil {
		set["type_id"] = *params.TypeID
	}
	if params.IDNumber != nil {
		set["id_number"] = *params.IDNumber
	}
	if params.CommunityID != nil {
		set["community_id"] = *params.CommunityID
	}
	if params.AssistanceTypeID != nil {
		set["assistance_type_id"] = *params.AssistanceTypeID
	}
	if params.Status != nil {
		set["status"] = *params.Status
	}
	if params.ProfileImagePath != nil {
		set["profile_image_path"] = *params.ProfileImagePath
	}
	if params.Documents != nil {
		docsJSON, err := marshalDocuments(params.Documents)
		if err != nil {
			return err
		}
		set["documents"] = docsJSON
	}

	if len(set) == 0 {
		return nil
	}

	query, args, err := postgres.Builder().Update(table).SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update beneficiary query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "beneficiary", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("beneficiary %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetStatus applies a status value. Set membership is the workflow engine's
// responsibility; this only touches the row.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.BeneficiaryStatus) error {
	query, args, err := postgres.Builder().Update(table).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "beneficiary", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("beneficiary %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the parent row. Child rows must already be gone; the
// coordinator owns that ordering.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete beneficiary query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "beneficiary", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("beneficiary %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanBeneficiary(row pgx.Row) (*domain.Beneficiary, error) {
	var (
		b        domain.Beneficiary
		docsJSON []byte
	)

	err := row.Scan(
		&b.ID, &b.RegisteredBy, &b.Quarter, &b.Year, &b.GenderID, &b.FullName,
		&b.Occupation, &b.ContactNumber, &b.BirthDate, &b.Age, &b.CategoryID,
		&b.TypeID, &b.IDNumber, &b.CommunityID, &b.AssistanceTypeID, &b.Status,
		&b.ProfileImagePath, &docsJSON, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(docsJSON) > 0 {
		if err := json.Unmarshal(docsJSON, &b.Documents); err != nil {
			return nil, fmt.Errorf("beneficiary %s unmarshal documents: %w", b.ID, err)
		}
	}

	return &b, nil
}

func marshalDocuments(docs []domain.DocumentRef) ([]byte, error) {
	if docs == nil {
		return nil, nil
	}
	out, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}
	return out, nil
}
