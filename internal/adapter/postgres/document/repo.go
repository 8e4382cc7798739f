// Package document implements the supporting-document store using
// PostgreSQL. Documents are keyed by the polymorphic (related_type,
// related_id) owner pair; the literals are "pwd" and "assistance".
package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/pwdcare/registry-backend/internal/adapter/postgres"
	"github.com/pwdcare/registry-backend/internal/domain"
)

const table = "supporting_documents"

var columns = []string{"id", "related_type", "related_id", "stored_name", "doc_type", "mime_type", "size_bytes", "uploaded_by", "uploaded_at"}

// Repo provides supporting-document persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListByOwner returns all documents attached to a beneficiary or an
// assistance request, newest first.
func (r *Repo) ListByOwner(ctx context.Context, owner domain.DocumentOwner) ([]domain.SupportingDocument, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"related_type": owner.Kind, "related_id": owner.ID}).
		OrderBy("uploaded_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents query: %w", err)
	}

	docs := make([]domain.SupportingDocument, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &docs, query, args...); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// GetByID returns a document by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupportingDocument, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get document query: %w", err)
	}

	var d domain.SupportingDocument
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &d, query, args...); err != nil {
		return nil, postgres.MapError(err, "document", id)
	}

	return &d, nil
}

// Create inserts a new document row. The stored name and a valid owner are
// mandatory; the stored name is the opaque path from the file store, never
// the client filename.
func (r *Repo) Create(ctx context.Context, d *domain.SupportingDocument) (*domain.SupportingDocument, error) {
	if strings.TrimSpace(d.StoredName) == "" {
		return nil, domain.NewValidationError("stored_name", "required")
	}
	if !d.OwnerKind.IsValid() {
		return nil, domain.NewValidationError("related_type", "must be one of pwd, assistance")
	}
	if d.OwnerID == uuid.Nil {
		return nil, domain.NewValidationError("related_id", "required")
	}
	if d.UploadedBy == uuid.Nil {
		return nil, domain.NewValidationError("uploaded_by", "required")
	}

	d.ID = uuid.New()
	d.UploadedAt = time.Now().UTC()

	query, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(d.ID, d.OwnerKind, d.OwnerID, d.StoredName, d.DocType, d.MimeType, d.SizeBytes, d.UploadedBy, d.UploadedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert document query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "document", d.ID)
	}

	return d, nil
}

// Update applies the present fields of params to an existing document. Only
// the declared type and MIME type are updatable; the stored name and owner
// key never change after upload.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.DocumentUpdateParams) (*domain.SupportingDocument, error) {
	set := map[string]any{}
	if params.DocType != nil {
		set["doc_type"] = *params.DocType
	}
	if params.MimeType != nil {
		set["mime_type"] = *params.MimeType
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := postgres.Builder().Update(table).SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update document query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a document row. Returns domain.ErrNotFound if missing.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete document query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAllByOwner removes every document attached to the owner and returns
// the number of rows deleted. Zero rows is not an error.
func (r *Repo) DeleteAllByOwner(ctx context.Context, owner domain.DocumentOwner) (int64, error) {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"related_type": owner.Kind, "related_id": owner.ID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete documents query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "document", owner.ID)
	}

	return tag.RowsAffected(), nil
}
