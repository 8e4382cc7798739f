package document

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwdcare/registry-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func TestRepo_Create_RejectsInvalidOwnerKind(t *testing.T) {
	t.Parallel()

	repo := New(newMock(t))

	_, err := repo.Create(context.Background(), &domain.SupportingDocument{
		OwnerKind:  domain.OwnerKind("beneficiary"),
		OwnerID:    uuid.New(),
		StoredName: "abc.pdf",
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepo_Create_BeneficiaryOwner(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	ownerID := uuid.New()
	docType, mimeType := "medical", "application/pdf"

	mock.ExpectExec("INSERT INTO supporting_documents").
		WithArgs(pgxmock.AnyArg(), domain.OwnerKindPWD, ownerID, "abc.pdf",
			&docType, &mimeType, int64(2048), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, err := repo.Create(context.Background(), &domain.SupportingDocument{
		OwnerKind:  domain.OwnerKindPWD,
		OwnerID:    ownerID,
		StoredName: "abc.pdf",
		DocType:    &docType,
		MimeType:   &mimeType,
		SizeBytes:  2048,
		UploadedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListByOwner_FiltersByDiscriminator(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	owner := domain.AssistanceOwner(uuid.New())
	docType, mimeType := "request", "application/pdf"
	rows := pgxmock.NewRows(columns).
		AddRow(uuid.New(), domain.OwnerKindAssistance, owner.ID, "req.pdf",
			&docType, &mimeType, int64(512), uuid.New(), time.Now().UTC())

	mock.ExpectQuery("SELECT .+ FROM supporting_documents").
		WithArgs(owner.ID, owner.Kind).
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.OwnerKindAssistance, got[0].OwnerKind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_TouchesOnlyPresentFields(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	id := uuid.New()
	docType := "barangay certificate"

	mock.ExpectExec("UPDATE supporting_documents SET doc_type").
		WithArgs(docType, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mimeType := "application/pdf"
	rows := pgxmock.NewRows(columns).
		AddRow(id, domain.OwnerKindPWD, uuid.New(), "abc.pdf",
			&docType, &mimeType, int64(2048), uuid.New(), time.Now().UTC())
	mock.ExpectQuery("SELECT .+ FROM supporting_documents").
		WithArgs(id).
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), id, domain.DocumentUpdateParams{DocType: &docType})
	require.NoError(t, err)
	require.NotNil(t, got.DocType)
	assert.Equal(t, docType, *got.DocType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_EmptyParamsReadsBack(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	id := uuid.New()
	rows := pgxmock.NewRows(columns).
		AddRow(id, domain.OwnerKindPWD, uuid.New(), "abc.pdf",
			(*string)(nil), (*string)(nil), int64(100), uuid.New(), time.Now().UTC())
	mock.ExpectQuery("SELECT .+ FROM supporting_documents").
		WithArgs(id).
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), id, domain.DocumentUpdateParams{})
	require.NoError(t, err)
	assert.Equal(t, "abc.pdf", got.StoredName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_DeleteAllByOwner(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	owner := domain.BeneficiaryOwner(uuid.New())
	mock.ExpectExec("DELETE FROM supporting_documents").
		WithArgs(owner.ID, owner.Kind).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	n, err := repo.DeleteAllByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
