package guardian

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

func ptr[T any](v T) *T { return &v }

func guardianRow(id, pwdID uuid.UUID, fullName string) []any {
	return []any{id, pwdID, fullName, ptr("mother"), ptr("0917"), ptr("Zone 4"), time.Now().UTC()}
}

func TestRepo_Create(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	pwdID := uuid.New()
	relationship, contact, address := ptr("mother"), ptr("0917"), ptr("Zone 4")

	mock.ExpectExec("INSERT INTO guardians").
		WithArgs(pgxmock.AnyArg(), pwdID, "Maria Santos", relationship, contact, address, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, err := repo.Create(context.Background(), &domain.Guardian{
		PWDID:         pwdID,
		FullName:      "Maria Santos",
		Relationship:  relationship,
		ContactNumber: contact,
		Address:       address,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create_MissingName(t *testing.T) {
	t.Parallel()

	repo := New(newMock(t))

	_, err := repo.Create(context.Background(), &domain.Guardian{PWDID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepo_Create_MissingParent(t *testing.T) {
	t.Parallel()

	repo := New(newMock(t))

	_, err := repo.Create(context.Background(), &domain.Guardian{FullName: "Maria Santos"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepo_ListByParent(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	pwdID := uuid.New()
	rows := pgxmock.NewRows(columns).
		AddRow(guardianRow(uuid.New(), pwdID, "Maria Santos")...).
		AddRow(guardianRow(uuid.New(), pwdID, "Jose Santos")...)

	mock.ExpectQuery("SELECT .+ FROM guardians").
		WithArgs(pwdID).
		WillReturnRows(rows)

	got, err := repo.ListByParent(context.Background(), pwdID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Maria Santos", got[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListByParent_Empty(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	pwdID := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM guardians").
		WithArgs(pwdID).
		WillReturnRows(pgxmock.NewRows(columns))

	got, err := repo.ListByParent(context.Background(), pwdID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepo_Update_Partial(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	id := uuid.New()
	name := "Maria S. Cruz"

	mock.ExpectExec("UPDATE guardians").
		WithArgs(name, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT .+ FROM guardians").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(guardianRow(id, uuid.New(), name)...))

	got, err := repo.Update(context.Background(), id, domain.GuardianUpdateParams{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	id := uuid.New()
	name := "Maria"

	mock.ExpectExec("UPDATE guardians").
		WithArgs(name, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := repo.Update(context.Background(), id, domain.GuardianUpdateParams{FullName: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Update_EmptyParamsReadsBack(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	id := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM guardians").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(guardianRow(id, uuid.New(), "Maria Santos")...))

	got, err := repo.Update(context.Background(), id, domain.GuardianUpdateParams{})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_DeleteAllByParent(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	pwdID := uuid.New()
	mock.ExpectExec("DELETE FROM guardians").
		WithArgs(pwdID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.DeleteAllByParent(context.Background(), pwdID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
