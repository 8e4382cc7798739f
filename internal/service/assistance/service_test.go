package assistance

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwdcare/registry-backend/internal/domain"
)

type requestRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.AssistanceRequest, error)
	ListByBeneficiaryFunc func(ctx context.Context, pwdID uuid.UUID) ([]domain.AssistanceRequest, error)
	CreateFunc            func(ctx context.Context, req *domain.AssistanceRequest) (*domain.AssistanceRequest, error)
	UpdateFunc            func(ctx context.Context, id uuid.UUID, params domain.AssistanceRequestUpdateParams) (*domain.AssistanceRequest, error)
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error

	UpdateParams []domain.AssistanceRequestUpdateParams
}

func (m *requestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.AssistanceRequest, error) {
	if m.GetByIDFunc == nil {
		panic("requestRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *requestRepoMock) ListByBeneficiary(ctx context.Context, pwdID uuid.UUID) ([]domain.AssistanceRequest, error) {
	if m.ListByBeneficiaryFunc == nil {
		panic("requestRepoMock.ListByBeneficiaryFunc is nil")
	}
	return m.ListByBeneficiaryFunc(ctx, pwdID)
}

func (m *requestRepoMock) Create(ctx context.Context, req *domain.AssistanceRequest) (*domain.AssistanceRequest, error) {
	if m.CreateFunc == nil {
		panic("requestRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, req)
}

func (m *requestRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.AssistanceRequestUpdateParams) (*domain.AssistanceRequest, error) {
	if m.UpdateFunc == nil {
		panic("requestRepoMock.UpdateFunc is nil")
	}
	m.UpdateParams = append(m.UpdateParams, params)
	return m.UpdateFunc(ctx, id, params)
}

func (m *requestRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("requestRepoMock.DeleteFunc is nil")
	}
	return m.DeleteFunc(ctx, id)
}

type legacyRepoMock struct {
	ListByBeneficiaryFunc func(ctx context.Context, pwdID uuid.UUID) ([]domain.Assistance, error)
	CreateFunc            func(ctx context.Context, a *domain.Assistance) (*domain.Assistance, error)
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
}

func (m *legacyRepoMock) ListByBeneficiary(ctx context.Context, pwdID uuid.UUID) ([]domain.Assistance, error) {
	if m.ListByBeneficiaryFunc == nil {
		panic("legacyRepoMock.ListByBeneficiaryFunc is nil")
	}
	return m.ListByBeneficiaryFunc(ctx, pwdID)
}

func (m *legacyRepoMock) Create(ctx context.Context, a *domain.Assistance) (*domain.Assistance, error) {
	if m.CreateFunc == nil {
		panic("legacyRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, a)
}

func (m *legacyRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("legacyRepoMock.DeleteFunc is nil")
	}
	return m.DeleteFunc(ctx, id)
}

type beneficiaryGetterMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error)
}

func (m *beneficiaryGetterMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error) {
	if m.GetByIDFunc == nil {
		return &domain.Beneficiary{ID: id}, nil
	}
	return m.GetByIDFunc(ctx, id)
}

type referenceRepoMock struct {
	AssistanceTypeExistsFunc func(ctx context.Context, id uuid.UUID) (bool, error)
	UserExistsFunc           func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *referenceRepoMock) AssistanceTypeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.AssistanceTypeExistsFunc == nil {
		return true, nil
	}
	return m.AssistanceTypeExistsFunc(ctx, id)
}

func (m *referenceRepoMock) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.UserExistsFunc == nil {
		return true, nil
	}
	return m.UserExistsFunc(ctx, id)
}

type activityLogMock struct {
	Entries []domain.ActivityEntry
}

func (m *activityLogMock) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	m.Entries = append(m.Entries, *entry)
	return nil
}

func newTestService(requests *requestRepoMock, legacy *legacyRepoMock, records *beneficiaryGetterMock, refs *referenceRepoMock, activity *activityLogMock) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, requests, legacy, records, refs, activity)
}

func ptr[T any](v T) *T { return &v }

func validCreateInput() CreateRequestInput {
	return CreateRequestInput{
		AssistanceTypeID: uuid.New(),
		PWDID:            uuid.New(),
		RequestedBy:      uuid.New(),
		Description:      "wheelchair",
	}
}

func TestService_CreateRequest_EmptyAmountBecomesNull(t *testing.T) {
	t.Parallel()

	var created *domain.AssistanceRequest
	requests := &requestRepoMock{
		CreateFunc: func(ctx context.Context, req *domain.AssistanceRequest) (*domain.AssistanceRequest, error) {
			req.ID = uuid.New()
			created = req
			return req, nil
		},
	}
	svc := newTestService(requests, nil, &beneficiaryGetterMock{}, &referenceRepoMock{}, &activityLogMock{})

	input := validCreateInput()
	input.Amount = ptr("")

	_, err := svc.CreateRequest(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, created.Amount)
}

func TestService_CreateRequest_ParsesAmount(t *testing.T) {
	t.Parallel()

	var created *domain.AssistanceRequest
	requests := &requestRepoMock{
		CreateFunc: func(ctx context.Context, req *domain.AssistanceRequest) (*domain.AssistanceRequest, error) {
			req.ID = uuid.New()
			created = req
			return req, nil
		},
	}
	svc := newTestService(requests, nil, &beneficiaryGetterMock{}, &referenceRepoMock{}, &activityLogMock{})

	input := validCreateInput()
	input.Amount = ptr("1500.50")

	_, err := svc.CreateRequest(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, created.Amount)
	assert.InDelta(t, 1500.50, *created.Amount, 0.001)
}

func TestService_CreateRequest_RejectsNonNumericAmount(t *testing.T) {
	t.Parallel()

	svc := newTestService(&requestRepoMock{}, nil, &beneficiaryGetterMock{}, &referenceRepoMock{}, &activityLogMock{})

	input := validCreateInput()
	input.Amount = ptr("a lot")

	_, err := svc.CreateRequest(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_CreateRequest_UnknownBeneficiary(t *testing.T) {
	t.Parallel()

	records := &beneficiaryGetterMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(&requestRepoMock{}, nil, records, &referenceRepoMock{}, &activityLogMock{})

	_, err := svc.CreateRequest(context.Background(), validCreateInput())
	require.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	var rie *domain.ReferentialIntegrityError
	require.ErrorAs(t, err, &rie)
	assert.Equal(t, "beneficiary", rie.Violations[0].Reference)
}

func TestService_CreateRequest_UnknownAssistanceType(t *testing.T) {
	t.Parallel()

	refs := &referenceRepoMock{
		AssistanceTypeExistsFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := newTestService(&requestRepoMock{}, nil, &beneficiaryGetterMock{}, refs, &activityLogMock{})

	_, err := svc.CreateRequest(context.Background(), validCreateInput())
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

func TestService_UpdateRequest_EmptyAmountClears(t *testing.T) {
	t.Parallel()

	requests := &requestRepoMock{
		UpdateFunc: func(ctx context.Context, id uuid.UUID, params domain.AssistanceRequestUpdateParams) (*domain.AssistanceRequest, error) {
			return &domain.AssistanceRequest{ID: id}, nil
		},
	}
	svc := newTestService(requests, nil, &beneficiaryGetterMock{}, &referenceRepoMock{}, &activityLogMock{})

	_, err := svc.UpdateRequest(context.Background(), uuid.New(), UpdateRequestInput{
		ActorID: uuid.New(),
		Amount:  ptr(""),
	})
	require.NoError(t, err)
	require.Len(t, requests.UpdateParams, 1)
	assert.True(t, requests.UpdateParams[0].ClearAmount)
	assert.Nil(t, requests.UpdateParams[0].Amount)
}

func TestService_UpdateRequest_AbsentAmountLeftAlone(t *testing.T) {
	t.Parallel()

	requests := &requestRepoMock{
		UpdateFunc: func(ctx context.Context, id uuid.UUID, params domain.AssistanceRequestUpdateParams) (*domain.AssistanceRequest, error) {
			return &domain.AssistanceRequest{ID: id}, nil
		},
	}
	svc := newTestService(requests, nil, &beneficiaryGetterMock{}, &referenceRepoMock{}, &activityLogMock{})

	_, err := svc.UpdateRequest(context.Background(), uuid.New(), UpdateRequestInput{
		ActorID:     uuid.New(),
		Description: ptr("updated description"),
	})
	require.NoError(t, err)
	require.Len(t, requests.UpdateParams, 1)
	assert.False(t, requests.UpdateParams[0].ClearAmount)
	assert.Nil(t, requests.UpdateParams[0].Amount)
}

func TestService_DeleteRequest_LogsActor(t *testing.T) {
	t.Parallel()

	requests := &requestRepoMock{
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	activity := &activityLogMock{}
	svc := newTestService(requests, nil, &beneficiaryGetterMock{}, &referenceRepoMock{}, activity)

	actorID := uuid.New()
	err := svc.DeleteRequest(context.Background(), uuid.New(), actorID)
	require.NoError(t, err)
	require.Len(t, activity.Entries, 1)
	assert.Equal(t, actorID, activity.Entries[0].UserID)
}

func TestService_CreateAssistance_Legacy(t *testing.T) {
	t.Parallel()

	legacy := &legacyRepoMock{
		CreateFunc: func(ctx context.Context, a *domain.Assistance) (*domain.Assistance, error) {
			a.ID = uuid.New()
			a.Status = domain.AssistanceStatusPending
			return a, nil
		},
	}
	svc := newTestService(&requestRepoMock{}, legacy, &beneficiaryGetterMock{}, &referenceRepoMock{}, &activityLogMock{})

	got, err := svc.CreateAssistance(context.Background(), CreateAssistanceInput{
		PWDID:            uuid.New(),
		AssistanceTypeID: uuid.New(),
		RecordedBy:       uuid.New(),
		Details:          ptr("rice subsidy"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssistanceStatusPending, got.Status)
}
