package registry

import (
	"context"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// Hand-rolled func-field fakes for the coordinator's dependencies. A nil
// func means the test does not expect that method to be reached.

var (
	_ beneficiaryRepo = &beneficiaryRepoMock{}
	_ guardianRepo    = &guardianRepoMock{}
	_ educationRepo   = &educationRepoMock{}
	_ supportNeedRepo = &supportNeedRepoMock{}
	_ documentRepo    = &documentRepoMock{}
	_ requestCounter  = &requestCounterMock{}
	_ referenceRepo   = &referenceRepoMock{}
	_ activityLog     = &activityLogMock{}
	_ txManager       = &txManagerMock{}
)

type beneficiaryRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error)
	CreateFunc  func(ctx context.Context, b *domain.Beneficiary) (*domain.Beneficiary, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, params domain.BeneficiaryUpdateParams) error
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	UpdateCalls []domain.BeneficiaryUpdateParams
}

func (m *beneficiaryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error) {
	if m.GetByIDFunc == nil {
		panic("beneficiaryRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *beneficiaryRepoMock) Create(ctx context.Context, b *domain.Beneficiary) (*domain.Beneficiary, error) {
	if m.CreateFunc == nil {
		panic("beneficiaryRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, b)
}

func (m *beneficiaryRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.BeneficiaryUpdateParams) error {
	if m.UpdateFunc == nil {
		panic("beneficiaryRepoMock.UpdateFunc is nil")
	}
	m.UpdateCalls = append(m.UpdateCalls, params)
	return m.UpdateFunc(ctx, id, params)
}

func (m *beneficiaryRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("beneficiaryRepoMock.DeleteFunc is nil")
	}
	return m.DeleteFunc(ctx, id)
}

type guardianRepoMock struct {
	ListByParentFunc      func(ctx context.Context, pwdID uuid.UUID) ([]domain.Guardian, error)
	CreateFunc            func(ctx context.Context, g *domain.Guardian) (*domain.Guardian, error)
	UpdateFunc            func(ctx context.Context, id uuid.UUID, params domain.GuardianUpdateParams) (*domain.Guardian, error)
	DeleteAllByParentFunc func(ctx context.Context, pwdID uuid.UUID) (int64, error)

	CreateCalls []domain.Guardian
	UpdateCalls []uuid.UUID
}

func (m *guardianRepoMock) ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.Guardian, error) {
	if m.ListByParentFunc == nil {
		panic("guardianRepoMock.ListByParentFunc is nil")
	}
	return m.ListByParentFunc(ctx, pwdID)
}

func (m *guardianRepoMock) Create(ctx context.Context, g *domain.Guardian) (*domain.Guardian, error) {
	if m.CreateFunc == nil {
		panic("guardianRepoMock.CreateFunc is nil")
	}
	m.CreateCalls = append(m.CreateCalls, *g)
	return m.CreateFunc(ctx, g)
}

func (m *guardianRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.GuardianUpdateParams) (*domain.Guardian, error) {
	if m.UpdateFunc == nil {
		panic("guardianRepoMock.UpdateFunc is nil")
	}
	m.UpdateCalls = append(m.UpdateCalls, id)
	return m.UpdateFunc(ctx, id, params)
}

func (m *guardianRepoMock) DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error) {
	if m.DeleteAllByParentFunc == nil {
		panic("guardianRepoMock.DeleteAllByParentFunc is nil")
	}
	return m.DeleteAllByParentFunc(ctx, pwdID)
}

type educationRepoMock struct {
	ListByParentFunc      func(ctx context.Context, pwdID uuid.UUID) ([]domain.EducationRecord, error)
	CreateFunc            func(ctx context.Context, rec *domain.EducationRecord) (*domain.EducationRecord, error)
	UpdateFunc            func(ctx context.Context, id uuid.UUID, params domain.EducationUpdateParams) (*domain.EducationRecord, error)
	DeleteAllByParentFunc func(ctx context.Context, pwdID uuid.UUID) (int64, error)

	CreateCalls []domain.EducationRecord
}

func (m *educationRepoMock) ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.EducationRecord, error) {
	if m.ListByParentFunc == nil {
		panic("educationRepoMock.ListByParentFunc is nil")
	}
	return m.ListByParentFunc(ctx, pwdID)
}

func (m *educationRepoMock) Create(ctx context.Context, rec *domain.EducationRecord) (*domain.EducationRecord, error) {
	if m.CreateFunc == nil {
		panic("educationRepoMock.CreateFunc is nil")
	}
	m.CreateCalls = append(m.CreateCalls, *rec)
	return m.CreateFunc(ctx, rec)
}

func (m *educationRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.EducationUpdateParams) (*domain.EducationRecord, error) {
	if m.UpdateFunc == nil {
		panic("educationRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, id, params)
}

func (m *educationRepoMock) DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error) {
	if m.DeleteAllByParentFunc == nil {
		panic("educationRepoMock.DeleteAllByParentFunc is nil")
	}
	return m.DeleteAllByParentFunc(ctx, pwdID)
}

type supportNeedRepoMock struct {
	ListByParentFunc      func(ctx context.Context, pwdID uuid.UUID) ([]domain.SupportNeed, error)
	CreateFunc            func(ctx context.Context, n *domain.SupportNeed) (*domain.SupportNeed, error)
	UpdateFunc            func(ctx context.Context, id uuid.UUID, params domain.SupportNeedUpdateParams) (*domain.SupportNeed, error)
	DeleteAllByParentFunc func(ctx context.Context, pwdID uuid.UUID) (int64, error)
}

func (m *supportNeedRepoMock) ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.SupportNeed, error) {
	if m.ListByParentFunc == nil {
		panic("supportNeedRepoMock.ListByParentFunc is nil")
	}
	return m.ListByParentFunc(ctx, pwdID)
}

func (m *supportNeedRepoMock) Create(ctx context.Context, n *domain.SupportNeed) (*domain.SupportNeed, error) {
	if m.CreateFunc == nil {
		panic("supportNeedRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, n)
}

func (m *supportNeedRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.SupportNeedUpdateParams) (*domain.SupportNeed, error) {
	if m.UpdateFunc == nil {
		panic("supportNeedRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, id, params)
}

func (m *supportNeedRepoMock) DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error) {
	if m.DeleteAllByParentFunc == nil {
		panic("supportNeedRepoMock.DeleteAllByParentFunc is nil")
	}
	return m.DeleteAllByParentFunc(ctx, pwdID)
}

type documentRepoMock struct {
	DeleteAllByOwnerFunc func(ctx context.Context, owner domain.DocumentOwner) (int64, error)
}

func (m *documentRepoMock) DeleteAllByOwner(ctx context.Context, owner domain.DocumentOwner) (int64, error) {
	if m.DeleteAllByOwnerFunc == nil {
		panic("documentRepoMock.DeleteAllByOwnerFunc is nil")
	}
	return m.DeleteAllByOwnerFunc(ctx, owner)
}

type requestCounterMock struct {
	CountByBeneficiaryFunc func(ctx context.Context, pwdID uuid.UUID) (int, error)
}

func (m *requestCounterMock) CountByBeneficiary(ctx context.Context, pwdID uuid.UUID) (int, error) {
	if m.CountByBeneficiaryFunc == nil {
		panic("requestCounterMock.CountByBeneficiaryFunc is nil")
	}
	return m.CountByBeneficiaryFunc(ctx, pwdID)
}

// referenceRepoMock resolves every lookup to "exists" unless a func field
// overrides it, so happy-path tests stay short.
type referenceRepoMock struct {
	GenderExistsFunc          func(ctx context.Context, id uuid.UUID) (bool, error)
	CategoryExistsFunc        func(ctx context.Context, id uuid.UUID) (bool, error)
	TypeExistsFunc            func(ctx context.Context, id uuid.UUID) (bool, error)
	TypeBelongsToCategoryFunc func(ctx context.Context, typeID, categoryID uuid.UUID) (bool, error)
	CommunityExistsFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
	AssistanceTypeExistsFunc  func(ctx context.Context, id uuid.UUID) (bool, error)
	UserExistsFunc            func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *referenceRepoMock) GenderExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.GenderExistsFunc == nil {
		return true, nil
	}
	return m.GenderExistsFunc(ctx, id)
}

func (m *referenceRepoMock) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.CategoryExistsFunc == nil {
		return true, nil
	}
	return m.CategoryExistsFunc(ctx, id)
}

func (m *referenceRepoMock) TypeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.TypeExistsFunc == nil {
		return true, nil
	}
	return m.TypeExistsFunc(ctx, id)
}

func (m *referenceRepoMock) TypeBelongsToCategory(ctx context.Context, typeID, categoryID uuid.UUID) (bool, error) {
	if m.TypeBelongsToCategoryFunc == nil {
		return true, nil
	}
	return m.TypeBelongsToCategoryFunc(ctx, typeID, categoryID)
}

func (m *referenceRepoMock) CommunityExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.CommunityExistsFunc == nil {
		return true, nil
	}
	return m.CommunityExistsFunc(ctx, id)
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
	RecordFunc func(ctx context.Context, entry *domain.ActivityEntry) error

	Entries []domain.ActivityEntry
}

func (m *activityLogMock) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	m.Entries = append(m.Entries, *entry)
	if m.RecordFunc == nil {
		return nil
	}
	return m.RecordFunc(ctx, entry)
}

// txManagerMock runs the callback inline and records whether a rollback
// would have happened (the callback returned an error).
type txManagerMock struct {
	Began      int
	RolledBack int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Began++
	if err := fn(ctx); err != nil {
		m.RolledBack++
		return err
	}
	return nil
}
