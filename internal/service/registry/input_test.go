package registry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwdcare/registry-backend/internal/domain"
)

func TestCreateRecordInput_Validate(t *testing.T) {
	t.Parallel()

	valid := validCreateInput()

	tests := []struct {
		name    string
		mutate  func(*CreateRecordInput)
		wantErr bool
		field   string
	}{
		{name: "valid", mutate: func(*CreateRecordInput) {}},
		{
			name:    "bad quarter",
			mutate:  func(i *CreateRecordInput) { i.Quarter = "q1" },
			wantErr: true,
			field:   "quarter",
		},
		{
			name:    "year below floor",
			mutate:  func(i *CreateRecordInput) { i.Year = 1999 },
			wantErr: true,
			field:   "year",
		},
		{
			name:    "year too far ahead",
			mutate:  func(i *CreateRecordInput) { i.Year = time.Now().Year() + 2 },
			wantErr: true,
			field:   "year",
		},
		{
			name:   "next year accepted",
			mutate: func(i *CreateRecordInput) { i.Year = time.Now().Year() + 1 },
		},
		{
			name:    "blank name",
			mutate:  func(i *CreateRecordInput) { i.FullName = "   " },
			wantErr: true,
			field:   "full_name",
		},
		{
			name:    "missing community",
			mutate:  func(i *CreateRecordInput) { i.CommunityID = uuid.Nil },
			wantErr: true,
			field:   "community_id",
		},
		{
			name:    "missing registering user",
			mutate:  func(i *CreateRecordInput) { i.RegisteredBy = uuid.Nil },
			wantErr: true,
			field:   "registered_by",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := valid
			tt.mutate(&input)

			err := input.Validate(testMinYear)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
}

func TestUpdateRecordInput_Validate(t *testing.T) {
	t.Parallel()

	actor := uuid.New()

	t.Run("empty payload is valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, UpdateRecordInput{ActorID: actor}.Validate(testMinYear))
	})

	t.Run("missing actor", func(t *testing.T) {
		t.Parallel()
		err := UpdateRecordInput{}.Validate(testMinYear)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("present quarter must be legal", func(t *testing.T) {
		t.Parallel()
		bad := domain.Quarter("Q9")
		err := UpdateRecordInput{
			ActorID: actor,
			Parent:  domain.BeneficiaryUpdateParams{Quarter: &bad},
		}.Validate(testMinYear)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("present status must be legal", func(t *testing.T) {
		t.Parallel()
		bad := domain.BeneficiaryStatus("disapproved")
		err := UpdateRecordInput{
			ActorID: actor,
			Parent:  domain.BeneficiaryUpdateParams{Status: &bad},
		}.Validate(testMinYear)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("blank name rejected, absent name fine", func(t *testing.T) {
		t.Parallel()
		blank := ""
		err := UpdateRecordInput{
			ActorID: actor,
			Parent:  domain.BeneficiaryUpdateParams{FullName: &blank},
		}.Validate(testMinYear)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
