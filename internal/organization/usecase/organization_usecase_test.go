package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stockbar/stockbar/internal/errors"
	"github.com/stockbar/stockbar/internal/organization/domain"
)

// MockOrganizationRepository is a mock implementation of OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	if args.Error(0) == nil {
		org.ID = 1
		org.CreatedAt = time.Now().UTC()
		org.UpdatedAt = org.CreatedAt
	}
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetAll(ctx context.Context) ([]*domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func validInput() OrganizationInput {
	return OrganizationInput{
		Name:              "Corner Bar",
		PriceIncreaseStep: 0.5,
		PriceDecreaseStep: 0.25,
	}
}

func TestOrganizationUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the organization", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		orgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Organization")).Return(nil)

		org, err := useCase.Create(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, "Corner Bar", org.Name)
		assert.Equal(t, 0.5, org.PriceIncreaseStep)
		assert.Equal(t, 0.25, org.PriceDecreaseStep)
		orgRepo.AssertExpectations(t)
	})

	t.Run("trims the name", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		orgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Organization")).Return(nil)

		input := validInput()
		input.Name = "  Corner Bar  "
		org, err := useCase.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "Corner Bar", org.Name)
	})

	t.Run("zero price steps are allowed", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		orgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Organization")).Return(nil)

		input := validInput()
		input.PriceIncreaseStep = 0
		input.PriceDecreaseStep = 0
		_, err := useCase.Create(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*OrganizationInput)
		}{
			{"empty name", func(i *OrganizationInput) { i.Name = "" }},
			{"blank name", func(i *OrganizationInput) { i.Name = "   " }},
			{"negative increase step", func(i *OrganizationInput) { i.PriceIncreaseStep = -0.5 }},
			{"negative decrease step", func(i *OrganizationInput) { i.PriceDecreaseStep = -0.25 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				orgRepo := new(MockOrganizationRepository)
				useCase := NewOrganizationUseCase(orgRepo)

				input := validInput()
				tt.mutate(&input)

				_, err := useCase.Create(ctx, input)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				orgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		orgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Organization")).
			Return(domain.ErrOrganizationAlreadyExists)

		_, err := useCase.Create(ctx, validInput())
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestOrganizationUseCase_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *domain.Organization {
		now := time.Now().UTC()
		return &domain.Organization{
			ID:                1,
			Name:              "Corner Bar",
			PriceIncreaseStep: 0.5,
			PriceDecreaseStep: 0.25,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}

	t.Run("updates and rereads the organization", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		updated := existing()
		updated.Name = "Rooftop Bar"
		updated.PriceIncreaseStep = 1.0

		orgRepo.On("GetByID", ctx, int64(1)).Return(existing(), nil).Once()
		orgRepo.On("Update", ctx, mock.AnythingOfType("*domain.Organization")).Return(nil)
		orgRepo.On("GetByID", ctx, int64(1)).Return(updated, nil).Once()

		input := OrganizationInput{Name: "Rooftop Bar", PriceIncreaseStep: 1.0, PriceDecreaseStep: 0.25}
		org, err := useCase.Update(ctx, 1, input)
		require.NoError(t, err)
		assert.Equal(t, "Rooftop Bar", org.Name)
		assert.Equal(t, 1.0, org.PriceIncreaseStep)
		orgRepo.AssertExpectations(t)
	})

	t.Run("unknown organization", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		orgRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.ErrOrganizationNotFound)

		_, err := useCase.Update(ctx, 42, validInput())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		orgRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalid input skips the read", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		input := validInput()
		input.Name = ""
		_, err := useCase.Update(ctx, 1, input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		orgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestOrganizationUseCase_GetAll(t *testing.T) {
	ctx := context.Background()

	orgRepo := new(MockOrganizationRepository)
	useCase := NewOrganizationUseCase(orgRepo)

	orgs := []*domain.Organization{
		{ID: 1, Name: "Corner Bar"},
		{ID: 2, Name: "Rooftop Bar"},
	}
	orgRepo.On("GetAll", ctx).Return(orgs, nil)

	got, err := useCase.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestOrganizationUseCase_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("existing organization", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		orgRepo.On("GetByID", ctx, int64(1)).Return(&domain.Organization{ID: 1}, nil)

		assert.NoError(t, useCase.Exists(ctx, 1))
	})

	t.Run("unknown organization", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		useCase := NewOrganizationUseCase(orgRepo)

		orgRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.ErrOrganizationNotFound)

		assert.ErrorIs(t, useCase.Exists(ctx, 42), domain.ErrOrganizationNotFound)
	})
}
