// Package usecase implements the organization business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/stockbar/stockbar/internal/organization/domain"
	appValidation "github.com/stockbar/stockbar/internal/validation"
)

// OrganizationInput contains the input data for creating or updating an
// organization.
type OrganizationInput struct {
	Name              string  `json:"name"`
	PriceIncreaseStep float64 `json:"priceIncreaseStep"`
	PriceDecreaseStep float64 `json:"priceDecreaseStep"`
}

// UseCase defines the interface for organization business logic operations
type UseCase interface {
	Create(ctx context.Context, input OrganizationInput) (*domain.Organization, error)
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
	GetAll(ctx context.Context) ([]*domain.Organization, error)
	Update(ctx context.Context, id int64, input OrganizationInput) (*domain.Organization, error)
	// Exists reports whether the organization exists. Returns
	// domain.ErrOrganizationNotFound when it does not.
	Exists(ctx context.Context, id int64) error
}

// OrganizationRepository interface defines organization repository operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
	GetAll(ctx context.Context) ([]*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}

// OrganizationUseCase handles organization-related business logic
type OrganizationUseCase struct {
	orgRepo OrganizationRepository
}

// NewOrganizationUseCase creates a new OrganizationUseCase
func NewOrganizationUseCase(orgRepo OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{
		orgRepo: orgRepo,
	}
}

// validateInput validates organization input. The pricing steps may be zero
// (disabling price movement) but never negative.
func (uc *OrganizationUseCase) validateInput(input OrganizationInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.PriceIncreaseStep, appValidation.NonNegative{}),
		validation.Field(&input.PriceDecreaseStep, appValidation.NonNegative{}),
	)
	return appValidation.WrapValidationError(err)
}

// Create creates a new organization
func (uc *OrganizationUseCase) Create(ctx context.Context, input OrganizationInput) (*domain.Organization, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	org := &domain.Organization{
		Name:              strings.TrimSpace(input.Name),
		PriceIncreaseStep: input.PriceIncreaseStep,
		PriceDecreaseStep: input.PriceDecreaseStep,
	}
	if err := uc.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

// GetByID retrieves an organization by ID
func (uc *OrganizationUseCase) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	return uc.orgRepo.GetByID(ctx, id)
}

// GetAll retrieves all organizations
func (uc *OrganizationUseCase) GetAll(ctx context.Context) ([]*domain.Organization, error) {
	return uc.orgRepo.GetAll(ctx)
}

// Update updates an existing organization
func (uc *OrganizationUseCase) Update(ctx context.Context, id int64, input OrganizationInput) (*domain.Organization, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	org.Name = strings.TrimSpace(input.Name)
	org.PriceIncreaseStep = input.PriceIncreaseStep
	org.PriceDecreaseStep = input.PriceDecreaseStep
	if err := uc.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	return uc.orgRepo.GetByID(ctx, id)
}

// Exists reports whether the organization exists
func (uc *OrganizationUseCase) Exists(ctx context.Context, id int64) error {
	_, err := uc.orgRepo.GetByID(ctx, id)
	return err
}
