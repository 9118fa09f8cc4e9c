// Package dto provides data transfer objects for the organization HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/stockbar/stockbar/internal/organization/usecase"
	appValidation "github.com/stockbar/stockbar/internal/validation"
)

// OrganizationRequest represents the API request for creating or updating
// an organization.
type OrganizationRequest struct {
	Name              string  `json:"name"`
	PriceIncreaseStep float64 `json:"priceIncreaseStep"`
	PriceDecreaseStep float64 `json:"priceDecreaseStep"`
}

// Validate validates the OrganizationRequest using the jellydator/validation library.
func (r *OrganizationRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&r.PriceIncreaseStep, appValidation.NonNegative{}),
		validation.Field(&r.PriceDecreaseStep, appValidation.NonNegative{}),
	)
	return appValidation.WrapValidationError(err)
}

// ToOrganizationInput converts an OrganizationRequest DTO to a use case input
func ToOrganizationInput(req OrganizationRequest) usecase.OrganizationInput {
	return usecase.OrganizationInput{
		Name:              req.Name,
		PriceIncreaseStep: req.PriceIncreaseStep,
		PriceDecreaseStep: req.PriceDecreaseStep,
	}
}
