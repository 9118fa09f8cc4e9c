// Package dto provides data transfer objects for the account HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/stockbar/stockbar/internal/validation"
)

// OnboardingRequest represents the API request for account onboarding.
type OnboardingRequest struct {
	OrganizationID int64 `json:"organizationId"`
	AcceptTerms    bool  `json:"acceptTerms"`
}

// Validate validates the OnboardingRequest using the jellydator/validation library.
// AcceptTerms is checked by the use case so it maps to its own domain error.
func (r *OnboardingRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.OrganizationID,
			validation.Required.Error("organizationId is required"),
			validation.Min(int64(1)).Error("organizationId must be positive"),
		),
	)
	return appValidation.WrapValidationError(err)
}
