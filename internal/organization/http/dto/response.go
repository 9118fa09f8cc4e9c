package dto

import (
	"time"

	"github.com/stockbar/stockbar/internal/organization/domain"
)

// OrganizationResponse represents the API response for an organization.
type OrganizationResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	PriceIncreaseStep float64   `json:"priceIncreaseStep"`
	PriceDecreaseStep float64   `json:"priceDecreaseStep"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToOrganizationResponse converts a domain Organization to an OrganizationResponse DTO
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:                org.ID,
		Name:              org.Name,
		PriceIncreaseStep: org.PriceIncreaseStep,
		PriceDecreaseStep: org.PriceDecreaseStep,
		CreatedAt:         org.CreatedAt,
		UpdatedAt:         org.UpdatedAt,
	}
}

// ToOrganizationResponses converts a slice of domain Organizations to response DTOs
func ToOrganizationResponses(orgs []*domain.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		responses = append(responses, ToOrganizationResponse(org))
	}
	return responses
}
