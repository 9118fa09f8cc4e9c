package dto

import (
	"github.com/stockbar/stockbar/internal/user/domain"
)

// ToAccountResponse converts a domain User model to an AccountResponse DTO.
// This enforces the boundary between internal domain models and external API contracts.
func ToAccountResponse(user *domain.User) AccountResponse {
	return AccountResponse{
		Email:           user.Email,
		Name:            user.Name,
		Role:            user.Role.Name,
		OrganizationID:  user.OrganizationID,
		NeedsOnboarding: user.NeedsOnboarding(),
	}
}
