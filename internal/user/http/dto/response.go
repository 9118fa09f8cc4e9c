package dto

// AccountResponse represents the API response for the current account.
type AccountResponse struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	OrganizationID  *int64 `json:"organizationId,omitempty"`
	NeedsOnboarding bool   `json:"needsOnboarding"`
}
