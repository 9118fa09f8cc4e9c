// Package dto provides data transfer objects for the catalog HTTP layer.
package dto

import (
	"time"

	"github.com/stockbar/stockbar/internal/catalog/domain"
)

// CategoryResponse represents the API response for a category.
type CategoryResponse struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationId"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
}

// InventoryItemResponse represents the API response for an inventory item.
type InventoryItemResponse struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationId"`
	CategoryID     int64     `json:"categoryId"`
	Name           string    `json:"name"`
	BasePrice      float64   `json:"basePrice"`
	CurrentPrice   float64   `json:"currentPrice"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToCategoryResponse converts a domain Category to a CategoryResponse DTO
func ToCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:             category.ID,
		OrganizationID: category.OrganizationID,
		Name:           category.Name,
		CreatedAt:      category.CreatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories to response DTOs
func ToCategoryResponses(categories []*domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, ToCategoryResponse(category))
	}
	return responses
}

// ToInventoryItemResponse converts a domain InventoryItem to a response DTO
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:             item.ID,
		OrganizationID: item.OrganizationID,
		CategoryID:     item.CategoryID,
		Name:           item.Name,
		BasePrice:      item.BasePrice,
		CurrentPrice:   item.CurrentPrice,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of domain InventoryItems to response DTOs
func ToInventoryItemResponses(items []*domain.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToInventoryItemResponse(item))
	}
	return responses
}
