// Package usecase implements the read-only catalog business logic serving the
// public price board.
package usecase

import (
	"context"

	"github.com/stockbar/stockbar/internal/catalog/domain"
)

// UseCase defines the interface for catalog read operations
type UseCase interface {
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, organizationID *int64) ([]*domain.Category, error)
	GetInventoryItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	ListInventoryItems(ctx context.Context, organizationID *int64) ([]*domain.InventoryItem, error)
}

// CatalogRepository interface defines catalog repository operations
type CatalogRepository interface {
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, organizationID *int64) ([]*domain.Category, error)
	GetInventoryItemByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	ListInventoryItems(ctx context.Context, organizationID *int64) ([]*domain.InventoryItem, error)
}

// CatalogUseCase handles catalog read logic
type CatalogUseCase struct {
	catalogRepo CatalogRepository
}

// NewCatalogUseCase creates a new CatalogUseCase
func NewCatalogUseCase(catalogRepo CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{
		catalogRepo: catalogRepo,
	}
}

// GetCategory retrieves a category by ID
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return uc.catalogRepo.GetCategoryByID(ctx, id)
}

// ListCategories retrieves categories, optionally filtered by organization
func (uc *CatalogUseCase) ListCategories(ctx context.Context, organizationID *int64) ([]*domain.Category, error) {
	return uc.catalogRepo.ListCategories(ctx, organizationID)
}

// GetInventoryItem retrieves an inventory item by ID
func (uc *CatalogUseCase) GetInventoryItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	return uc.catalogRepo.GetInventoryItemByID(ctx, id)
}

// ListInventoryItems retrieves inventory items, optionally filtered by organization
func (uc *CatalogUseCase) ListInventoryItems(ctx context.Context, organizationID *int64) ([]*domain.InventoryItem, error) {
	return uc.catalogRepo.ListInventoryItems(ctx, organizationID)
}
