// Package domain defines the catalog entities: drink categories and the
// priced inventory items shown on the public board.
package domain

import (
	"time"

	"github.com/stockbar/stockbar/internal/errors"
)

// Category groups inventory items within an organization.
type Category struct {
	ID             int64
	OrganizationID int64
	Name           string
	CreatedAt      time.Time
}

// InventoryItem is a sellable drink with its current dynamic price. BasePrice
// is the anchor the dynamic price drifts around.
type InventoryItem struct {
	ID             int64
	OrganizationID int64
	CategoryID     int64
	Name           string
	BasePrice      float64
	CurrentPrice   float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Domain-specific errors for catalog operations.
var (
	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.Wrap(errors.ErrNotFound, "category not found")

	// ErrInventoryItemNotFound indicates the requested inventory item does not exist.
	ErrInventoryItemNotFound = errors.Wrap(errors.ErrNotFound, "inventory item not found")
)
