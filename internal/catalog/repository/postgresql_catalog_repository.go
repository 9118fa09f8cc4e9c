// Package repository provides read-only data access for the catalog.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stockbar/stockbar/internal/catalog/domain"
	"github.com/stockbar/stockbar/internal/database"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// PostgreSQLCatalogRepository handles catalog reads for PostgreSQL
type PostgreSQLCatalogRepository struct {
	db *sql.DB
}

// NewPostgreSQLCatalogRepository creates a new PostgreSQLCatalogRepository
func NewPostgreSQLCatalogRepository(db *sql.DB) *PostgreSQLCatalogRepository {
	return &PostgreSQLCatalogRepository{
		db: db,
	}
}

// GetCategoryByID retrieves a category by ID
func (r *PostgreSQLCatalogRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, organization_id, name, created_at
			  FROM categories WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.OrganizationID, &category.Name, &category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get category by id")
	}

	return &category, nil
}

// ListCategories retrieves categories, optionally filtered by organization
func (r *PostgreSQLCatalogRepository) ListCategories(ctx context.Context, organizationID *int64) ([]*domain.Category, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, organization_id, name, created_at FROM categories`
	var args []any
	if organizationID != nil {
		query += ` WHERE organization_id = $1`
		args = append(args, *organizationID)
	}
	query += ` ORDER BY id`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories")
	}
	defer func() { _ = rows.Close() }()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID, &category.OrganizationID, &category.Name, &category.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan category")
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate categories")
	}

	return categories, nil
}

// GetInventoryItemByID retrieves an inventory item by ID
func (r *PostgreSQLCatalogRepository) GetInventoryItemByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, organization_id, category_id, name, base_price, current_price, created_at, updated_at
			  FROM inventory_items WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.OrganizationID, &item.CategoryID, &item.Name,
		&item.BasePrice, &item.CurrentPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get inventory item by id")
	}

	return &item, nil
}

// ListInventoryItems retrieves inventory items, optionally filtered by organization
func (r *PostgreSQLCatalogRepository) ListInventoryItems(ctx context.Context, organizationID *int64) ([]*domain.InventoryItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, organization_id, category_id, name, base_price, current_price, created_at, updated_at
			  FROM inventory_items`
	var args []any
	if organizationID != nil {
		query += ` WHERE organization_id = $1`
		args = append(args, *organizationID)
	}
	query += ` ORDER BY id`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list inventory items")
	}
	defer func() { _ = rows.Close() }()

	var items []*domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(
			&item.ID, &item.OrganizationID, &item.CategoryID, &item.Name,
			&item.BasePrice, &item.CurrentPrice, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan inventory item")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate inventory items")
	}

	return items, nil
}
