// Package repository provides data persistence implementations for organizations.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/stockbar/stockbar/internal/database"
	"github.com/stockbar/stockbar/internal/organization/domain"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// PostgreSQLOrganizationRepository handles organization persistence for PostgreSQL
type PostgreSQLOrganizationRepository struct {
	db *sql.DB
}

// NewPostgreSQLOrganizationRepository creates a new PostgreSQLOrganizationRepository
func NewPostgreSQLOrganizationRepository(db *sql.DB) *PostgreSQLOrganizationRepository {
	return &PostgreSQLOrganizationRepository{
		db: db,
	}
}

// Create inserts a new organization and fills in its generated ID
func (r *PostgreSQLOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO organizations (name, price_increase_step, price_decrease_step, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := querier.QueryRowContext(ctx, query,
		org.Name, org.PriceIncreaseStep, org.PriceDecreaseStep,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if isPostgreSQLOrgUniqueViolation(err) {
			return domain.ErrOrganizationAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create organization")
	}
	return nil
}

// GetByID retrieves an organization by ID
func (r *PostgreSQLOrganizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	var org domain.Organization
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, price_increase_step, price_decrease_step, created_at, updated_at
			  FROM organizations WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.PriceIncreaseStep, &org.PriceDecreaseStep,
		&org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization by id")
	}

	return &org, nil
}

// GetAll retrieves all organizations ordered by ID
func (r *PostgreSQLOrganizationRepository) GetAll(ctx context.Context) ([]*domain.Organization, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, price_increase_step, price_decrease_step, created_at, updated_at
			  FROM organizations ORDER BY id`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list organizations")
	}
	defer func() { _ = rows.Close() }()

	var orgs []*domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(
			&org.ID, &org.Name, &org.PriceIncreaseStep, &org.PriceDecreaseStep,
			&org.CreatedAt, &org.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan organization")
		}
		orgs = append(orgs, &org)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate organizations")
	}

	return orgs, nil
}

// Update updates an organization's mutable fields
func (r *PostgreSQLOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE organizations
			  SET name = $1, price_increase_step = $2, price_decrease_step = $3, updated_at = NOW()
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query,
		org.Name, org.PriceIncreaseStep, org.PriceDecreaseStep, org.ID)
	if err != nil {
		if isPostgreSQLOrgUniqueViolation(err) {
			return domain.ErrOrganizationAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update organization")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

// isPostgreSQLOrgUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLOrgUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
