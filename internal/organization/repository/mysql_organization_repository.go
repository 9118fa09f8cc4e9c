package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/stockbar/stockbar/internal/database"
	"github.com/stockbar/stockbar/internal/organization/domain"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// MySQLOrganizationRepository handles organization persistence for MySQL
type MySQLOrganizationRepository struct {
	db *sql.DB
}

// NewMySQLOrganizationRepository creates a new MySQLOrganizationRepository
func NewMySQLOrganizationRepository(db *sql.DB) *MySQLOrganizationRepository {
	return &MySQLOrganizationRepository{
		db: db,
	}
}

// Create inserts a new organization and fills in its generated ID
func (r *MySQLOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	querier := database.GetTx(ctx, r.db)

	now := time.Now().UTC().Truncate(time.Second)
	query := `INSERT INTO organizations (name, price_increase_step, price_decrease_step, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(ctx, query,
		org.Name, org.PriceIncreaseStep, org.PriceDecreaseStep, now, now)
	if err != nil {
		if isMySQLOrgUniqueViolation(err) {
			return domain.ErrOrganizationAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create organization")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get inserted organization id")
	}

	org.ID = id
	org.CreatedAt = now
	org.UpdatedAt = now
	return nil
}

// GetByID retrieves an organization by ID
func (r *MySQLOrganizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	var org domain.Organization
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, price_increase_step, price_decrease_step, created_at, updated_at
			  FROM organizations WHERE id = ?`

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
func (r *MySQLOrganizationRepository) GetAll(ctx context.Context) ([]*domain.Organization, error) {
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
func (r *MySQLOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE organizations
			  SET name = ?, price_increase_step = ?, price_decrease_step = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query,
		org.Name, org.PriceIncreaseStep, org.PriceDecreaseStep, org.ID)
	if err != nil {
		if isMySQLOrgUniqueViolation(err) {
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

// isMySQLOrgUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLOrgUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
