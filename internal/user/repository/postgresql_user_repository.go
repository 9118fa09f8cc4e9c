// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/stockbar/stockbar/internal/database"
	"github.com/stockbar/stockbar/internal/user/domain"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, email, name, role_id, organization_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Role.ID, user.OrganizationID)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID with its role resolved
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT u.id, u.email, u.name, u.organization_id, u.created_at, u.updated_at, r.id, r.name
			  FROM users u
			  JOIN roles r ON r.id = u.role_id
			  WHERE u.id = $1`

	return scanUser(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email with its role resolved
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT u.id, u.email, u.name, u.organization_id, u.created_at, u.updated_at, r.id, r.name
			  FROM users u
			  JOIN roles r ON r.id = u.role_id
			  WHERE u.email = $1`

	return scanUser(querier.QueryRowContext(ctx, query, email))
}

// Update updates a user's mutable fields (name, role, organization)
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET name = $1, role_id = $2, organization_id = $3, updated_at = NOW()
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query,
		user.Name, user.Role.ID, user.OrganizationID, user.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// scanUser scans a user row including its joined role.
func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var orgID sql.NullInt64

	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &orgID,
		&user.CreatedAt, &user.UpdatedAt,
		&user.Role.ID, &user.Role.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if orgID.Valid {
		user.OrganizationID = &orgID.Int64
	}
	return &user, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
