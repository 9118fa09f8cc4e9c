package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stockbar/stockbar/internal/database"
	"github.com/stockbar/stockbar/internal/user/domain"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// PostgreSQLRoleRepository handles role lookups for PostgreSQL
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQLRoleRepository
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{
		db: db,
	}
}

// GetByName retrieves a role by name
func (r *PostgreSQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name FROM roles WHERE name = $1`

	err := querier.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	return &role, nil
}
