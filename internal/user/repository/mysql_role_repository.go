package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stockbar/stockbar/internal/database"
	"github.com/stockbar/stockbar/internal/user/domain"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// MySQLRoleRepository handles role lookups for MySQL
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQLRoleRepository
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{
		db: db,
	}
}

// GetByName retrieves a role by name
func (r *MySQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name FROM roles WHERE name = ?`

	err := querier.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	return &role, nil
}
