// Package repository provides data persistence implementations for sessions.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/stockbar/stockbar/internal/auth/domain"
	"github.com/stockbar/stockbar/internal/database"
	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// PostgreSQLSessionRepository handles session persistence for PostgreSQL.
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// NewPostgreSQLSessionRepository creates a new PostgreSQLSessionRepository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}

// Create inserts a new session.
func (r *PostgreSQLSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO sessions (id, user_id, created_at, expires_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query,
		session.ID, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create session")
	}
	return nil
}

// Get retrieves a session by ID.
func (r *PostgreSQLSessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var session domain.Session
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, created_at, expires_at
			  FROM sessions WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}

	return &session, nil
}

// Delete removes a session by ID.
func (r *PostgreSQLSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete session")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted session")
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes all expired sessions and returns the count.
func (r *PostgreSQLSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired sessions")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted sessions")
	}
	return affected, nil
}
