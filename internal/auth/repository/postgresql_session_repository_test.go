package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbar/stockbar/internal/auth/domain"
)

func newSessionRepoMock(t *testing.T) (*PostgreSQLSessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgreSQLSessionRepository(db), mock
}

func TestPostgreSQLSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    uuid.Must(uuid.NewV7()),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	t.Run("inserts the session", func(t *testing.T) {
		repo, mock := newSessionRepoMock(t)

		mock.ExpectExec(`INSERT INTO sessions`).
			WithArgs(session.ID, session.UserID, session.CreatedAt, session.ExpiresAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, session)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock := newSessionRepoMock(t)

		mock.ExpectExec(`INSERT INTO sessions`).
			WillReturnError(assert.AnError)

		err := repo.Create(ctx, session)
		assert.Error(t, err)
	})
}

func TestPostgreSQLSessionRepository_Get(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	t.Run("returns the session", func(t *testing.T) {
		repo, mock := newSessionRepoMock(t)

		rows := sqlmock.NewRows([]string{"id", "user_id", "created_at", "expires_at"}).
			AddRow(sessionID.String(), userID.String(), now, now.Add(time.Hour))
		mock.ExpectQuery(`SELECT id, user_id, created_at, expires_at`).
			WithArgs(sessionID).
			WillReturnRows(rows)

		session, err := repo.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, sessionID, session.ID)
		assert.Equal(t, userID, session.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown session", func(t *testing.T) {
		repo, mock := newSessionRepoMock(t)

		mock.ExpectQuery(`SELECT id, user_id, created_at, expires_at`).
			WithArgs(sessionID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "expires_at"}))

		_, err := repo.Get(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestPostgreSQLSessionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.Must(uuid.NewV7())

	t.Run("deletes the session", func(t *testing.T) {
		repo, mock := newSessionRepoMock(t)

		mock.ExpectExec(`DELETE FROM sessions WHERE id`).
			WithArgs(sessionID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, sessionID)
		assert.NoError(t, err)
	})

	t.Run("unknown session", func(t *testing.T) {
		repo, mock := newSessionRepoMock(t)

		mock.ExpectExec(`DELETE FROM sessions WHERE id`).
			WithArgs(sessionID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestPostgreSQLSessionRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()

	repo, mock := newSessionRepoMock(t)

	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at`).
		WillReturnResult(sqlmock.NewResult(0, 5))

	count, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
