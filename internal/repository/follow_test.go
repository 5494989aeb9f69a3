package repository

import (
	"context"
	"testing"

	"glimpse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewFollowRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "follows"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(ctx, &models.Follow{FollowerID: "user-1", FollowingID: "user-2"})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unique violation reports conflict", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewFollowRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "follows"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_follower_following"})
		mock.ExpectRollback()

		err := repo.Create(ctx, &models.Follow{FollowerID: "user-1", FollowingID: "user-2"})
		assert.ErrorIs(t, err, ErrAlreadyFollowing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFollowRepository_Delete_Idempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "follows" WHERE follower_id = \$1 AND following_id = \$2`).
		WithArgs("user-1", "user-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(ctx, "user-1", "user-2")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE following_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	followers, err := repo.CountFollowers(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), followers)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE follower_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	following, err := repo.CountFollowing(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), following)

	assert.NoError(t, mock.ExpectationsWereMet())
}
