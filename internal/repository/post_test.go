package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	postRows := sqlmock.NewRows([]string{"id", "user_id", "image_url", "caption", "created_at", "comment_count", "like_count", "liked"}).
		AddRow("post-1", "user-1", "/media/a.jpg", "first", now, 2, 5, true).
		AddRow("post-2", "user-1", "/media/b.jpg", "second", now.Add(-time.Minute), 0, 1, false)
	mock.ExpectQuery(`SELECT posts\.\*, \(SELECT COUNT\(\*\) FROM comments WHERE comments\.post_id = posts\.id\) as comment_count, \(SELECT COUNT\(\*\) FROM likes WHERE likes\.post_id = posts\.id\) as like_count, EXISTS\(SELECT 1 FROM likes WHERE likes\.post_id = posts\.id AND likes\.user_id = \$1\) as liked FROM "posts" ORDER BY posts\.created_at DESC, posts\.seq DESC`).
		WithArgs("viewer-1").
		WillReturnRows(postRows)

	userRows := sqlmock.NewRows([]string{"id", "auth_id", "display_name"}).
		AddRow("user-1", "auth0|u1", "Poster")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs("user-1").
		WillReturnRows(userRows)

	posts, total, err := repo.List(ctx, 10, 0, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, posts, 2)

	assert.Equal(t, int64(5), posts[0].LikeCount)
	assert.Equal(t, int64(2), posts[0].CommentCount)
	assert.True(t, posts[0].Liked)
	assert.False(t, posts[1].Liked)
	require.NotNil(t, posts[0].User)
	assert.Equal(t, "Poster", posts[0].User.DisplayName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List_AnonymousViewer(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// No viewer: liked is selected as a constant false, no bind args.
	mock.ExpectQuery(`SELECT posts\.\*, .* false as liked FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posts, total, err := repo.List(ctx, 10, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT posts\.\*, .* FROM "posts" WHERE posts\.id = \$2`).
		WillReturnError(gorm.ErrRecordNotFound)

	post, err := repo.GetByID(ctx, "missing", "viewer-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CountByUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
