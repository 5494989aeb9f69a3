package service

import (
	"context"
	"testing"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs for the repository interfaces. Tests override only the
// calls they care about.

type userRepoStub struct {
	getByIDFn          func(context.Context, string) (*models.User, error)
	getByIDWithPostsFn func(context.Context, string, int) (*models.User, error)
	getByAuthIDFn      func(context.Context, string) (*models.User, error)
	resolveByAnyIDFn   func(context.Context, string) (*models.User, error)
	upsertByAuthIDFn   func(context.Context, *models.User) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	listFn             func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id string, limit int) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	return s.getByAuthIDFn(ctx, authID)
}
func (s *userRepoStub) ResolveByAnyID(ctx context.Context, identifier string) (*models.User, error) {
	return s.resolveByAnyIDFn(ctx, identifier)
}
func (s *userRepoStub) UpsertByAuthID(ctx context.Context, user *models.User) (*models.User, error) {
	return s.upsertByAuthIDFn(ctx, user)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(_ context.Context, id string) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDWithPostsFn: func(_ context.Context, id string, _ int) (*models.User, error) { return &models.User{ID: id}, nil },
		getByAuthIDFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		resolveByAnyIDFn:   func(_ context.Context, id string) (*models.User, error) { return &models.User{ID: id}, nil },
		upsertByAuthIDFn:   func(_ context.Context, u *models.User) (*models.User, error) { return u, nil },
		createFn:           func(_ context.Context, _ *models.User) error { return nil },
		updateFn:           func(_ context.Context, _ *models.User) error { return nil },
		listFn:             func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, string, string) (*models.Post, error)
	listFn        func(context.Context, int, int, string) ([]models.Post, int64, error)
	getByUserIDFn func(context.Context, string, int, int, string) ([]models.Post, error)
	countByUserFn func(context.Context, string) (int64, error)
	deleteFn      func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID string) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, viewerID string) ([]models.Post, int64, error) {
	return s.listFn(ctx, limit, offset, viewerID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID string, limit, offset int, viewerID string) ([]models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, viewerID)
}
func (s *postRepoStub) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.countByUserFn(ctx, userID)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:      func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:     func(_ context.Context, id, _ string) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:        func(_ context.Context, _, _ int, _ string) ([]models.Post, int64, error) { return nil, 0, nil },
		getByUserIDFn: func(_ context.Context, _ string, _, _ int, _ string) ([]models.Post, error) { return nil, nil },
		countByUserFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
		deleteFn:      func(_ context.Context, _ string) error { return nil },
	}
}

type commentRepoStub struct {
	createFn           func(context.Context, *models.Comment) error
	getByIDFn          func(context.Context, string) (*models.Comment, error)
	listByPostFn       func(context.Context, string, int, int) ([]models.Comment, error)
	previewByPostIDsFn func(context.Context, []string, int) (map[string][]models.Comment, error)
	deleteFn           func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID string, limit, offset int) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) PreviewByPostIDs(ctx context.Context, postIDs []string, perPost int) (map[string][]models.Comment, error) {
	return s.previewByPostIDsFn(ctx, postIDs, perPost)
}
func (s *commentRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id string) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ string, _, _ int) ([]models.Comment, error) { return nil, nil },
		previewByPostIDsFn: func(_ context.Context, _ []string, _ int) (map[string][]models.Comment, error) {
			return map[string][]models.Comment{}, nil
		},
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

type likeRepoStub struct {
	likeFn    func(context.Context, string, string) error
	unlikeFn  func(context.Context, string, string) error
	isLikedFn func(context.Context, string, string) (bool, error)
}

func (s *likeRepoStub) Like(ctx context.Context, userID, postID string) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *likeRepoStub) Unlike(ctx context.Context, userID, postID string) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, userID, postID string) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		likeFn:    func(_ context.Context, _, _ string) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ string) error { return nil },
		isLikedFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
	}
}

type followRepoStub struct {
	createFn         func(context.Context, *models.Follow) error
	deleteFn         func(context.Context, string, string) error
	existsFn         func(context.Context, string, string) (bool, error)
	countFollowersFn func(context.Context, string) (int64, error)
	countFollowingFn func(context.Context, string) (int64, error)
	listFollowersFn  func(context.Context, string, int, int) ([]models.User, error)
	listFollowingFn  func(context.Context, string, int, int) ([]models.User, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID string) error {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.existsFn(ctx, followerID, followingID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID string, limit, offset int) ([]models.User, error) {
	return s.listFollowersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID string, limit, offset int) ([]models.User, error) {
	return s.listFollowingFn(ctx, userID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:         func(_ context.Context, _, _ string) error { return nil },
		existsFn:         func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		countFollowersFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
		countFollowingFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
		listFollowersFn:  func(_ context.Context, _ string, _, _ int) ([]models.User, error) { return nil, nil },
		listFollowingFn:  func(_ context.Context, _ string, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}
