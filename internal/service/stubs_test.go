package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialposts/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listFn    func(context.Context) ([]*models.Post, error)
	getByIDFn func(context.Context, uint) (*models.Post, error)
	createFn  func(context.Context, *models.Post) error
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	findFn         func(context.Context, uint, uint) (*models.Like, error)
	saveFn         func(context.Context, *models.Like) (bool, error)
	deleteFn       func(context.Context, uint, uint) (int64, error)
	queryByRangeFn func(context.Context, time.Time, time.Time) ([]models.Like, error)
	countByDayFn   func(context.Context, time.Time, time.Time, *time.Location) (map[string]int64, error)
}

func (s *likeRepoStub) Find(ctx context.Context, userID, postID uint) (*models.Like, error) {
	return s.findFn(ctx, userID, postID)
}
func (s *likeRepoStub) Save(ctx context.Context, like *models.Like) (bool, error) {
	return s.saveFn(ctx, like)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, postID uint) (int64, error) {
	return s.deleteFn(ctx, userID, postID)
}
func (s *likeRepoStub) QueryByRange(ctx context.Context, from, to time.Time) ([]models.Like, error) {
	return s.queryByRangeFn(ctx, from, to)
}
func (s *likeRepoStub) CountByDay(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]int64, error) {
	return s.countByDayFn(ctx, from, to, loc)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		findFn:         func(_ context.Context, _, _ uint) (*models.Like, error) { return nil, nil },
		saveFn:         func(_ context.Context, _ *models.Like) (bool, error) { return true, nil },
		deleteFn:       func(_ context.Context, _, _ uint) (int64, error) { return 1, nil },
		queryByRangeFn: func(_ context.Context, _, _ time.Time) ([]models.Like, error) { return nil, nil },
		countByDayFn:   func(_ context.Context, _, _ time.Time, _ *time.Location) (map[string]int64, error) { return map[string]int64{}, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updatePasswordFn func(context.Context, uint, string) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return s.updatePasswordFn(ctx, id, hash)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:        func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:     func(_ context.Context, e string) (*models.User, error) { return nil, models.NewNotFoundError("User", e) },
		createFn:         func(_ context.Context, _ *models.User) error { return nil },
		updatePasswordFn: func(_ context.Context, _ uint, _ string) error { return nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}
