package usecase

import (
	"context"
	"errors"
	"testing"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUploaderMedia struct {
	mock.Mock
	kind entity.MediaKind
}

func (m *MockUploaderMedia) Kind() entity.MediaKind { return m.kind }

func (m *MockUploaderMedia) CountByUploader(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUploaderMedia) PurgeUploader(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestUserUseCase() (UserUseCase, *MockUserRepository, *MockUploaderMedia, *MockUploaderMedia) {
	users := new(MockUserRepository)
	photos := &MockUploaderMedia{kind: entity.KindPhoto}
	videos := &MockUploaderMedia{kind: entity.KindVideo}
	return NewUserUseCase(users, logger.NewNop(), photos, videos), users, photos, videos
}

func TestUserUseCase_ListUsers(t *testing.T) {
	uc, users, _, _ := newTestUserUseCase()
	filter := entity.UserFilter{Role: entity.RolePhotographer}
	users.On("List", filter, 12, 12).Return([]*entity.User{{ID: "u1", Password: "hash"}}, int64(13), nil)

	list, page, err := uc.ListUsers(filter, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Password)
	assert.Equal(t, 2, page.Pages)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)

	_, _, err = uc.ListUsers(entity.UserFilter{Role: "superuser"}, 1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserUseCase_GetUser_CountsMedia(t *testing.T) {
	uc, users, photos, videos := newTestUserUseCase()
	ctx := context.Background()
	users.On("GetByID", "u1").Return(&entity.User{ID: "u1", Password: "hash"}, nil)
	photos.On("CountByUploader", ctx, "u1").Return(int64(7), nil)
	videos.On("CountByUploader", ctx, "u1").Return(int64(0), errors.New("mongo down"))

	profile, err := uc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.PhotosCount)
	assert.Equal(t, int64(0), profile.VideosCount)
	assert.Empty(t, profile.Password)

	users.On("GetByID", "ghost").Return(nil, persistent.ErrNotFound)
	_, err = uc.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserUseCase_UpdateRole(t *testing.T) {
	uc, users, _, _ := newTestUserUseCase()
	users.On("GetByID", "u2").Return(&entity.User{ID: "u2", Role: entity.RoleClient}, nil)
	users.On("Update", mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := uc.UpdateRole("admin-1", "u2", entity.RolePhotographer)
	require.NoError(t, err)
	assert.Equal(t, entity.RolePhotographer, user.Role)

	_, err = uc.UpdateRole("admin-1", "admin-1", entity.RoleClient)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.UpdateRole("admin-1", "u2", "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserUseCase_SetActive(t *testing.T) {
	uc, users, _, _ := newTestUserUseCase()
	users.On("GetByID", "u2").Return(&entity.User{ID: "u2", IsActive: true}, nil)
	users.On("Update", mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := uc.SetActive("admin-1", "u2", false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	_, err = uc.SetActive("admin-1", "admin-1", false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserUseCase_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("purges media then account", func(t *testing.T) {
		uc, users, photos, videos := newTestUserUseCase()
		users.On("GetByID", "u2").Return(&entity.User{ID: "u2"}, nil)
		photos.On("PurgeUploader", ctx, "u2").Return(int64(3), nil)
		videos.On("PurgeUploader", ctx, "u2").Return(int64(1), nil)
		users.On("Delete", "u2").Return(nil)

		require.NoError(t, uc.DeleteUser(ctx, "admin-1", "u2"))
		photos.AssertExpectations(t)
		videos.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("keeps account when purge fails", func(t *testing.T) {
		uc, users, photos, _ := newTestUserUseCase()
		users.On("GetByID", "u2").Return(&entity.User{ID: "u2"}, nil)
		photos.On("PurgeUploader", ctx, "u2").Return(int64(0), errors.New("mongo down"))

		require.Error(t, uc.DeleteUser(ctx, "admin-1", "u2"))
		users.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("self delete", func(t *testing.T) {
		uc, _, _, _ := newTestUserUseCase()
		assert.ErrorIs(t, uc.DeleteUser(ctx, "admin-1", "admin-1"), ErrForbidden)
	})

	t.Run("missing user", func(t *testing.T) {
		uc, users, _, _ := newTestUserUseCase()
		users.On("GetByID", "ghost").Return(nil, persistent.ErrNotFound)
		assert.ErrorIs(t, uc.DeleteUser(ctx, "admin-1", "ghost"), ErrNotFound)
	})
}
