package http

import (
	"context"
	"mime/multipart"

	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockMediaUseCase struct {
	mock.Mock
	kind entity.MediaKind
}

func (m *MockMediaUseCase) Kind() entity.MediaKind {
	if m.kind == "" {
		return entity.KindPhoto
	}
	return m.kind
}

func (m *MockMediaUseCase) List(ctx context.Context, viewer entity.Viewer, filter entity.MediaFilter, page, limit int) ([]*entity.Media, entity.Pagination, error) {
	args := m.Called(viewer, filter, page, limit)
	if args.Get(0) == nil {
		return nil, entity.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]*entity.Media), args.Get(1).(entity.Pagination), args.Error(2)
}

func (m *MockMediaUseCase) Featured(ctx context.Context, viewer entity.Viewer, limit int) ([]*entity.Media, error) {
	args := m.Called(viewer, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Media), args.Error(1)
}

func (m *MockMediaUseCase) Categories(ctx context.Context, viewer entity.Viewer) (map[entity.Category]int64, error) {
	args := m.Called(viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.Category]int64), args.Error(1)
}

func (m *MockMediaUseCase) Get(ctx context.Context, viewer entity.Viewer, id, viewerKey string) (*entity.Media, error) {
	args := m.Called(viewer, id, viewerKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Media), args.Error(1)
}

func (m *MockMediaUseCase) Upload(ctx context.Context, viewer entity.Viewer, input usecase.MediaInput, file, poster *multipart.FileHeader) (*entity.Media, error) {
	args := m.Called(viewer, input, file, poster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Media), args.Error(1)
}

func (m *MockMediaUseCase) Update(ctx context.Context, viewer entity.Viewer, id string, update usecase.MediaUpdate) (*entity.Media, error) {
	args := m.Called(viewer, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Media), args.Error(1)
}

func (m *MockMediaUseCase) Delete(ctx context.Context, viewer entity.Viewer, id string) error {
	args := m.Called(viewer, id)
	return args.Error(0)
}

func (m *MockMediaUseCase) ToggleLike(ctx context.Context, viewer entity.Viewer, id string) (bool, int64, error) {
	args := m.Called(viewer, id)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockMediaUseCase) AddComment(ctx context.Context, viewer entity.Viewer, id, text string) (*entity.Comment, error) {
	args := m.Called(viewer, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockMediaUseCase) DeleteComment(ctx context.Context, viewer entity.Viewer, id, commentID string) error {
	args := m.Called(viewer, id, commentID)
	return args.Error(0)
}

func (m *MockMediaUseCase) CountByUploader(ctx context.Context, userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaUseCase) PurgeUploader(ctx context.Context, userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

var _ usecase.MediaUseCase = (*MockMediaUseCase)(nil)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(name, email, password string) (*entity.User, string, error) {
	args := m.Called(name, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(email, password string) (*entity.User, string, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetUser(userID string) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) UpdateProfile(userID string, name, bio *string) (*entity.User, error) {
	args := m.Called(userID, name, bio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) ChangePassword(userID, currentPassword, newPassword string) error {
	args := m.Called(userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthUseCase) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*entity.User, error) {
	args := m.Called(userID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) ListUsers(filter entity.UserFilter, page, limit int) ([]*entity.User, entity.Pagination, error) {
	args := m.Called(filter, page, limit)
	if args.Get(0) == nil {
		return nil, entity.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]*entity.User), args.Get(1).(entity.Pagination), args.Error(2)
}

func (m *MockUserUseCase) GetUser(ctx context.Context, id string) (*usecase.UserProfile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UserProfile), args.Error(1)
}

func (m *MockUserUseCase) UpdateRole(actorID, id string, role entity.UserRole) (*entity.User, error) {
	args := m.Called(actorID, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) SetActive(actorID, id string, active bool) (*entity.User, error) {
	args := m.Called(actorID, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) DeleteUser(ctx context.Context, actorID, id string) error {
	args := m.Called(actorID, id)
	return args.Error(0)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

type MockContactUseCase struct {
	mock.Mock
}

func (m *MockContactUseCase) Submit(ctx context.Context, msg *entity.ContactMessage) error {
	args := m.Called(msg)
	if args.Error(0) == nil {
		msg.ID = "665f1c2e9b1e8a3d4c5b6a80"
	}
	return args.Error(0)
}

func (m *MockContactUseCase) List(ctx context.Context, handled *bool, page, limit int) ([]*entity.ContactMessage, entity.Pagination, error) {
	args := m.Called(handled, page, limit)
	if args.Get(0) == nil {
		return nil, entity.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]*entity.ContactMessage), args.Get(1).(entity.Pagination), args.Error(2)
}

func (m *MockContactUseCase) MarkHandled(ctx context.Context, id string, handled bool) error {
	args := m.Called(id, handled)
	return args.Error(0)
}

var _ usecase.ContactUseCase = (*MockContactUseCase)(nil)
