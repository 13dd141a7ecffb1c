package usecase

import (
	"context"
	"io"
	"time"

	"studio-portfolio/pkg/queue"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(filter entity.UserFilter, limit, offset int) ([]*entity.User, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(id string, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

type MockMediaRepository struct {
	mock.Mock
	kind entity.MediaKind
}

func (m *MockMediaRepository) Kind() entity.MediaKind {
	if m.kind == "" {
		return entity.KindPhoto
	}
	return m.kind
}

func (m *MockMediaRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMediaRepository) Create(ctx context.Context, media *entity.Media) error {
	args := m.Called(ctx, media)
	if args.Error(0) == nil && media.ID == "" {
		media.ID = "665f1c2e9b1e8a3d4c5b6a70"
	}
	return args.Error(0)
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id string) (*entity.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Media), args.Error(1)
}

func (m *MockMediaRepository) GetVisible(ctx context.Context, id string, viewer entity.Viewer) (*entity.Media, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Media), args.Error(1)
}

func (m *MockMediaRepository) List(ctx context.Context, filter entity.MediaFilter, viewer entity.Viewer, limit, offset int) ([]*entity.Media, int64, error) {
	args := m.Called(ctx, filter, viewer, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Media), args.Get(1).(int64), args.Error(2)
}

func (m *MockMediaRepository) CategoryCounts(ctx context.Context, viewer entity.Viewer) (map[entity.Category]int64, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.Category]int64), args.Error(1)
}

func (m *MockMediaRepository) Update(ctx context.Context, media *entity.Media) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaRepository) ListByUploader(ctx context.Context, userID string) ([]*entity.Media, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Media), args.Error(1)
}

func (m *MockMediaRepository) DeleteByUploader(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaRepository) CountByUploader(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaRepository) AddLike(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMediaRepository) RemoveLike(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMediaRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaRepository) AddComment(ctx context.Context, id string, comment *entity.Comment) error {
	args := m.Called(ctx, id, comment)
	if args.Error(0) == nil && comment.ID == "" {
		comment.ID = "665f1c2e9b1e8a3d4c5b6a99"
	}
	return args.Error(0)
}

func (m *MockMediaRepository) RemoveComment(ctx context.Context, id, commentID string) error {
	args := m.Called(ctx, id, commentID)
	return args.Error(0)
}

var _ persistent.MediaRepository = (*MockMediaRepository)(nil)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, msg *entity.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, handled *bool, limit, offset int) ([]*entity.ContactMessage, int64, error) {
	args := m.Called(ctx, handled, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.ContactMessage), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) SetHandled(ctx context.Context, id string, handled bool) error {
	args := m.Called(ctx, id, handled)
	return args.Error(0)
}

var _ persistent.ContactRepository = (*MockContactRepository)(nil)

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var _ MediaStore = (*MockMediaStore)(nil)

type MockCleanupPublisher struct {
	mock.Mock
}

func (m *MockCleanupPublisher) PublishCleanupTask(ctx context.Context, task queue.CleanupTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

var _ CleanupPublisher = (*MockCleanupPublisher)(nil)

type stubViewTracker struct {
	count bool
}

func (s stubViewTracker) ShouldCount(ctx context.Context, kind entity.MediaKind, mediaID, viewerKey string) bool {
	return s.count
}
