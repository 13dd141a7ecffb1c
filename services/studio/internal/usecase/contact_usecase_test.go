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

func TestContactUseCase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and stores", func(t *testing.T) {
		repo := new(MockContactRepository)
		uc := NewContactUseCase(repo, logger.NewNop())
		repo.On("Create", ctx, mock.AnythingOfType("*entity.ContactMessage")).Return(nil)

		msg := &entity.ContactMessage{Name: " Jo ", Email: " Jo@Mail.test ", Message: " Need a wedding shoot ", Handled: true}
		require.NoError(t, uc.Submit(ctx, msg))
		assert.Equal(t, "Jo", msg.Name)
		assert.Equal(t, "jo@mail.test", msg.Email)
		assert.Equal(t, "Need a wedding shoot", msg.Message)
		assert.False(t, msg.Handled)
	})

	t.Run("validation", func(t *testing.T) {
		repo := new(MockContactRepository)
		uc := NewContactUseCase(repo, logger.NewNop())

		assert.ErrorIs(t, uc.Submit(ctx, &entity.ContactMessage{Email: "a@b.c", Message: "hi"}), ErrInvalidInput)
		assert.ErrorIs(t, uc.Submit(ctx, &entity.ContactMessage{Name: "Jo", Message: "hi"}), ErrInvalidInput)
		assert.ErrorIs(t, uc.Submit(ctx, &entity.ContactMessage{Name: "Jo", Email: "a@b.c", Message: "  "}), ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockContactRepository)
		uc := NewContactUseCase(repo, logger.NewNop())
		repo.On("Create", ctx, mock.Anything).Return(errors.New("mongo down"))

		err := uc.Submit(ctx, &entity.ContactMessage{Name: "Jo", Email: "a@b.c", Message: "hi"})
		assert.EqualError(t, err, "failed to send message")
	})
}

func TestContactUseCase_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	uc := NewContactUseCase(repo, logger.NewNop())
	handled := false
	repo.On("List", ctx, &handled, 5, 10).Return([]*entity.ContactMessage{{ID: "m1"}}, int64(11), nil)

	items, page, err := uc.List(ctx, &handled, 3, 5)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, page.Pages)
	assert.False(t, page.HasNext)
}

func TestContactUseCase_MarkHandled(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	uc := NewContactUseCase(repo, logger.NewNop())
	repo.On("SetHandled", ctx, "m1", true).Return(nil)
	repo.On("SetHandled", ctx, "missing", true).Return(persistent.ErrNotFound)
	repo.On("SetHandled", ctx, "zzz", true).Return(persistent.ErrInvalidID)

	require.NoError(t, uc.MarkHandled(ctx, "m1", true))
	assert.ErrorIs(t, uc.MarkHandled(ctx, "missing", true), ErrNotFound)
	assert.ErrorIs(t, uc.MarkHandled(ctx, "zzz", true), ErrInvalidID)
}
