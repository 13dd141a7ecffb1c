package usecase

import (
	"context"
	"errors"
	"testing"

	"studio-portfolio/pkg/middleware"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountLookup(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("GetByID", "demoted").Return(&entity.User{ID: "demoted", Role: entity.RoleClient, IsActive: true}, nil)
	users.On("GetByID", "disabled").Return(&entity.User{ID: "disabled", Role: entity.RoleAdmin, IsActive: false}, nil)
	users.On("GetByID", "gone").Return(nil, persistent.ErrNotFound)
	users.On("GetByID", "broken").Return(nil, errors.New("connection reset"))

	lookup := NewAccountLookup(users)

	account, err := lookup.LookupAccount(ctx, "demoted")
	require.NoError(t, err)
	assert.Equal(t, middleware.Account{Role: "client", Active: true}, account)

	account, err = lookup.LookupAccount(ctx, "disabled")
	require.NoError(t, err)
	assert.False(t, account.Active)

	_, err = lookup.LookupAccount(ctx, "gone")
	assert.ErrorIs(t, err, middleware.ErrAccountNotFound)

	_, err = lookup.LookupAccount(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, middleware.ErrAccountNotFound)
}
