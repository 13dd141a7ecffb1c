package usecase

import (
	"context"
	"errors"
	"fmt"

	"studio-portfolio/pkg/middleware"
	"studio-portfolio/services/studio/internal/repo/persistent"
)

// AccountLookup reads a token subject's role and status from the user store.
type AccountLookup struct {
	userRepo persistent.UserRepository
}

func NewAccountLookup(userRepo persistent.UserRepository) *AccountLookup {
	return &AccountLookup{userRepo: userRepo}
}

func (l *AccountLookup) LookupAccount(_ context.Context, userID string) (middleware.Account, error) {
	user, err := l.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return middleware.Account{}, middleware.ErrAccountNotFound
		}
		return middleware.Account{}, fmt.Errorf("failed to load account %s: %w", userID, err)
	}
	return middleware.Account{Role: string(user.Role), Active: user.IsActive}, nil
}
