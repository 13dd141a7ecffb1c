package usecase

import (
	"context"
	"fmt"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"
)

// UploaderMedia is the part of MediaUseCase user management depends on.
type UploaderMedia interface {
	Kind() entity.MediaKind
	CountByUploader(ctx context.Context, userID string) (int64, error)
	PurgeUploader(ctx context.Context, userID string) (int64, error)
}

type UserProfile struct {
	*entity.User
	PhotosCount int64 `json:"photos_count"`
	VideosCount int64 `json:"videos_count"`
}

type UserUseCase interface {
	ListUsers(filter entity.UserFilter, page, limit int) ([]*entity.User, entity.Pagination, error)
	GetUser(ctx context.Context, id string) (*UserProfile, error)
	UpdateRole(actorID, id string, role entity.UserRole) (*entity.User, error)
	SetActive(actorID, id string, active bool) (*entity.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
}

type userUseCase struct {
	userRepo persistent.UserRepository
	media    []UploaderMedia
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, logger *logger.Logger, media ...UploaderMedia) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
		media:    media,
		logger:   logger,
	}
}

func (uc *userUseCase) ListUsers(filter entity.UserFilter, page, limit int) ([]*entity.User, entity.Pagination, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, entity.Pagination{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, filter.Role)
	}
	page, limit = entity.NormalizePage(page, limit)

	users, total, err := uc.userRepo.List(filter, limit, entity.Offset(page, limit))
	if err != nil {
		uc.logger.Error("Failed to list users: %v", err)
		return nil, entity.Pagination{}, fmt.Errorf("failed to list users")
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, entity.NewPagination(page, limit, total), nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*UserProfile, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	user.Password = ""

	profile := &UserProfile{User: user}
	for _, m := range uc.media {
		count, err := m.CountByUploader(ctx, id)
		if err != nil {
			uc.logger.Warn("Failed to count %s of %s: %v", m.Kind().Collection(), id, err)
			continue
		}
		switch m.Kind() {
		case entity.KindPhoto:
			profile.PhotosCount = count
		case entity.KindVideo:
			profile.VideosCount = count
		}
	}
	return profile, nil
}

func (uc *userUseCase) UpdateRole(actorID, id string, role entity.UserRole) (*entity.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if actorID == id && role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: admins cannot demote themselves", ErrForbidden)
	}

	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	user.Role = role
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update role of %s: %v", id, err)
		return nil, fmt.Errorf("failed to update user")
	}

	uc.logger.Info("User %s changed role of %s to %s", actorID, id, role)
	user.Password = ""
	return user, nil
}

func (uc *userUseCase) SetActive(actorID, id string, active bool) (*entity.User, error) {
	if actorID == id && !active {
		return nil, fmt.Errorf("%w: admins cannot deactivate themselves", ErrForbidden)
	}

	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	user.IsActive = active
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update status of %s: %v", id, err)
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}

// DeleteUser purges the user's media, then the account. The account stays if
// any purge fails.
func (uc *userUseCase) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("%w: admins cannot delete themselves", ErrForbidden)
	}

	if _, err := uc.userRepo.GetByID(id); err != nil {
		return mapRepoError(err)
	}

	for _, m := range uc.media {
		deleted, err := m.PurgeUploader(ctx, id)
		if err != nil {
			uc.logger.Error("Failed to purge media of %s: %v", id, err)
			return fmt.Errorf("failed to delete user media")
		}
		if deleted > 0 {
			uc.logger.Info("Deleted %d %s of user %s", deleted, m.Kind().Collection(), id)
		}
	}

	if err := uc.userRepo.Delete(id); err != nil {
		return mapRepoError(err)
	}

	uc.logger.Info("User %s deleted user %s", actorID, id)
	return nil
}
