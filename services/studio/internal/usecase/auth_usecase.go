package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"
	"unicode/utf8"

	"studio-portfolio/pkg/imaging"
	"studio-portfolio/pkg/jwt"
	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	MaxNameLength     = 100
	MaxBioLength      = 1000
)

type AuthUseCase interface {
	Register(name, email, password string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, name, bio *string) (*entity.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	store      MediaStore
	processor  *imaging.Processor
	logger     *logger.Logger
	hashCost   int
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	store MediaStore,
	processor *imaging.Processor,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		store:      store,
		processor:  processor,
		logger:     logger,
		hashCost:   bcrypt.DefaultCost,
	}
}

func (uc *authUseCase) Register(name, email, password string) (*entity.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, "", fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, MaxNameLength)
	}
	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	_, err := uc.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", fmt.Errorf("%w: user with this email already exists", ErrConflict)
	}
	if !errors.Is(err, persistent.ErrNotFound) {
		uc.logger.Error("Failed to look up email: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     entity.RoleClient,
		IsActive: true,
	}

	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, persistent.ErrDuplicate) {
			return nil, "", fmt.Errorf("%w: user with this email already exists", ErrConflict)
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, persistent.ErrNotFound) {
			uc.logger.Error("Failed to look up user: %v", err)
		}
		return nil, "", ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrUnauthorized
	}

	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	now := time.Now().UTC()
	if err := uc.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		uc.logger.Warn("Failed to record login for %s: %v", user.ID, err)
	} else {
		user.LastLoginAt = &now
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UpdateProfile(userID string, name, bio *string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxNameLength {
			return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, MaxNameLength)
		}
		user.Name = trimmed
	}
	if bio != nil {
		trimmed := strings.TrimSpace(*bio)
		if utf8.RuneCountInString(trimmed) > MaxBioLength {
			return nil, fmt.Errorf("%w: bio exceeds %d characters", ErrInvalidInput, MaxBioLength)
		}
		user.Bio = trimmed
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return mapRepoError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalidInput)
	}
	if len(newPassword) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), uc.hashCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return fmt.Errorf("failed to change password")
	}

	user.Password = string(hashedPassword)
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return fmt.Errorf("failed to change password")
	}
	return nil
}

// UploadAvatar stores a square-bounded thumbnail of the image as the user's
// avatar.
func (uc *authUseCase) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	checked, err := openChecked(file, entity.KindPhoto, maxPosterBytes)
	if err != nil {
		return nil, err
	}
	defer checked.Close()

	img, _, err := uc.processor.Decode(checked.file)
	if err != nil {
		return nil, decodeError(err)
	}
	thumb, err := uc.processor.Thumbnail(img)
	if err != nil {
		return nil, fmt.Errorf("failed to process avatar: %w", err)
	}

	key := fmt.Sprintf("avatars/%s/%s.jpg", userID, uuid.New().String())
	avatarURL, err := uc.store.Upload(ctx, key, bytes.NewReader(thumb.Data), thumb.ContentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar")
	}

	user.AvatarURL = avatarURL
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		if delErr := uc.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			uc.logger.Warn("Failed to delete orphaned avatar %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}
