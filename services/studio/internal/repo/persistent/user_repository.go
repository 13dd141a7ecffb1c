package persistent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
	List(filter entity.UserFilter, limit, offset int) ([]*entity.User, int64, error)
	Update(user *entity.User) error
	UpdateLastLogin(id string, at time.Time) error
	Delete(id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	userModel.Email = strings.ToLower(strings.TrimSpace(userModel.Email))
	if err := r.db.Create(userModel).Error; err != nil {
		return translateGormError(err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&userModel).Error
	if err != nil {
		return nil, translateGormError(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, translateGormError(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) List(filter entity.UserFilter, limit, offset int) ([]*entity.User, int64, error) {
	query := r.db.Model(&model.UserModel{})
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userModels []model.UserModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, total, nil
}

// Update writes every column, including false booleans.
func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	userModel.Email = strings.ToLower(strings.TrimSpace(userModel.Email))
	if err := r.db.Save(userModel).Error; err != nil {
		return translateGormError(err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) UpdateLastLogin(id string, at time.Time) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("last_login_at", at).Error
}

func (r *userRepository) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res := r.db.Where("id = ?", id).Delete(&model.UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translateGormError expects the connection opened with TranslateError.
func translateGormError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
