package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
	"github.com/Esteban8482/blog-platform/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func profileFrom(m models.User) blog.UserProfile {
	return blog.UserProfile{
		ID:        m.ID,
		Username:  m.Username,
		Bio:       m.Bio,
		CreatedAt: m.CreatedAt,
	}
}

// Create registers a profile. A duplicate id or username reports a
// conflict so the directory's idempotent-registration contract holds.
func (r *UserRepository) Create(ctx context.Context, id, username string) (blog.UserProfile, error) {
	user := models.User{ID: id, Username: username}
	err := r.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return blog.UserProfile{}, domain.ConflictError{Resource: "user"}
	}
	if err != nil {
		return blog.UserProfile{}, err
	}
	return profileFrom(user), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (blog.UserProfile, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return blog.UserProfile{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return blog.UserProfile{}, err
	}
	return profileFrom(user), nil
}

// UpdateBio changes the bio of an existing profile. Username and id stay
// immutable.
func (r *UserRepository) UpdateBio(ctx context.Context, username, bio string) (blog.UserProfile, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return blog.UserProfile{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return blog.UserProfile{}, err
	}

	user.Bio = bio
	if err := r.db.WithContext(ctx).Model(&user).Update("bio", bio).Error; err != nil {
		return blog.UserProfile{}, err
	}
	return profileFrom(user), nil
}
