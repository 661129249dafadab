package repo

import (
	"context"

	"github.com/fadinha/embroidery_shop/internal/models"
)

func (r *GormRepo) GetUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// ListUsers returns admins first, alphabetical within each role group. The
// CASE keeps the ordering stable across sqlite and postgres collations.
func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Order("CASE WHEN role = 'admin' THEN 0 ELSE 1 END, name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
