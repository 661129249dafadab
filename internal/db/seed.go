package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fadinha/embroidery_shop/internal/hash"
	"github.com/fadinha/embroidery_shop/internal/logging"
	"github.com/fadinha/embroidery_shop/internal/models"
)

const (
	AdminEmail = "admin@fadinha.com"

	adminName     = "Admin Master"
	adminPassword = "456"
	adminCPF      = "999.999.999-99"
	adminAddress  = "Rua do Poder, 100"
)

// SeedAdmin guarantees the superuser exists. It runs on every startup and is
// a no-op once the row is there.
func SeedAdmin(ctx context.Context, db *gorm.DB, scheme hash.Scheme) error {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed admin lookup: %w", err)
	}

	stored, err := scheme.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("seed admin credentials: %w", err)
	}

	admin := models.User{
		Email:    AdminEmail,
		Name:     adminName,
		Password: stored,
		CPF:      adminCPF,
		Address:  adminAddress,
		Role:     models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin insert: %w", err)
	}

	logging.FromContext(ctx).Info("admin_seeded", "email", AdminEmail)
	return nil
}
