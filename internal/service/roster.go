package service

import (
	"context"
	"fmt"

	"github.com/fadinha/embroidery_shop/internal/logging"
	"github.com/fadinha/embroidery_shop/internal/models"
	"github.com/fadinha/embroidery_shop/internal/repo"
)

type RosterService struct {
	Repo *repo.GormRepo
	Auth *AuthService
}

type RosterEntry struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	CPF   string `json:"cpf"`
}

// List returns every identity, admins first and alphabetical within each
// role.
func (s *RosterService) List(ctx context.Context, sess models.Session) ([]RosterEntry, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	users, err := s.Repo.ListUsers(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_users_failed", "error", err)
		return nil, fmt.Errorf("%w: user list", ErrStorage)
	}

	entries := make([]RosterEntry, len(users))
	for i, u := range users {
		entries[i] = RosterEntry{Name: u.Name, Email: u.Email, Role: u.Role, CPF: u.CPF}
	}
	return entries, nil
}

// Create is the admin-side identity creation; the contract matches public
// registration, arbitrary role included.
func (s *RosterService) Create(ctx context.Context, sess models.Session, in RegisterInput) (*models.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.Auth.Register(ctx, in)
}
