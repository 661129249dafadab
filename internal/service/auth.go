package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/fadinha/embroidery_shop/internal/hash"
	"github.com/fadinha/embroidery_shop/internal/logging"
	"github.com/fadinha/embroidery_shop/internal/models"
	"github.com/fadinha/embroidery_shop/internal/repo"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	Repo   *repo.GormRepo
	Scheme hash.Scheme
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	CPF      string
	Address  string
	Role     string
}

// Register persists a new identity. The caller-supplied role is honored,
// including "admin" from the public signup form.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if in.Role == "" {
		in.Role = models.RoleClient
	}
	if err := validateIdentity(in); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetUser(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_failed", "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: user lookup", ErrStorage)
	}

	stored, err := s.Scheme.Hash(in.Password)
	if err != nil {
		l.Error("register_failed", "reason", "hash_error", "error", err)
		return nil, fmt.Errorf("%w: credential hashing", ErrStorage)
	}

	user := models.User{
		Email:    in.Email,
		Name:     in.Name,
		Password: stored,
		CPF:      in.CPF,
		Address:  in.Address,
		Role:     in.Role,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("register_failed", "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: user insert", ErrStorage)
	}

	l.Info("register_success", "email", user.Email, "role", user.Role)
	return &user, nil
}

// Authenticate checks credentials and builds a session. A missing user and a
// wrong password return the identical error so the response cannot be used
// to enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (models.Session, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.GuestSession(), nil, ErrAuth
		}
		l.Error("login_failed", "reason", "db_error", "error", err)
		return models.GuestSession(), nil, fmt.Errorf("%w: user lookup", ErrStorage)
	}
	if !s.Scheme.Check(user.Password, password) {
		return models.GuestSession(), nil, ErrAuth
	}

	l.Info("login_success", "email", user.Email, "is_admin", user.Role == models.RoleAdmin)
	return models.SessionFor(user), user, nil
}

// Logout resets any session to the guest defaults.
func (s *AuthService) Logout(_ models.Session) models.Session {
	return models.GuestSession()
}

func validateIdentity(in RegisterInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case in.Email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case in.CPF == "":
		return fmt.Errorf("%w: cpf is required", ErrValidation)
	case in.Address == "":
		return fmt.Errorf("%w: address is required", ErrValidation)
	}
	if !emailPattern.MatchString(in.Email) {
		return fmt.Errorf("%w: email format is invalid", ErrValidation)
	}
	if len(in.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", ErrValidation, MinPasswordLength)
	}
	if in.Role != models.RoleClient && in.Role != models.RoleAdmin {
		return fmt.Errorf("%w: role must be client or admin", ErrValidation)
	}
	return nil
}
