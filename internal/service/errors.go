package service

import (
	"errors"
	"fmt"

	"github.com/fadinha/embroidery_shop/internal/models"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrAuth       = errors.New("invalid credentials")
	ErrForbidden  = errors.New("forbidden") // 403
	ErrNotFound   = errors.New("not found") // 404
	ErrConflict   = errors.New("conflict")  // 409
	ErrStorage    = errors.New("storage")   // 500
)

func requireLogin(sess models.Session) error {
	if !sess.LoggedIn {
		return fmt.Errorf("%w: login required", ErrAuth)
	}
	return nil
}

func requireAdmin(sess models.Session) error {
	if err := requireLogin(sess); err != nil {
		return err
	}
	if !sess.IsAdmin {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}
