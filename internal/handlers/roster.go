package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/fadinha/embroidery_shop/internal/middleware/auth"
	"github.com/fadinha/embroidery_shop/internal/mykafka"
	"github.com/fadinha/embroidery_shop/internal/service"
)

type RosterHandler struct {
	Roster   *service.RosterService
	Producer *mykafka.Producer
}

func (h *RosterHandler) ListUsers(c echo.Context) error {
	sess := authmw.SessionFromContext(c)
	entries, err := h.Roster.List(c.Request().Context(), sess)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *RosterHandler) CreateUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sess := authmw.SessionFromContext(c)
	user, err := h.Roster.Create(c.Request().Context(), sess, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		CPF:      req.CPF,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "user_events", user.Email, map[string]interface{}{
		"type":       "user_created_by_admin",
		"email":      user.Email,
		"role":       user.Role,
		"created_by": sess.UserEmail,
	})

	return c.JSON(http.StatusCreated, user)
}
