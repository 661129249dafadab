package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/fadinha/embroidery_shop/internal/middleware/auth"
	"github.com/fadinha/embroidery_shop/internal/mykafka"
	"github.com/fadinha/embroidery_shop/internal/service"
	"github.com/fadinha/embroidery_shop/internal/service/token"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Tokens   *token.Service
	Producer *mykafka.Producer
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	CPF      string `json:"cpf"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Auth.Register(ctx, service.RegisterInput{
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
		"type":  "user_registered",
		"email": user.Email,
		"role":  user.Role,
	})

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sess, user, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	pair, err := h.Tokens.Issue(ctx, user)
	if err != nil {
		return httpError(err)
	}
	authmw.SetSessionCookies(c, pair)

	publish(c, h.Producer, "user_events", user.Email, map[string]interface{}{
		"type":  "user_logged_in",
		"email": user.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  pair.Access,
		"refresh_token": pair.Refresh,
		"session":       sess,
	})
}

// LogOut always succeeds: the refresh token is revoked when present and the
// cookies are reset to the guest state either way.
func (h *AuthHandler) LogOut(c echo.Context) error {
	ctx := c.Request().Context()

	if rfCookie, err := c.Cookie(authmw.RefreshCookie); err == nil {
		if err := h.Tokens.Revoke(ctx, rfCookie.Value); err != nil {
			return httpError(err)
		}
	}
	authmw.ClearSessionCookies(c)

	sess := h.Auth.Logout(authmw.SessionFromContext(c))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
		"session": sess,
	})
}
