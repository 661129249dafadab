package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fadinha/embroidery_shop/internal/models"
	"github.com/fadinha/embroidery_shop/internal/service/token"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	sessionKey = "session"
)

type Middleware struct {
	Tokens *token.Service
}

func NewCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// RequireLogin resolves the session from the access cookie, rotating via the
// refresh cookie when the access token has expired.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := m.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		SetSession(c, sess)
		return next(c)
	}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := m.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		if !sess.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		SetSession(c, sess)
		return next(c)
	}
}

func (m *Middleware) resolve(c echo.Context) (models.Session, error) {
	if asCookie, err := c.Cookie(AccessCookie); err == nil {
		if sess, err := m.Tokens.ParseAccess(asCookie.Value); err == nil {
			return sess, nil
		}
	}

	rfCookie, err := c.Cookie(RefreshCookie)
	if err != nil {
		return models.GuestSession(), err
	}

	pair, sess, err := m.Tokens.Rotate(c.Request().Context(), rfCookie.Value)
	if err != nil {
		return models.GuestSession(), err
	}

	SetSessionCookies(c, pair)
	return sess, nil
}

func SetSessionCookies(c echo.Context, pair *token.Pair) {
	c.SetCookie(NewCookie(AccessCookie, pair.Access, "/", pair.AccessExp))
	c.SetCookie(NewCookie(RefreshCookie, pair.Refresh, "/", pair.RefreshExp))
}

func ClearSessionCookies(c echo.Context) {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(NewCookie(AccessCookie, "", "/", expired))
	c.SetCookie(NewCookie(RefreshCookie, "", "/", expired))
}

// SetSession stashes a resolved session on the request context.
func SetSession(c echo.Context, sess models.Session) {
	c.Set(sessionKey, sess)
}

// SessionFromContext returns the session stored by RequireLogin or
// RequireAdmin, or the guest session on unguarded routes.
func SessionFromContext(c echo.Context) models.Session {
	if v := c.Get(sessionKey); v != nil {
		if sess, ok := v.(models.Session); ok {
			return sess
		}
	}
	return models.GuestSession()
}
