package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadinha/embroidery_shop/internal/models"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

type Pair struct {
	Access     string
	Refresh    string
	AccessExp  time.Time
	RefreshExp time.Time
}

// Issue signs an access/refresh pair for the user and persists the refresh
// token so it can be revoked.
func (t *Service) Issue(ctx context.Context, user *models.User) (*Pair, error) {
	accessExp := time.Now().Add(AccessTTL)
	access, err := t.signAccess(user.Email, user.Name, user.Role, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(RefreshTTL)
	refresh, err := t.signRefresh(user.Email, user.Name, user.Role, refreshExp)
	if err != nil {
		return nil, err
	}

	stored := models.RefreshToken{
		Token:     refresh,
		UserEmail: user.Email,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := t.DB.WithContext(ctx).Create(&stored).Error; err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &Pair{Access: access, Refresh: refresh, AccessExp: accessExp, RefreshExp: refreshExp}, nil
}

// Rotate exchanges a valid refresh token for a fresh pair and revokes the
// old one.
func (t *Service) Rotate(ctx context.Context, rawRefresh string) (*Pair, models.Session, error) {
	claims, err := t.parseRefresh(rawRefresh)
	if err != nil {
		return nil, models.GuestSession(), err
	}

	var stored models.RefreshToken
	if err := t.DB.WithContext(ctx).Where("token = ?", rawRefresh).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.GuestSession(), ErrInvalidToken
		}
		return nil, models.GuestSession(), fmt.Errorf("lookup refresh token: %w", err)
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return nil, models.GuestSession(), ErrInvalidToken
	}

	user := models.User{
		Email: claims.Subject,
		Name:  claims.Name,
		Role:  claims.Role,
	}
	pair, err := t.Issue(ctx, &user)
	if err != nil {
		return nil, models.GuestSession(), err
	}

	if err := t.revoke(ctx, rawRefresh); err != nil {
		return nil, models.GuestSession(), err
	}

	return pair, models.SessionFor(&user), nil
}

// Revoke marks a refresh token unusable. Unknown tokens are not an error:
// logout must always succeed.
func (t *Service) Revoke(ctx context.Context, rawRefresh string) error {
	if rawRefresh == "" {
		return nil
	}
	return t.revoke(ctx, rawRefresh)
}

func (t *Service) revoke(ctx context.Context, rawRefresh string) error {
	return t.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ?", rawRefresh).
		Update("revoked", true).Error
}

type sessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Typ  string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// ParseAccess validates an access token and rebuilds the session it carries.
func (t *Service) ParseAccess(raw string) (models.Session, error) {
	claims, err := parse(raw, t.JWTSecret)
	if err != nil {
		return models.GuestSession(), err
	}
	if claims.Typ != "" {
		return models.GuestSession(), ErrInvalidToken
	}
	user := models.User{Email: claims.Subject, Name: claims.Name, Role: claims.Role}
	return models.SessionFor(&user), nil
}

func (t *Service) parseRefresh(raw string) (*sessionClaims, error) {
	claims, err := parse(raw, t.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.Typ != "refresh" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func parse(raw string, secret []byte) (*sessionClaims, error) {
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", tok.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (t *Service) signAccess(email, name, role string, exp time.Time) (string, error) {
	claims := sessionClaims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.JWTSecret)
}

func (t *Service) signRefresh(email, name, role string, exp time.Time) (string, error) {
	// The jti keeps two refresh tokens minted in the same second distinct,
	// which the unique constraint on refresh_tokens.token relies on.
	claims := sessionClaims{
		Name: name,
		Role: role,
		Typ:  "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.RefreshSecret)
}
