package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fadinha/embroidery_shop/internal/db"
	"github.com/fadinha/embroidery_shop/internal/hash"
	"github.com/fadinha/embroidery_shop/internal/imagestore"
	"github.com/fadinha/embroidery_shop/internal/models"
	"github.com/fadinha/embroidery_shop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return repo.New(gdb)
}

func newTestImages(t *testing.T) *imagestore.Store {
	t.Helper()
	images, err := imagestore.New(t.TempDir())
	require.NoError(t, err)
	return images
}

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: newTestRepo(t), Images: newTestImages(t)}
}

func validRegistration(email, role string) RegisterInput {
	return RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: "secret1",
		CPF:      "123.456.789-00",
		Address:  "Rua das Flores, 1",
		Role:     role,
	}
}

func adminSession() models.Session {
	return models.Session{LoggedIn: true, Username: "Admin", UserEmail: "admin@fadinha.com", IsAdmin: true}
}

func clientSession() models.Session {
	return models.Session{LoggedIn: true, Username: "Client", UserEmail: "client@example.com", IsAdmin: false}
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{Repo: newTestRepo(t), Scheme: hash.Bcrypt{}}
}
