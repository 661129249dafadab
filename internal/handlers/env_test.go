package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fadinha/embroidery_shop/internal/db"
	"github.com/fadinha/embroidery_shop/internal/hash"
	"github.com/fadinha/embroidery_shop/internal/imagestore"
	"github.com/fadinha/embroidery_shop/internal/models"
	authmw "github.com/fadinha/embroidery_shop/internal/middleware/auth"
	"github.com/fadinha/embroidery_shop/internal/mykafka"
	"github.com/fadinha/embroidery_shop/internal/repo"
	"github.com/fadinha/embroidery_shop/internal/service"
	"github.com/fadinha/embroidery_shop/internal/service/token"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Repo   *repo.GormRepo
	Auth   *AuthHandler
	Prod   *ProductHandler
	Order  *OrderHandler
	Roster *RosterHandler
	Tokens *token.Service
	Users  *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	images, err := imagestore.New(t.TempDir())
	require.NoError(t, err)

	store := repo.New(gdb)
	producer := &mykafka.Producer{}
	authSvc := &service.AuthService{Repo: store, Scheme: hash.Bcrypt{}}
	catalogSvc := &service.CatalogService{Repo: store, Images: images}
	orderSvc := &service.OrderService{Repo: store, Images: images, Catalog: catalogSvc}
	rosterSvc := &service.RosterService{Repo: store, Auth: authSvc}
	tokenSvc := &token.Service{
		DB:            gdb,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     gdb,
		Repo:   store,
		Auth:   &AuthHandler{Auth: authSvc, Tokens: tokenSvc, Producer: producer},
		Prod:   &ProductHandler{Catalog: catalogSvc, Producer: producer},
		Order:  &OrderHandler{Orders: orderSvc, Producer: producer},
		Roster: &RosterHandler{Roster: rosterSvc, Producer: producer},
		Tokens: tokenSvc,
		Users:  authSvc,
	}
}

func (env *testEnv) doJSONRequest(method, target string, payload interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doFormRequest(method, target string, fields map[string]string, fileField, fileName string, fileData []byte) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(env.T, err)
		_, err = fw.Write(fileData)
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) registerUser(name, email, role string) {
	env.T.Helper()
	ctx := context.Background()
	_, err := env.Users.Register(ctx, service.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "secret1",
		CPF:      "123.456.789-00",
		Address:  "Rua das Flores, 1",
		Role:     role,
	})
	require.NoError(env.T, err)
}

func asAdmin(c echo.Context) {
	authmw.SetSession(c, models.Session{LoggedIn: true, Username: "Admin", UserEmail: "admin@fadinha.com", IsAdmin: true})
}

func asClient(c echo.Context) {
	authmw.SetSession(c, models.Session{LoggedIn: true, Username: "Client", UserEmail: "client@example.com", IsAdmin: false})
}
