package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fadinha/embroidery_shop/internal/models"
)

func newTestRoster(t *testing.T) (*RosterService, *AuthService) {
	t.Helper()
	auth := newAuthService(t)
	return &RosterService{Repo: auth.Repo, Auth: auth}, auth
}

func TestRosterRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	roster, _ := newTestRoster(t)

	_, err := roster.List(ctx, clientSession())
	require.ErrorIs(t, err, ErrForbidden)

	_, err = roster.List(ctx, models.GuestSession())
	require.ErrorIs(t, err, ErrAuth)

	_, err = roster.Create(ctx, clientSession(), validRegistration("x@example.com", models.RoleClient))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRosterListsAdminsFirstThenAlphabetical(t *testing.T) {
	ctx := context.Background()
	roster, auth := newTestRoster(t)

	seed := []struct {
		name, email, role string
	}{
		{"Zoe", "zoe@example.com", models.RoleClient},
		{"Amy", "amy@example.com", models.RoleAdmin},
		{"Bob", "bob@example.com", models.RoleAdmin},
	}
	for _, u := range seed {
		in := validRegistration(u.email, u.role)
		in.Name = u.name
		_, err := auth.Register(ctx, in)
		require.NoError(t, err)
	}

	entries, err := roster.List(ctx, adminSession())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "Amy", entries[0].Name)
	require.Equal(t, "Bob", entries[1].Name)
	require.Equal(t, "Zoe", entries[2].Name)
	require.Equal(t, models.RoleAdmin, entries[0].Role)
	require.Equal(t, models.RoleClient, entries[2].Role)
	require.NotEmpty(t, entries[0].CPF)
}

func TestRosterCreateHonorsRole(t *testing.T) {
	ctx := context.Background()
	roster, auth := newTestRoster(t)

	user, err := roster.Create(ctx, adminSession(), validRegistration("new-admin@example.com", models.RoleAdmin))
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)

	sess, _, err := auth.Authenticate(ctx, "new-admin@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, sess.IsAdmin)
}

func TestRosterCreateValidatesLikeRegister(t *testing.T) {
	ctx := context.Background()
	roster, _ := newTestRoster(t)

	in := validRegistration("bad@example.com", models.RoleClient)
	in.Password = "123"
	_, err := roster.Create(ctx, adminSession(), in)
	require.ErrorIs(t, err, ErrValidation)
}
