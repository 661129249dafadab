package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fadinha/embroidery_shop/internal/hash"
	"github.com/fadinha/embroidery_shop/internal/models"
)

func newMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	return gdb
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := newMemoryDB(t)

	require.NoError(t, SeedAdmin(ctx, gdb, hash.Bcrypt{}))
	require.NoError(t, SeedAdmin(ctx, gdb, hash.Bcrypt{}))

	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Where("email = ?", AdminEmail).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSeedAdminCredentials(t *testing.T) {
	ctx := context.Background()
	gdb := newMemoryDB(t)

	require.NoError(t, SeedAdmin(ctx, gdb, hash.Bcrypt{}))

	var admin models.User
	require.NoError(t, gdb.Where("email = ?", AdminEmail).First(&admin).Error)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.Equal(t, "Admin Master", admin.Name)
	require.True(t, hash.Bcrypt{}.Check(admin.Password, "456"))
}
