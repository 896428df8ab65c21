package Models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	var user User
	require.NoError(t, user.SetPassword("s3cret"))
	require.NotEqual(t, []byte("s3cret"), user.Password)
	require.True(t, user.CheckPassword("s3cret"))
	require.False(t, user.CheckPassword("1234"))
	require.False(t, user.CheckPassword(""))
}

func TestSeedRootUser(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&User{}))

	t.Setenv("ADMIN_USERNAME", "registrar")
	t.Setenv("ADMIN_PASSWORD", "college-pass")
	require.NoError(t, SeedRootUser(db))

	var root User
	require.NoError(t, db.Where("username = ?", "registrar").First(&root).Error)
	require.Equal(t, PermissionRoot, root.Permission)
	require.True(t, root.CheckPassword("college-pass"))

	// Reseeding with an existing account is a no-op
	require.NoError(t, SeedRootUser(db))
	var count int64
	db.Model(&User{}).Count(&count)
	require.EqualValues(t, 1, count)
}
