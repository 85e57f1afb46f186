package bootstrap

import (
	"context"
	"testing"

	"socialposts/internal/config"
	"socialposts/internal/models"
	"socialposts/internal/seed"
	"socialposts/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countUsers(t *testing.T, cfgEnv string, existing bool) int64 {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	if existing {
		testutil.CreateUser(t, db, "existing@example.com")
	}

	cfg := &config.Config{Env: cfgEnv}
	require.NoError(t, seedIfEmpty(context.Background(), cfg, db, seed.Options{NumUsers: 3, NumPosts: 2, FastHash: true}))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

func TestSeedIfEmpty(t *testing.T) {
	assert.Equal(t, int64(3), countUsers(t, "development", false))
	assert.Equal(t, int64(1), countUsers(t, "development", true))
	assert.Equal(t, int64(0), countUsers(t, "production", false))
}

func TestInitRuntime_SQLite(t *testing.T) {
	cfg := &config.Config{
		Env:          "development",
		DBDriver:     "sqlite",
		DBSQLitePath: "file:bootstrap_runtime?mode=memory&cache=shared",
		// one connection keeps the shared in-memory database free of table locks
		DBMaxOpenConns: 1,
	}

	db, rdb, err := InitRuntime(context.Background(), cfg, Options{
		SeedDemoData: true,
		Seed:         seed.Options{NumUsers: 2, NumPosts: 3, MaxLikesPerPost: 2, FastHash: true},
	})
	require.NoError(t, err)
	assert.Nil(t, rdb)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(3), posts)
}
