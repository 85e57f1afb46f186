// Package testutil provides shared fixtures for backend tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"socialposts/internal/database"
	"socialposts/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB returns a migrated in-memory SQLite database that lives for the
// duration of the test. The pool is pinned to one connection so every query
// sees the same in-memory database.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "not-a-real-hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreatePost inserts a post owned by userID.
func CreatePost(t testing.TB, db *gorm.DB, userID uint, text string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: userID, Text: text}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateLikeAt inserts a like with an explicit creation time.
func CreateLikeAt(t testing.TB, db *gorm.DB, userID, postID uint, at time.Time) *models.Like {
	t.Helper()
	l := &models.Like{UserID: userID, PostID: postID, CreatedAt: at.UTC()}
	require.NoError(t, db.Create(l).Error)
	return l
}
