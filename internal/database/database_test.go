package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"socialposts/internal/config"
	"socialposts/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open(":memory:"), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestConfigurePool_Defaults(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, configurePool(db, &config.Config{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 25, sqlDB.Stats().MaxOpenConnections)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "posts",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=posts sslmode=disable TimeZone=UTC",
		postgresDSN(cfg),
	)

	cfg.DBSSLMode = "require"
	assert.Contains(t, postgresDSN(cfg), "sslmode=require")
}

func TestDialectorFor(t *testing.T) {
	d, err := dialectorFor(&config.Config{DBDriver: "sqlite", DBSQLitePath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = dialectorFor(&config.Config{DBDriver: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = dialectorFor(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestConnectWithOptions_SQLiteAutoSchema(t *testing.T) {
	prev := DB
	t.Cleanup(func() { DB = prev })

	cfg := &config.Config{
		Env:          "test",
		DBDriver:     "sqlite",
		DBSQLitePath: "file::memory:?cache=shared",
		DBSchemaMode: SchemaModeAuto,
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	assert.Same(t, db, DB)
	for _, table := range []string{"users", "posts", "likes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolation_SQLiteTranslated(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, db.Create(&models.User{Email: "a@example.com", Password: "x"}).Error)
	err := db.Create(&models.User{Email: "a@example.com", Password: "y"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsNotFound(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, AutoMigrate(db))

	var u models.User
	err := db.First(&u, 42).Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestLikesUniquePerUserAndPost(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, AutoMigrate(db))

	user := models.User{Email: "owner@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	post := models.Post{UserID: user.ID, Text: "hello"}
	require.NoError(t, db.Create(&post).Error)

	require.NoError(t, db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error)
	err := db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
	assert.True(t, IsUniqueViolation(err))
}

func TestPersistentModels(t *testing.T) {
	var names []string
	for _, m := range PersistentModels() {
		names = append(names, fmt.Sprintf("%T", m))
	}
	assert.Equal(t, []string{"*models.User", "*models.Post", "*models.Like"}, names)
}

func TestCustomGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT 1", 1 }

	// fast successful queries are quiet at Warn
	l.Trace(ctx, time.Now(), fc, nil)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), fc, errors.New("syntax error"))
	assert.Contains(t, buf.String(), "GORM query error")
	assert.Contains(t, buf.String(), "syntax error")

	buf.Reset()
	l.Trace(ctx, time.Now().Add(-time.Second), fc, nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	l.LogMode(logger.Info).Trace(ctx, time.Now(), fc, nil)
	assert.Contains(t, buf.String(), `"msg":"GORM query"`)

	buf.Reset()
	l.LogMode(logger.Silent).Trace(ctx, time.Now(), fc, errors.New("ignored"))
	assert.Empty(t, buf.String())
}
