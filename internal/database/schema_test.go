package database

import (
	"context"
	"testing"

	"socialposts/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantSQL  bool
		wantAuto bool
		wantErr  bool
	}{
		{name: "default is auto", cfg: config.Config{}, wantAuto: true},
		{name: "auto", cfg: config.Config{DBSchemaMode: "AUTO"}, wantAuto: true},
		{name: "sql on postgres", cfg: config.Config{DBSchemaMode: "sql", DBDriver: "postgres"}, wantSQL: true},
		{name: "sql on sqlite", cfg: config.Config{DBSchemaMode: "sql", DBDriver: "sqlite"}, wantErr: true},
		{name: "unknown", cfg: config.Config{DBSchemaMode: "hybrid"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAuto, runAuto)
		})
	}
}

func TestApplySchema_Auto(t *testing.T) {
	db := openSQLite(t)
	cfg := &config.Config{Env: "test", DBDriver: "sqlite", DBSchemaMode: SchemaModeAuto}

	require.NoError(t, ApplySchema(context.Background(), db, cfg))
	assert.True(t, db.Migrator().HasTable("likes"))
	assert.True(t, db.Migrator().HasIndex("likes", "idx_likes_user_post"))
	// likes_count is derived at query time
	assert.False(t, db.Migrator().HasColumn("posts", "likes_count"))
}

func TestGetSchemaStatus_Auto(t *testing.T) {
	db := openSQLite(t)
	cfg := &config.Config{Env: "development", DBDriver: "sqlite", DBSchemaMode: SchemaModeAuto}

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.Equal(t, SchemaModeAuto, status.Mode)
	assert.Equal(t, "development", status.Environment)
	assert.True(t, status.WillRunAutoMigrate)
	assert.False(t, status.WillRunSQL)
	assert.Empty(t, status.PendingMigrations)
}

func TestPendingMigrations(t *testing.T) {
	registered := []Migration{{Version: 1, Name: "init"}, {Version: 2, Name: "more"}, {Version: 3, Name: "last"}}

	pending := pendingMigrations([]int{1, 3}, registered)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Version)

	assert.Len(t, pendingMigrations(nil, registered), 3)
}
