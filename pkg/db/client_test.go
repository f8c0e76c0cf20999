package db

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
)

func TestOpenSQLiteModeMigratesAndPings(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DB:           config.DBConfig{SQLitePath: filepath.Join(t.TempDir(), "pawhaven.db")},
		FeatureFlags: config.FeatureFlagsConfig{UseSQLite: true},
	}

	client, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, client.AutoMigrate(ctx))
	require.NoError(t, client.Ping(ctx))

	for _, model := range models.All() {
		require.True(t, client.DB().Migrator().HasTable(model), "missing table for %T", model)
	}

	require.NoError(t, client.Close())
	require.Error(t, client.Ping(ctx))
}

func TestOpenRequiresConnectionSettings(t *testing.T) {
	ctx := context.Background()

	_, err := NewSQLite(ctx, "", nil)
	require.Error(t, err)

	_, err = Open(ctx, &config.Config{}, nil)
	require.ErrorContains(t, err, "DSN")
}

func TestGormLoggerReportsFailuresAndSlowQueries(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Format: "json", Output: buf})
	gl := newGormLogger(logg, 50*time.Millisecond)
	ctx := context.Background()
	stmt := func() (string, int64) { return "SELECT * FROM pets", 3 }

	gl.Trace(ctx, time.Now(), stmt, nil)
	require.Zero(t, buf.Len(), "fast successful statements are not logged")

	gl.Trace(ctx, time.Now(), stmt, gorm.ErrRecordNotFound)
	require.Zero(t, buf.Len(), "missing rows are not failures")

	gl.Trace(ctx, time.Now().Add(-time.Second), stmt, nil)
	require.Contains(t, buf.String(), "db.query.slow")
	require.Contains(t, buf.String(), "SELECT * FROM pets")

	buf.Reset()
	gl.Trace(ctx, time.Now(), stmt, errors.New("relation does not exist"))
	require.Contains(t, buf.String(), "db.query.failed")

	buf.Reset()
	gl.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), stmt, errors.New("boom"))
	require.Zero(t, buf.Len())
}
