package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/db"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
)

// MaybeRunDev prepares the schema at api startup. SQLite is always synced
// from the gorm models because the goose SQL is Postgres-only. Postgres gets
// the embedded migrations only in dev with auto-migrate enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	switch {
	case cfg.FeatureFlags.UseSQLite:
		logg.Info(logg.WithField(ctx, "sqlite_path", cfg.DB.SQLitePath), "syncing sqlite schema from models")
		if err := client.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("sqlite auto-migrate: %w", err)
		}
		return nil
	case !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate:
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	migrator, err := NewMigrator(sqlDB, "", logg)
	if err != nil {
		return err
	}
	logg.Info(ctx, "applying embedded migrations")
	return migrator.Up(ctx)
}
