package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultSlowQuery = 200 * time.Millisecond

// Client owns the shared gorm connection pool.
type Client struct {
	conn *gorm.DB
}

// Open picks sqlite or postgres from the feature flags.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Client, error) {
	if cfg.FeatureFlags.UseSQLite {
		return NewSQLite(ctx, cfg.DB.SQLitePath, logg)
	}
	return New(ctx, cfg.DB, logg)
}

// New connects to Postgres and verifies the connection.
func New(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database DSN is required")
	}
	dialector := postgres.New(postgres.Config{DSN: cfg.DSN, PreferSimpleProtocol: true})
	client, err := open(dialector, newGormLogger(logg, cfg.SlowQuery))
	if err != nil {
		return nil, err
	}

	sqlDB, err := client.conn.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	setIfPositive(sqlDB.SetMaxOpenConns, cfg.MaxOpenConns)
	setIfPositive(sqlDB.SetMaxIdleConns, cfg.MaxIdleConns)
	setIfPositive(sqlDB.SetConnMaxLifetime, cfg.ConnMaxLifetime)
	setIfPositive(sqlDB.SetConnMaxIdleTime, cfg.ConnMaxIdleTime)

	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "postgres connected")
	}
	return client, nil
}

// NewSQLite opens a file-backed sqlite database for local development.
func NewSQLite(ctx context.Context, path string, logg *logger.Logger) (*Client, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	client, err := open(sqlite.Open(path), newGormLogger(logg, defaultSlowQuery))
	if err != nil {
		return nil, err
	}
	sqlDB, err := client.conn.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	// one writer at a time, otherwise SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	if logg != nil {
		logg.Info(logg.WithField(ctx, "sqlite_path", path), "sqlite opened")
	}
	return client, nil
}

// FromConn wraps an already opened gorm connection.
func FromConn(conn *gorm.DB) *Client {
	return &Client{conn: conn}
}

func open(dialector gorm.Dialector, log *gormLogger) (*Client, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 log,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}
	return &Client{conn: conn}, nil
}

func setIfPositive[T int | time.Duration](set func(T), value T) {
	if value > 0 {
		set(value)
	}
}

// AutoMigrate syncs every model's table. Postgres deployments use the goose
// migrations instead.
func (c *Client) AutoMigrate(ctx context.Context) error {
	if err := c.conn.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func (c *Client) DB() *gorm.DB {
	return c.conn
}

// Ping backs the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *Client) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
