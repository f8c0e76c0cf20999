package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/db"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
	"github.com/angelmondragon/pawhaven-backend/pkg/migrate"
)

type flags struct {
	dir     string
	name    string
	version string
}

// offline commands only touch migration files.
var offline = map[string]func(f flags) error{
	"create": func(f flags) error {
		if f.name == "" {
			return errors.New("-name is required for create")
		}
		dir := f.dir
		if dir == "" {
			dir = migrate.DefaultDir
		}
		path, err := migrate.CreateSQLMigration(dir, f.name)
		if err != nil {
			return err
		}
		fmt.Println("created", path)
		return nil
	},
	"validate": func(f flags) error {
		if f.dir == "" {
			return migrate.ValidateEmbedded()
		}
		return migrate.ValidateDir(f.dir)
	},
}

// online commands run against the configured Postgres database.
var online = map[string]func(ctx context.Context, m *migrate.Migrator, f flags) error{
	"up":     func(ctx context.Context, m *migrate.Migrator, _ flags) error { return m.Up(ctx) },
	"down":   func(ctx context.Context, m *migrate.Migrator, _ flags) error { return m.Down(ctx) },
	"status": func(ctx context.Context, m *migrate.Migrator, _ flags) error { return m.Status(ctx) },
	"version": func(ctx context.Context, m *migrate.Migrator, f flags) error {
		if f.version == "" {
			return errors.New("-version is required for version")
		}
		return m.MigrateTo(ctx, f.version)
	},
}

func main() {
	_ = godotenv.Load()

	var f flags
	cmd := flag.String("cmd", "up", "one of: "+commandNames())
	flag.StringVar(&f.dir, "dir", "", "migrations directory (empty uses the migrations built into the binary)")
	flag.StringVar(&f.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&f.version, "version", "", "target YYYYMMDDHHMMSS for -cmd=version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logg := logger.New(logger.Options{
		ServiceName: "pawhaven-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env, "cmd": *cmd, "dir": f.dir})

	if run, ok := offline[*cmd]; ok {
		exitOn(ctx, logg, *cmd, run(f))
		return
	}
	run, ok := online[*cmd]
	if !ok {
		exitOn(ctx, logg, *cmd, fmt.Errorf("unknown command %q (want %s)", *cmd, commandNames()))
	}
	if cfg.FeatureFlags.UseSQLite {
		exitOn(ctx, logg, *cmd, errors.New("goose migrations target Postgres; the api syncs sqlite schemas at startup"))
	}

	client, err := db.New(ctx, cfg.DB, logg)
	exitOn(ctx, logg, "connect database", err)
	defer client.Close()

	sqlDB, err := client.DB().DB()
	exitOn(ctx, logg, "unwrap sql.DB", err)
	migrator, err := migrate.NewMigrator(sqlDB, f.dir, logg)
	exitOn(ctx, logg, "load migrations", err)

	exitOn(ctx, logg, *cmd, run(ctx, migrator, f))
	logg.Info(ctx, "migrate finished")
}

func commandNames() string {
	names := make([]string, 0, len(offline)+len(online))
	for name := range offline {
		names = append(names, name)
	}
	for name := range online {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func exitOn(ctx context.Context, logg *logger.Logger, step string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, step+" failed", err)
	os.Exit(1)
}
