package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/staffdesk/admin/internal/repository"
	"github.com/staffdesk/admin/pkg/config"
	"github.com/staffdesk/admin/pkg/database"
	"github.com/staffdesk/admin/pkg/logger"
)

func main() {
	seed := pflag.Bool("seed", false, "insert the default departments and job titles when their tables are empty")
	timeout := pflag.Duration("timeout", 2*time.Minute, "overall deadline for the migration run")
	pflag.Parse()

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.Open(ctx, database.Options{
		Driver:  cfg.DBDriver,
		DSN:     cfg.DatabaseURL,
		Verbose: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if *seed {
		if err := repository.SeedLookups(ctx, db); err != nil {
			log.Fatal("seeding lookups failed", zap.Error(err))
		}
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
