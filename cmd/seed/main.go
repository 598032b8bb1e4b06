package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"backoffice/internal/config"
	"backoffice/internal/domain/ordernumber"
	"backoffice/internal/infra/db"
	infraRepo "backoffice/internal/infra/repository"
	"backoffice/internal/logging"
	"backoffice/internal/seed"
	"backoffice/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	clearOnly := flag.Bool("clear-only", false, "delete all menu items and orders without inserting samples")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)
	ctx := logging.IntoContext(context.Background(), logger)

	if err := run(ctx, cfg, *clearOnly); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, clearOnly bool) error {
	gormDB, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	s := seed.New(
		infraRepo.NewTxManagerGorm(gormDB),
		infraRepo.NewMenuItemGormRepository(gormDB),
		ordernumber.NewGenerator(),
		usecase.UUIDGenerator{},
		usecase.SystemClock{},
	)

	if clearOnly {
		cleared, err := s.ClearAll(ctx)
		if err != nil {
			return err
		}
		logging.FromContext(ctx).Info("all data cleared", "menu_items", cleared.MenuItems, "orders", cleared.Orders)
		return nil
	}
	return s.Reset(ctx)
}
