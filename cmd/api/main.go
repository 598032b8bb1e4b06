package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"backoffice/internal/config"
	"backoffice/internal/domain/ordernumber"
	"backoffice/internal/handler"
	"backoffice/internal/infra/db"
	"backoffice/internal/infra/events"
	infraRepo "backoffice/internal/infra/repository"
	"backoffice/internal/logging"
	"backoffice/internal/seed"
	"backoffice/internal/server"
	"backoffice/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// ダッシュボードは金額を数値で受け取る
	decimal.MarshalJSONWithoutQuotes = true

	// .envは無くてもよい（環境変数が優先）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	//DB接続
	gormDB, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Warn("close db failed", "error", err)
		}
	}()

	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	//Repository（GORM実装）生成
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := usecase.UUIDGenerator{}
	clock := usecase.SystemClock{}
	numbers := ordernumber.NewGenerator()

	publisher := events.NewPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close event publisher failed", "error", err)
		}
	}()

	if cfg.SeedOnEmpty {
		seeded, err := seed.New(txm, menuRepo, numbers, idGen, clock).SeedIfEmpty(logging.IntoContext(ctx, logger))
		if err != nil {
			return err
		}
		if seeded {
			logger.Info("sample data inserted")
		}
	}

	//Usecase生成
	menuUC := usecase.NewMenuUsecase(menuRepo, idGen, clock)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, menuRepo, auditRepo, publisher, numbers, idGen, clock)
	salesUC := usecase.NewSalesUsecase(txm)

	//Server起動
	e := server.New(cfg, logger)
	server.RegisterRoutes(e, server.Handlers{
		Menu:  handler.NewMenuHandler(menuUC),
		Order: handler.NewOrderHandler(orderUC, salesUC),
	})

	return server.Start(ctx, e, cfg.Addr(), logger)
}
