package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/board-runtime/webapi-backend/config"
	"github.com/board-runtime/webapi-backend/internal/bootstrap"
	"github.com/board-runtime/webapi-backend/internal/reporting"
	"github.com/board-runtime/webapi-backend/internal/storage/postgres"
)

const serviceName = "Backend API"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No validated config yet: report with whatever the environment has.
		logger := bootstrap.NewLogger(os.Getenv("LOG_LEVEL"))
		reporter := reporting.NewReporter(logger)
		reporting.StartupFailure(logger, reporter,
			os.Getenv("RUNTIME_ERROR_ENDPOINT_URL"), os.Getenv("BOARD_ID"), err)
		os.Exit(1)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	logger := bootstrap.NewLogger(cfg.App.LogLevel)
	defer logger.Sync()

	reporter := reporting.NewReporter(logger)
	fatal := func(err error) {
		reporting.StartupFailure(logger, reporter,
			cfg.Reporting.EndpointURL, cfg.Reporting.BoardID, err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(context.Background(), cfg.Database.URL)
	if err != nil {
		fatal(err)
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.RunMigrations(db, cfg.Database.MigrationsPath, logger); err != nil {
			fatal(err)
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		DB:          db,
		Logger:      logger,
		Resolver:    reporting.NewBoardIDResolver(cfg.Reporting.BoardID, cfg.Reporting.EndpointURL),
		Reporter:    reporter,
		EndpointURL: cfg.Reporting.EndpointURL,
	})

	logger.Warn("starting server", zap.String("port", cfg.Server.Port))
	if err := router.Run("0.0.0.0:" + cfg.Server.Port); err != nil {
		fatal(err)
	}
}
