package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/raoelg/ttest-to-bayesfactor/adapters/postgres"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/config"
	"github.com/raoelg/ttest-to-bayesfactor/internal/container"
	"github.com/raoelg/ttest-to-bayesfactor/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(appConfig.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if appConfig.Database.Enabled() {
		db, err := postgres.Connect(ctx, appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := appContainer.InitWithDatabase(ctx, db); err != nil {
			log.Fatalf("Failed to initialize calculation ledger: %v", err)
		}
	} else {
		logger.Info("DATABASE_URL not set, calculation ledger disabled")
	}

	uiApp, err := ui.NewApp(ui.Config{
		Calculations: appContainer.Calculations,
		Batch:        appContainer.Batch,
		Logger:       logger,
		MaxBatchRows: appConfig.Batch.MaxRows,
	})
	if err != nil {
		log.Fatalf("Failed to create UI: %v", err)
	}

	server := &http.Server{
		Addr:        ":" + appConfig.Server.Port,
		Handler:     uiApp,
		ReadTimeout: appConfig.Server.ReadTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown: %v", err)
		}
	}()

	logger.Info("Starting t-test Bayes factor server on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
