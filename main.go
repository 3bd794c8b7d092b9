package main

import (
	"context"
	"errors"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptojournal/config"
	"cryptojournal/internal/adapters/httpserver"
	"cryptojournal/internal/adapters/logger"
	"cryptojournal/internal/adapters/sqlite"
	"cryptojournal/internal/app"
	"cryptojournal/internal/auth"
	"cryptojournal/internal/seed"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()
	appLogger.Info(context.Background(), "Database repository initialized")

	// 4. Initialize Auth Collaborators
	signer, err := auth.NewJWTSigner(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize token signer: %v", err)
	}
	authService, err := auth.NewService(appLogger, repo, signer, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize auth service: %v", err)
	}

	// 5. Initialize Journal Service
	journal, err := app.NewJournalService(appLogger, repo)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}
	appLogger.Info(context.Background(), "Journal service initialized")

	// 6. Optional demo fixtures
	if cfg.SeedDemoData {
		if err := seed.Apply(context.Background(), repo, repo, cfg.BcryptCost); err != nil {
			appLogger.Error(context.Background(), err, "Failed to seed demo data")
		} else {
			appLogger.Info(context.Background(), "Demo data seeded", map[string]interface{}{"email": seed.DemoEmail})
		}
	}

	// 7. Initialize HTTP Handler
	handler, err := httpserver.NewHandler(httpserver.Config{
		Logger:  appLogger,
		Journal: journal,
		Auth:    authService,
		Signer:  signer,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize HTTP handler: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 8. Serve until interrupted
	go func() {
		appLogger.Info(context.Background(), "HTTP server listening", map[string]interface{}{"addr": cfg.HTTPAddr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(context.Background(), err, "HTTP server exited with error")
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLogger.Info(context.Background(), "Received shutdown signal", map[string]interface{}{"signal": sig.String()})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, err, "HTTP server shutdown failed")
	}
	appLogger.Info(context.Background(), "Application finished gracefully.")
}
