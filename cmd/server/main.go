// Command server starts the template service HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/abhi1083/simple-crud-ops/internal/config"
	"github.com/abhi1083/simple-crud-ops/internal/migrate"
	"github.com/abhi1083/simple-crud-ops/internal/repository/postgres"
	httpserver "github.com/abhi1083/simple-crud-ops/internal/server/http"
	"github.com/abhi1083/simple-crud-ops/internal/service"
	"github.com/abhi1083/simple-crud-ops/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Address),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.DatabaseDSN, cfg.StoreTimeout)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	templateRepo := postgres.NewTemplateRepo(db)

	// Services
	codec := token.NewCodec([]byte(cfg.JWTSecret))
	authSvc := service.NewAuthService(userRepo, codec, cfg.TokenTTL, cfg.BcryptCost)
	templateSvc := service.NewTemplateService(templateRepo)

	// HTTP server
	app := httpserver.New(authSvc, templateSvc, httpserver.NewGuard(codec))
	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: app.Router(logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Address))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		// graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
