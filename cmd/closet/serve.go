package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/closet/internal/api"
	"github.com/liliang-cn/closet/internal/config"
	"github.com/liliang-cn/closet/internal/observability"
	"github.com/liliang-cn/closet/internal/repository"
	"github.com/liliang-cn/closet/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	defer db.Close()

	var metrics *observability.Collector
	if cfg.Metrics.Enabled {
		metrics = observability.NewCollector("closet")
	}

	wardrobeService := service.NewWardrobeService(
		repository.NewClothingRepository(db),
		logger,
		metrics,
		cfg.Locale(),
	)

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("auth.jwt_secret is empty, all requests act as the default user",
			zap.String("default_user", cfg.Auth.DefaultUser))
	}

	router := api.SetupRouter(wardrobeService, api.RouterConfig{
		JWTSecret:    cfg.Auth.JWTSecret,
		DefaultUser:  cfg.Auth.DefaultUser,
		AllowOrigins: cfg.CORS.AllowOrigins,
		Logger:       logger,
		Metrics:      metrics,
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting closet server",
			zap.String("address", cfg.Address()),
			zap.String("database", cfg.Database.Path),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server exited")
	return nil
}
