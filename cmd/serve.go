package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"aicodegen-backend/internal/api"
	"aicodegen-backend/internal/database"
	"aicodegen-backend/internal/provider"
	"aicodegen-backend/internal/services"
	"aicodegen-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

Configuration is read from the environment and an optional .env file.
The server stops gracefully on Ctrl+C or SIGTERM.

Examples:
  codegen serve              # listen on $PORT (default 8080)
  codegen serve --port 3000  # listen on a custom port`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if servePort != "" {
			cfg.Port = servePort
		}
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		if err := database.ConnectRedis(cfg); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer database.CloseRedis()
		if !cfg.RedisEnabled() {
			logger.Log.Warn("REDIS_HOST not set; token revocation and identity cache are disabled")
		}

		aiProvider, err := provider.New(ctx, cfg.AI)
		if err != nil {
			return fmt.Errorf("create AI provider: %w", err)
		}
		logger.Log.Info("AI provider ready",
			zap.String("provider", aiProvider.Name()),
			zap.String("model", aiProvider.Model()),
		)

		router := api.NewRouter(cfg, services.NewCodeService(aiProvider))
		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Log.Info("starting HTTP server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case <-ctx.Done():
			logger.Log.Info("shutdown signal received")
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("HTTP server shutdown error", zap.Error(err))
			return err
		}

		logger.Log.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides PORT)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd)
}
