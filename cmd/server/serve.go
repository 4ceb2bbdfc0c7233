package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/health-insights-go/internal/api"
	"github.com/jengzang/health-insights-go/internal/middleware"
	"github.com/jengzang/health-insights-go/internal/service"
	"github.com/jengzang/health-insights-go/internal/shell"
	"github.com/jengzang/health-insights-go/internal/view"
)

const (
	limiterIdle     = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := loadStore(ctx, cfg)
		if err != nil {
			return err
		}
		catalog, err := view.DefaultCatalog()
		if err != nil {
			return err
		}

		gin.SetMode(cfg.Server.Mode)

		composer := view.NewComposer(store, catalog, mapConfig(cfg))
		ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
		manager := shell.NewManager([]byte(cfg.Session.Secret), ttl, catalog.Defaults())

		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterIdle)
		go limiter.Run(ctx)

		router := api.SetupRouter(api.Deps{
			Dashboard:   service.NewDashboardService(store),
			Sessions:    service.NewSessionService(manager, composer),
			RateLimiter: limiter,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
