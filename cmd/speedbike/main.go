package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/speedbike/speedbike/internal/app"
	"github.com/speedbike/speedbike/internal/auth"
	"github.com/speedbike/speedbike/internal/clients"
	"github.com/speedbike/speedbike/internal/notifications"
	"github.com/speedbike/speedbike/internal/orders"
	"github.com/speedbike/speedbike/internal/platform/cache"
	"github.com/speedbike/speedbike/internal/platform/db"
	"github.com/speedbike/speedbike/internal/reservations"
	"github.com/speedbike/speedbike/internal/sales"
	"github.com/speedbike/speedbike/internal/shared"
	"github.com/speedbike/speedbike/internal/stock/divers"
	"github.com/speedbike/speedbike/internal/stock/helmets"
	"github.com/speedbike/speedbike/internal/stock/oil"
	"github.com/speedbike/speedbike/internal/stock/saddles"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "speedbike_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	notificationsService := notifications.NewService(notifications.NewRepository(dbpool), logger)
	notificationsHandler := notifications.NewHandler(logger, notificationsService)

	authService := auth.NewService(auth.NewRepository(dbpool))
	authHandler := auth.NewHandler(logger, authService, sessionManager, cfg.LoginRateLimit, cfg.LoginRateWindow)

	salesService := sales.NewService(sales.NewRepository(dbpool), notificationsService)
	salesHandler := sales.NewHandler(logger, salesService)

	oilHandler := oil.NewHandler(logger, oil.NewService(oil.NewRepository(dbpool)))
	helmetsHandler := helmets.NewHandler(logger, helmets.NewService(helmets.NewRepository(dbpool)))
	saddlesHandler := saddles.NewHandler(logger, saddles.NewService(saddles.NewRepository(dbpool)))
	diversHandler := divers.NewHandler(logger, divers.NewService(divers.NewRepository(dbpool)))

	clientsHandler := clients.NewHandler(logger, clients.NewService(clients.NewRepository(dbpool)))
	ordersHandler := orders.NewHandler(logger, orders.NewRepository(dbpool))
	reservationsHandler := reservations.NewHandler(logger, reservations.NewRepository(dbpool))

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,

		AuthHandler:          authHandler,
		SalesHandler:         salesHandler,
		OilHandler:           oilHandler,
		HelmetsHandler:       helmetsHandler,
		SaddlesHandler:       saddlesHandler,
		DiversHandler:        diversHandler,
		ClientsHandler:       clientsHandler,
		OrdersHandler:        ordersHandler,
		ReservationsHandler:  reservationsHandler,
		NotificationsHandler: notificationsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
