package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/speedbike/speedbike/internal/app"
	"github.com/speedbike/speedbike/internal/notifications"
	"github.com/speedbike/speedbike/internal/platform/db"
	"github.com/speedbike/speedbike/internal/sales"
	"github.com/speedbike/speedbike/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	notificationsService := notifications.NewService(notifications.NewRepository(pool), logger)
	salesService := sales.NewService(sales.NewRepository(pool), notificationsService)

	dueScanJob := jobs.NewDueScanJob(salesService, notificationsService, logger)
	pruneJob := jobs.NewPruneJob(notificationsService, logger)

	dueScanTask, err := jobs.NewDueScanTask(jobs.DueScanPayload{})
	if err != nil {
		logger.Error("build due scan task", slog.Any("error", err))
		os.Exit(1)
	}
	pruneTask, err := jobs.NewPruneTask(jobs.PrunePayload{MaxAgeHours: int(cfg.NotificationMaxAge.Hours())})
	if err != nil {
		logger.Error("build prune task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskPaymentsDueScan, Handler: dueScanJob.Handle},
			{Type: jobs.TaskNotificationsPrune, Handler: pruneJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.DueScanCron, Task: dueScanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 3 * * *", Task: pruneTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
