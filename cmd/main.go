package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-booking-reminder/internal/config"
	"github.com/KasumiMercury/primind-booking-reminder/internal/handler"
	"github.com/KasumiMercury/primind-booking-reminder/internal/health"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/bookingstore"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/deliveryrecorder"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/mailer"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/delivery"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/plan"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/reminder"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/scheduler"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/template"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("booking-reminder")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local builds, BigQuery for gcloud
	recorder, err := deliveryrecorder.NewRecorder(ctx, deliveryrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize delivery recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close delivery recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	sender, err := mailer.NewSender(ctx, cfg.Mail)
	if err != nil {
		slog.Error("failed to initialize mail sender", slog.String("error", err.Error()))
		return 1
	}

	renderer, err := template.NewRenderer()
	if err != nil {
		slog.Error("invalid reminder templates", slog.String("error", err.Error()))
		return 1
	}

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	jobRepo := repository.NewJobRepository(redisClient)
	bookingClient := bookingstore.NewClient(cfg.BookingStoreURL)

	reminderScheduler := scheduler.NewScheduler(jobRepo, taskQueue, recorder, reminderMetrics)
	reminderService := reminder.NewService(
		plan.NewPlanner(),
		reminderScheduler,
		bookingClient,
		jobRepo,
		reminderMetrics,
	)
	deliveryWorker := delivery.NewWorker(
		jobRepo,
		taskQueue,
		renderer,
		sender,
		recorder,
		reminderMetrics,
		delivery.Config{
			SendTimeout: cfg.Mail.SendTimeout,
			ClaimLease:  cfg.Delivery.ClaimLease,
		},
	)

	reminderHandler := handler.NewReminderHandler(reminderService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryWorker)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready"},
		Module:     serviceModule,
		TracerName: "github.com/KasumiMercury/primind-booking-reminder/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if messageType := c.Request.Header.Get(taskqueue.MessageTypeHeader); messageType != "" {
				return messageType
			}
			return c.FullPath()
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version, health.RedisProbe(redisClient))
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	r.Any(grpcHealthPath+"*method", gin.WrapH(grpcHealthHandler))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/schedule/preview", reminderHandler.HandlePreview)
		v1.POST("/bookings/:booking_id/reminders", reminderHandler.HandleCommit)
		v1.GET("/bookings/:booking_id/reminders", reminderHandler.HandleListJobs)
		v1.POST("/reminders/deliver", deliveryHandler.HandleDeliver)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("mail_provider", string(cfg.Mail.Provider)),
			slog.String("delivery_url", cfg.TaskQueue.TargetURL),
			slog.Duration("claim_lease", cfg.Delivery.ClaimLease),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
