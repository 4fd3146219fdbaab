package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-market.com/task-market/internal/auth"
	config "task-market.com/task-market/internal/configs"
	httpapi "task-market.com/task-market/internal/http"
	"task-market.com/task-market/internal/ratelimit"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/services"
	"task-market.com/task-market/internal/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task marketplace HTTP API and the webhook reconciliation sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		dedupPolicy, err := services.ParseDedupPolicy(cfg.DedupPolicy)
		if err != nil {
			return err
		}

		database := config.New(cfg.DatabaseDSN)

		redisClient, err := config.NewRedisClient(cfg.RedisAddr())
		if err != nil {
			return err
		}
		defer redisClient.Close()

		taskRepo := repository.NewTaskRepository(database)
		offerRepo := repository.NewOfferRepository(database)
		eventRepo := repository.NewWebhookEventRepository(database)
		userRepo := repository.NewUserRepository(database)

		userService := services.NewUserService(userRepo)
		taskService := services.NewTaskService(taskRepo)
		offerService := services.NewOfferService(offerRepo, taskRepo)
		approvalService := services.NewApprovalService(taskRepo, offerRepo, logger)
		reconciler := services.NewReconciliationService(taskRepo, eventRepo, dedupPolicy, logger)

		sweep := services.NewSweepService(
			eventRepo,
			reconciler,
			cfg.SweepWorkers,
			cfg.SweepQueueSize,
			time.Duration(cfg.SweepIntervalSeconds)*time.Second,
			time.Duration(cfg.SweepStaleAfterSeconds)*time.Second,
			cfg.SweepBatchSize,
			logger,
		)

		verifier := webhooks.NewVerifier(cfg.WebhookSecret, time.Duration(cfg.WebhookToleranceSecs)*time.Second)
		authenticator := auth.NewTokenAuthenticator(userRepo)
		limiter := ratelimit.NewRedisLimiter(redisClient, "ratelimit")

		e := echo.New()

		handler := httpapi.NewHandler(userService, taskService, offerService, approvalService)
		webhookHandler := httpapi.NewWebhookHandler(verifier, reconciler)
		httpapi.Register(e, handler, webhookHandler, authenticator, limiter, cfg.RateLimit)

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL())
			if err := e.Start(cfg.AppURL()); err != nil {
				logger.Info("server stopped", "error", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		sweep.Shutdown(ctx)

		logger.Info("HTTP server and sweep shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
