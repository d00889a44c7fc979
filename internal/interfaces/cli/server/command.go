// Package server wires the full service together and runs the HTTP server.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	subscriptionUC "construlink/internal/application/subscription/usecases"
	usageUC "construlink/internal/application/usage/usecases"
	"construlink/internal/infrastructure/cache"
	"construlink/internal/infrastructure/config"
	"construlink/internal/infrastructure/database"
	"construlink/internal/infrastructure/email"
	"construlink/internal/infrastructure/migration"
	"construlink/internal/infrastructure/repository"
	"construlink/internal/infrastructure/scheduler"
	httpRouter "construlink/internal/interfaces/http"
	"construlink/internal/interfaces/http/handlers"
	"construlink/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
	noSweep     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Construlink subscription service with the configured database, cache, and trial sweep scheduler.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&noSweep, "no-sweep", false, "Disable the background trial sweep scheduler")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		log.Errorw("failed to initialize database", "error", err)
		return err
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production, this is not recommended")
		}
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get()); err != nil {
			log.Errorw("auto-migration failed", "error", err)
			return err
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// The dedup store fails open, so a missing redis degrades to
		// possible duplicate reminder emails rather than an outage.
		log.Warnw("redis is unreachable, reminder dedup will fail open", "error", err)
	}
	pingCancel()

	subscriptionRepo := repository.NewSubscriptionRepository(database.Get(), logger.NewLogger())
	supplierRepo := repository.NewSupplierRepository(database.Get(), logger.NewLogger())
	usageRepo := repository.NewPlanUsageRepository(database.Get(), logger.NewLogger())

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, logger.NewLogger())

	deduper := cache.NewReminderDedupStore(redisClient, logger.NewLogger())

	subClock := subscriptionUC.SystemClock()
	usageClock := usageUC.SystemClock()

	createUC := subscriptionUC.NewCreateSubscriptionUseCase(subscriptionRepo, supplierRepo, notifier, subClock, logger.NewLogger())
	getUC := subscriptionUC.NewGetSubscriptionUseCase(subscriptionRepo, subClock, logger.NewLogger())
	changePlanUC := subscriptionUC.NewChangePlanUseCase(subscriptionRepo, subClock, logger.NewLogger())
	cancelUC := subscriptionUC.NewCancelSubscriptionUseCase(subscriptionRepo, supplierRepo, notifier, subClock, logger.NewLogger())
	reactivateUC := subscriptionUC.NewReactivateSubscriptionUseCase(subscriptionRepo, subClock, logger.NewLogger())
	extendUC := subscriptionUC.NewExtendTrialUseCase(subscriptionRepo, subClock, logger.NewLogger())
	activateUC := subscriptionUC.NewActivateSubscriptionUseCase(subscriptionRepo, supplierRepo, notifier, subClock, logger.NewLogger())
	paymentFailureUC := subscriptionUC.NewRecordPaymentFailureUseCase(subscriptionRepo, supplierRepo, notifier, logger.NewLogger())

	checkLimitUC := usageUC.NewCheckLimitUseCase(subscriptionRepo, usageRepo, supplierRepo, usageClock, logger.NewLogger())
	recordUC := usageUC.NewRecordUsageUseCase(subscriptionRepo, usageRepo, supplierRepo, usageClock, logger.NewLogger())
	getUsageUC := usageUC.NewGetUsageUseCase(subscriptionRepo, usageRepo, supplierRepo, usageClock, logger.NewLogger())

	router := httpRouter.NewRouter(&httpRouter.RouterConfig{
		SubscriptionHandler: handlers.NewSubscriptionHandler(createUC, getUC, changePlanUC, cancelUC, reactivateUC, extendUC, activateUC, paymentFailureUC),
		PlanHandler:         handlers.NewPlanHandler(),
		UsageHandler:        handlers.NewUsageHandler(checkLimitUC, recordUC, getUsageUC),
		AllowedOrigins:      cfg.Server.AllowedOrigins,
		Logger:              logger.NewLogger(),
	})

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	var sweepScheduler *scheduler.TrialSweepScheduler
	if !noSweep {
		sweepUC := subscriptionUC.NewProcessTrialRemindersUseCase(
			subscriptionRepo,
			supplierRepo,
			notifier,
			deduper,
			subClock,
			cfg.Sweep.ReminderDaysBefore,
			logger.NewLogger(),
		)
		sweepScheduler = scheduler.NewTrialSweepScheduler(
			sweepUC,
			time.Duration(cfg.Sweep.IntervalHours)*time.Hour,
			logger.NewLogger(),
		)
		go sweepScheduler.Start(sweepCtx)
	} else {
		log.Infow("trial sweep scheduler disabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	if sweepScheduler != nil {
		sweepScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
