// @title Conference Hall Results API
// @version 1.0
// @description Deliberation statistics and results publication for conference events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"conferencehall/config"
	_ "conferencehall/docs"
	"conferencehall/internal/adapters/auth"
	"conferencehall/internal/adapters/email"
	"conferencehall/internal/adapters/queue"
	"conferencehall/internal/database"
	httpdelivery "conferencehall/internal/delivery/http"
	"conferencehall/internal/delivery/http/controllers"
	"conferencehall/internal/domain"
	"conferencehall/internal/repository/postgres"
	"conferencehall/internal/services"
	"conferencehall/internal/worker"
)

func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if cfg.MigrateOnStart {
		if err := database.Migrate(db, logger); err != nil {
			return err
		}
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	teamMemberRepo := postgres.NewTeamMemberRepository(db)
	proposalRepo := postgres.NewProposalRepository(db)
	outbox := postgres.NewEmailOutboxRepository(db)

	// Mail delivery
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	var (
		notificationQueue domain.NotificationQueue
		runWorker         func(context.Context) error
	)
	switch cfg.Notification.Queue {
	case config.QueueKafka:
		kafkaQueue, err := queue.NewKafkaQueue(cfg.Notification.KafkaBrokers, cfg.Notification.KafkaTopic)
		if err != nil {
			return err
		}
		defer kafkaQueue.Close()
		consumer, err := queue.NewKafkaConsumer(queue.KafkaConsumerConfig{
			Brokers:     cfg.Notification.KafkaBrokers,
			GroupID:     cfg.Notification.KafkaConsumerGroup,
			Topic:       cfg.Notification.KafkaTopic,
			MaxAttempts: cfg.Notification.MaxAttempts,
		}, logger)
		if err != nil {
			return err
		}
		defer consumer.Close()
		deliverer := worker.NewDeliverer(mailer, config.QueueKafka, cfg.ContextTimeout, logger)
		notificationQueue = kafkaQueue
		runWorker = func(ctx context.Context) error { return consumer.Run(ctx, deliverer.Deliver) }
	default:
		dispatcher := worker.NewOutboxDispatcher(outbox,
			worker.NewDeliverer(mailer, config.QueueOutbox, cfg.ContextTimeout, logger),
			worker.OutboxConfig{
				PollInterval: cfg.Notification.PollInterval,
				BatchSize:    cfg.Notification.BatchSize,
				MaxAttempts:  cfg.Notification.MaxAttempts,
			}, logger)
		notificationQueue = outbox
		runWorker = dispatcher.Run
	}
	logger.Info("notification queue selected", "queue", cfg.Notification.Queue, "mail_provider", cfg.Mail.Provider)

	// Services
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}
	notifier := services.NewProposalNotifier(renderer, notificationQueue, cfg.Mail.FromAddress, logger)
	authorizer := services.NewEventAuthorizer(eventRepo, teamMemberRepo)
	resultsService := services.NewResultsService(authorizer, proposalRepo, notifier, logger, cfg.ContextTimeout)

	// HTTP
	router := httpdelivery.NewRouter(
		httpdelivery.RouterConfig{
			Logger:         logger,
			Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
			AllowedOrigins: cfg.AllowedOrigins,
		},
		controllers.NewResultsController(logger, resultsService),
		controllers.NewHealthController(logger, db),
	)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.ContextTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return runWorker(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
