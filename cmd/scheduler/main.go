package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/money-service/internal/auth"
	"github.com/Dan9191/money-service/internal/config"
	"github.com/Dan9191/money-service/internal/events"
	"github.com/Dan9191/money-service/internal/notify"
	"github.com/Dan9191/money-service/internal/repository"
	"github.com/Dan9191/money-service/internal/scheduler"
	"github.com/Dan9191/money-service/internal/service"
	"github.com/Dan9191/money-service/internal/storage"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	once := flag.Bool("once", false, "Run every job once and exit")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := storage.Open(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := storage.Migrate(db, cfg.DBDriver, cfg.DBConn); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, auth.NewTokenService(cfg.JWTSecret), logger)

	// Interfaces stay nil unless the channel is configured.
	var mailer scheduler.DigestSender
	if cfg.MailEnabled() {
		mailer = notify.NewMailer(cfg, logger)
	} else {
		logger.Warn("SMTP_HOST not set, digests will not be emailed")
	}

	var publisher scheduler.AlertPublisher
	if cfg.AMQPURL != "" {
		p, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	runner := scheduler.NewRunner(svc, mailer, publisher, logger)

	if *once {
		ctx, cancel := context.WithTimeout(context.Background(), scheduler.JobTimeout)
		defer cancel()
		if err := runner.RunAll(ctx); err != nil {
			logger.Errorf("Jobs finished with errors: %v", err)
			os.Exit(1)
		}
		return
	}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
	)
	if err := runner.Register(c, cfg); err != nil {
		logger.Fatalf("Failed to schedule jobs: %v", err)
	}
	c.Start()
	logger.Info("Scheduler started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutdown signal received, waiting for running jobs")
	select {
	case <-c.Stop().Done():
	case <-time.After(30 * time.Second):
		logger.Warn("Shutdown timeout reached")
	}
}
