package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crowdfund-dashboard/internal/config"
	"github.com/crowdfund-dashboard/internal/infrastructure/awsconfig"
	"github.com/crowdfund-dashboard/internal/infrastructure/dynamo"
	jwtinfra "github.com/crowdfund-dashboard/internal/infrastructure/jwt"
	s3infra "github.com/crowdfund-dashboard/internal/infrastructure/s3"
	"github.com/crowdfund-dashboard/internal/infrastructure/sns"
	transporthttp "github.com/crowdfund-dashboard/internal/transport/http"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	if envErr != nil {
		log.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.Load(ctx, cfg)
	if err != nil {
		log.Fatal("aws config", zap.Error(err))
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, log.Named("bootstrap"))

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatal("jwt provider", zap.Error(err))
	}

	s3Store := s3infra.NewStore(s3infra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.S3BucketName)

	deps := &transporthttp.Deps{
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		InvestmentRepo:   dynamo.NewInvestmentRepo(dynamoClient, cfg.DynamoTables.Investments),
		ObjectStore:      s3Store,
		Verifier:         jwtProvider,
		Logger:           log,
		Now:              time.Now,
	}
	if cfg.SNSTopicARN != "" {
		deps.Publisher = sns.NewBroadcastPublisher(sns.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.SNSTopicARN)
	} else {
		log.Warn("SNS_TOPIC_ARN not set, broadcast fan-out disabled")
	}

	router, err := transporthttp.NewRouter(ctx, cfg, deps)
	if err != nil {
		log.Fatal("router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return
	}
	log.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
