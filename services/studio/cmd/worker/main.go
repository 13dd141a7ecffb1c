package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"studio-portfolio/pkg/config"
	"studio-portfolio/pkg/logger"
	"studio-portfolio/pkg/queue"
	"studio-portfolio/pkg/s3"
	"studio-portfolio/services/studio/internal/usecase"
)

// The worker deletes media host objects that uploads and deletes could not
// remove themselves.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	defer log.Sync()

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}
	defer queueClient.Close()

	cleanup := usecase.NewCleanupUseCase(s3Client, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Cleanup worker started")
	if err := queueClient.ConsumeCleanupTasks(ctx, cleanup.Handle); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Cleanup worker stopped: %v", err)
		return
	}
	log.Info("Cleanup worker exited")
}
