package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/messaging/kafka"
	"go-leave/internal/messaging/kafka/producer"
	"go-leave/internal/shared/config"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker forwards outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.KafkaBroker == "" {
		return errKafkaBrokerRequired
	}

	_, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.OutboxPollInterval)
		close(done)
	}()

	<-ctx.Done()
	logger.Info("worker shutting down")
	<-done

	return nil
}
