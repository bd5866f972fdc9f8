package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/notification"
	"go-leave/internal/shared/config"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationConsumerGroup = "go-leave-notifications"

// RunConsumer reads leave lifecycle events and emails the people involved
// until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errKafkaBrokerRequired
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	mailer := notification.NewMailer(cfg)
	dispatcher := notification.NewDispatcher(mailer, cfg.EmailFrom)
	notifier := notification.NewLeaveNotifier(dispatcher, employee.NewRepository(gormDB))
	if !cfg.EmailEnabled {
		logger.Warn("EMAIL_ENABLED is false, notifications will be dropped")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.LeaveLifecycleTopic,
		GroupID:        notificationConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		consumer.ConsumeLeaveLifecycle(ctx, reader, notifier, logger)
		close(done)
	}()

	<-ctx.Done()
	logger.Info("consumer shutting down")
	<-done

	return nil
}
