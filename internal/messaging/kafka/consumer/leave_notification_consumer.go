package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type LeaveEventHandler interface {
	HandleLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error
}

const handlerAttempts = 3

var handlerRetryDelay = time.Second

// ConsumeLeaveLifecycle feeds leave lifecycle events to the handler until ctx
// is cancelled. Undecodable messages are committed and skipped. A failing
// handler is retried in place up to handlerAttempts times; after that the
// message is committed and dropped, since the reader has already moved past
// it and a later commit would cover its offset anyway.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	handler LeaveEventHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handleWithRetry(ctx, handler, event, log); err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("leave lifecycle event dropped",
				zap.String("leave_id", event.LeaveID),
				zap.String("event_type", event.EventType),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave lifecycle event handled",
			zap.String("leave_id", event.LeaveID),
			zap.String("reference_no", event.ReferenceNo),
			zap.String("event_type", event.EventType),
		)
	}
}

func handleWithRetry(ctx context.Context, handler LeaveEventHandler, event events.LeaveLifecycleEvent, log *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= handlerAttempts; attempt++ {
		if err = handler.HandleLeaveEvent(ctx, event); err == nil {
			return nil
		}
		log.Warn("handle leave lifecycle event failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt == handlerAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(handlerRetryDelay * time.Duration(attempt)):
		}
	}
	return err
}
