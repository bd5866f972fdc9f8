package leave

import (
	"context"
	"database/sql"
	"encoding/json"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"

	"github.com/google/uuid"
)

// EventPublisher records lifecycle events. Bound with WithTx, the event is
// written in the caller's transaction and is only visible once it commits.
type EventPublisher interface {
	WithTx(tx *sql.Tx) EventPublisher
	PublishLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (p noopEventPublisher) WithTx(*sql.Tx) EventPublisher {
	return p
}

func (noopEventPublisher) PublishLeaveEvent(context.Context, events.LeaveLifecycleEvent) error {
	return nil
}

// outboxEventPublisher queues lifecycle events in the outbox table; the
// worker process forwards them to Kafka.
type outboxEventPublisher struct {
	outbox kafka.OutboxRepository
}

func NewOutboxEventPublisher(outbox kafka.OutboxRepository) EventPublisher {
	return &outboxEventPublisher{outbox: outbox}
}

func (p *outboxEventPublisher) WithTx(tx *sql.Tx) EventPublisher {
	return &outboxEventPublisher{outbox: p.outbox.WithTx(tx)}
}

func (p *outboxEventPublisher) PublishLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "leave",
		AggregateID:   event.LeaveID,
		EventType:     event.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return err
	}
	return p.outbox.Create(ctx, outboxEvent)
}
