package notification

import (
	"context"
	"strings"

	"go-leave/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Dispatcher delivers a single notification. Delivery failures are logged
// and returned so callers can count them, but they never undo the change
// that caused the notification.
type Dispatcher interface {
	SendNotification(ctx context.Context, recipientEmail, subject, body string) error
}

type dispatcher struct {
	mailer Mailer
	from   string
	logger *zap.Logger
}

func NewDispatcher(mailer Mailer, from string, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	if mailer == nil {
		mailer = noopMailer{}
	}
	return &dispatcher{mailer: mailer, from: from, logger: l}
}

func (d *dispatcher) SendNotification(ctx context.Context, recipientEmail, subject, body string) error {
	rid := contextutil.GetRequestID(ctx)
	recipientEmail = strings.TrimSpace(recipientEmail)
	if recipientEmail == "" {
		d.logger.Warn("notification skipped, no recipient",
			zap.String("request_id", rid),
			zap.String("subject", subject),
		)
		return nil
	}

	if err := d.mailer.Send(ctx, d.from, recipientEmail, subject, body); err != nil {
		d.logger.Error("send notification failed",
			zap.String("request_id", rid),
			zap.String("recipient", recipientEmail),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	d.logger.Info("notification sent",
		zap.String("request_id", rid),
		zap.String("recipient", recipientEmail),
		zap.String("subject", subject),
	)
	return nil
}
