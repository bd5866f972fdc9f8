package notification_test

import (
	"context"
	"errors"
	"testing"

	"go-leave/internal/notification"
	notificationMock "go-leave/internal/notification/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestDispatcher_SendNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := notificationMock.NewMockMailer(ctrl)
		d := notification.NewDispatcher(mailer, "hr@example.com", zap.NewNop())

		mailer.EXPECT().
			Send(gomock.Any(), "hr@example.com", "jane@example.com", "subject", "body").
			Return(nil)

		assert.NoError(t, d.SendNotification(ctx, " jane@example.com ", "subject", "body"))
	})

	t.Run("negative - mailer error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := notificationMock.NewMockMailer(ctrl)
		d := notification.NewDispatcher(mailer, "hr@example.com", zap.NewNop())

		mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("connection refused"))

		assert.Error(t, d.SendNotification(ctx, "jane@example.com", "subject", "body"))
	})

	t.Run("success - blank recipient is skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := notificationMock.NewMockMailer(ctrl)
		d := notification.NewDispatcher(mailer, "hr@example.com", zap.NewNop())

		assert.NoError(t, d.SendNotification(ctx, "", "subject", "body"))
	})
}
