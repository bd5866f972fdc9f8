package notification

import (
	"context"
	"strings"
	"testing"

	"go-leave/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func TestNewMailer(t *testing.T) {
	cfg := config.Config{EmailEnabled: false, SMTPHost: "smtp.example.com"}
	assert.IsType(t, noopMailer{}, NewMailer(cfg))

	cfg = config.Config{EmailEnabled: true}
	assert.IsType(t, noopMailer{}, NewMailer(cfg))

	cfg = config.Config{EmailEnabled: true, SMTPHost: "smtp.example.com", SMTPPort: 2525}
	m, ok := NewMailer(cfg).(*smtpMailer)
	if assert.True(t, ok) {
		assert.Equal(t, 2525, m.port)
	}
}

func TestSMTPMailer_SkipsBlankRecipient(t *testing.T) {
	m := &smtpMailer{host: "127.0.0.1", port: 1}
	assert.NoError(t, m.Send(context.Background(), "from@example.com", "  ", "s", "b"))
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("hr@example.com", "jane@example.com", "Leave approved", "Enjoy."))

	assert.True(t, strings.HasPrefix(msg, "From: hr@example.com\r\nTo: jane@example.com\r\nSubject: Leave approved\r\n"))
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nEnjoy."))
}
