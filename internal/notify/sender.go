// Package notify delivers outbound chat messages off the request path.
package notify

import (
	"context"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"go.uber.org/zap"
)

// Sender delivers one message to the chat platform.
type Sender interface {
	Send(ctx context.Context, msg domain.Outbound) error
}

// LogSender stands in when no bot token is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{log: logger.Named("notify")}
}

func (s *LogSender) Send(_ context.Context, msg domain.Outbound) error {
	s.log.Warn("bot token not set, message not sent",
		zap.Int64("chat_id", msg.ChatID),
		zap.Int("length", len(msg.Text)))
	return nil
}
