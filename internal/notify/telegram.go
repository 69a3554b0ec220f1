package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// TelegramSender calls sendMessage through a circuit breaker.
type TelegramSender struct {
	bot     *tgbotapi.BotAPI
	breaker *gobreaker.CircuitBreaker[tgbotapi.Message]
	log     *zap.Logger
}

// NewTelegramSender authenticates token against apiEndpoint (a format string
// such as tgbotapi.APIEndpoint). Each call is bounded by timeout.
func NewTelegramSender(token, apiEndpoint string, timeout time.Duration, logger *zap.Logger) (*TelegramSender, error) {
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	client := &http.Client{Timeout: timeout}
	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect bot api: %w", err)
	}

	s := &TelegramSender{bot: bot, log: logger.Named("telegram")}
	s.breaker = gobreaker.NewCircuitBreaker[tgbotapi.Message](gobreaker.Settings{
		Name:        "telegram-send",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return s, nil
}

// BotName is the username the token belongs to.
func (s *TelegramSender) BotName() string {
	return s.bot.Self.UserName
}

func (s *TelegramSender) Send(ctx context.Context, msg domain.Outbound) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.breaker.Execute(func() (tgbotapi.Message, error) {
		return s.bot.Send(messageConfig(msg))
	})
	if err != nil {
		return fmt.Errorf("send message to %d: %w", msg.ChatID, err)
	}
	return nil
}

func messageConfig(msg domain.Outbound) tgbotapi.MessageConfig {
	mc := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	mc.ParseMode = msg.ParseMode
	if len(msg.Keyboard) > 0 {
		mc.ReplyMarkup = replyKeyboard(msg.Keyboard)
	}
	return mc
}

func replyKeyboard(kb domain.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb))
	for _, r := range kb {
		row := make([]tgbotapi.KeyboardButton, 0, len(r))
		for _, b := range r {
			row = append(row, tgbotapi.KeyboardButton{
				Text:            b.Text,
				RequestContact:  b.RequestContact,
				RequestLocation: b.RequestLocation,
			})
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}
