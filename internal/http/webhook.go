package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

// SecretHeader carries the shared secret configured with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

type Engine interface {
	Handle(ctx context.Context, upd domain.Update) ([]domain.Outbound, error)
	ErrorReply(ctx context.Context, chatID int64) domain.Outbound
}

type Dispatcher interface {
	Dispatch(msgs []domain.Outbound)
}

type WebhookHandler struct {
	engine Engine
	out    Dispatcher
	secret string
	log    *zap.Logger
}

func NewWebhookHandler(engine Engine, out Dispatcher, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		engine: engine,
		out:    out,
		secret: secret,
		log:    logger.Named("webhook"),
	}
}

func (h *WebhookHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Receive accepts one update. Anything past the secret check is answered
// with 200 so the platform does not redeliver it.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(SecretHeader)), []byte(h.secret)) != 1 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "invalid secret token")
		return
	}

	var u tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		h.log.Warn("invalid update payload",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		respondOK(w)
		return
	}

	upd, ok := toUpdate(u)
	if ok {
		h.handle(r.Context(), upd)
	}
	respondOK(w)
}

func (h *WebhookHandler) handle(ctx context.Context, upd domain.Update) {
	log := h.log.With(
		zap.Int64("chat_id", upd.ChatID),
		zap.String("request_id", RequestID(ctx)),
	)
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic while handling update", zap.Any("panic", rec))
			h.out.Dispatch([]domain.Outbound{h.engine.ErrorReply(ctx, upd.ChatID)})
		}
	}()

	msgs, err := h.engine.Handle(ctx, upd)
	if err != nil {
		log.Error("failed to handle update", zap.Error(err))
		h.out.Dispatch([]domain.Outbound{h.engine.ErrorReply(ctx, upd.ChatID)})
		return
	}
	h.out.Dispatch(msgs)
}

// toUpdate keeps message and edited_message updates that belong to a chat.
func toUpdate(u tgbotapi.Update) (domain.Update, bool) {
	m := u.Message
	if m == nil {
		m = u.EditedMessage
	}
	if m == nil || m.Chat == nil {
		return domain.Update{}, false
	}

	upd := domain.Update{
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}
	if m.From != nil {
		upd.FirstName = m.From.FirstName
		upd.Username = m.From.UserName
	}
	if m.Contact != nil {
		upd.Contact = &domain.Contact{
			PhoneNumber: m.Contact.PhoneNumber,
			FirstName:   m.Contact.FirstName,
		}
	}
	if m.Location != nil {
		upd.Location = &domain.Location{
			Latitude:  m.Location.Latitude,
			Longitude: m.Location.Longitude,
		}
	}
	return upd, true
}
