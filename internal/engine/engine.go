// Package engine turns inbound chat updates into session transitions and
// outbound replies.
package engine

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	"github.com/hamidrz1977-bot/jawab-bot/internal/config"
	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/hamidrz1977-bot/jawab-bot/internal/i18n"
	"github.com/hamidrz1977-bot/jawab-bot/internal/repository"
	"github.com/hamidrz1977-bot/jawab-bot/internal/session"
	"go.uber.org/zap"
)

// Catalog resolves and refreshes the product list.
type Catalog interface {
	Resolve(ctx context.Context, lang domain.Language) []domain.CatalogItem
	Sync(ctx context.Context) (int, error)
}

// Repository is the durable state the engine reads and writes.
type Repository interface {
	CreateOrder(ctx context.Context, o domain.NewOrder) (int64, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	CreateLead(ctx context.Context, l domain.NewLead) (int64, error)
	ReportSummary(ctx context.Context, period domain.ReportPeriod) (domain.Summary, error)
	Stats(ctx context.Context, defaultLang domain.Language) (domain.Stats, error)
	ListUserIDs(ctx context.Context, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int64, error)

	UpsertUser(ctx context.Context, chatID int64, name string) error
	GetUser(ctx context.Context, chatID int64) (*domain.UserProfile, error)
	SetUserLang(ctx context.Context, chatID int64, lang domain.Language) error
	SetUserPhone(ctx context.Context, chatID int64, phone string) error
	SetUserSource(ctx context.Context, chatID int64, source string) error
	LogMessage(ctx context.Context, chatID int64, text string, dir domain.Direction) error
}

const (
	pageSize  = 10
	lockShard = 64
)

type Engine struct {
	cfg        *config.Config
	text       *i18n.Table
	classifier *Classifier
	catalog    Catalog
	repo       Repository
	sessions   session.Store
	log        *zap.Logger

	langMu      sync.RWMutex
	defaultLang domain.Language

	// locks serialise updates of the same chat.
	locks [lockShard]sync.Mutex
}

func New(cfg *config.Config, text *i18n.Table, catalog Catalog, repo Repository, sessions session.Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:         cfg,
		text:        text,
		classifier:  NewClassifier(text),
		catalog:     catalog,
		repo:        repo,
		sessions:    sessions,
		log:         logger.Named("engine"),
		defaultLang: cfg.DefaultLang,
	}
}

// DefaultLanguage is the language new sessions start in.
func (e *Engine) DefaultLanguage() domain.Language {
	e.langMu.RLock()
	defer e.langMu.RUnlock()
	return e.defaultLang
}

func (e *Engine) setDefaultLanguage(l domain.Language) {
	e.langMu.Lock()
	defer e.langMu.Unlock()
	e.defaultLang = l
}

// turn carries the state of one update through the handlers.
type turn struct {
	ctx  context.Context
	upd  domain.Update
	sess *domain.Session
	lang domain.Language
	out  []domain.Outbound
}

func (t *turn) reply(text string, kb domain.Keyboard) {
	t.out = append(t.out, domain.Outbound{ChatID: t.upd.ChatID, Text: text, Keyboard: kb})
}

func (t *turn) send(chatID int64, text string) {
	t.out = append(t.out, domain.Outbound{ChatID: chatID, Text: text})
}

// Handle processes one update and returns the messages to deliver. The
// session is saved only when handling succeeds; a failed save deletes it.
func (e *Engine) Handle(ctx context.Context, upd domain.Update) ([]domain.Outbound, error) {
	if upd.ChatID == 0 {
		return nil, nil
	}

	mu := e.lockFor(upd.ChatID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := e.loadSession(ctx, upd)
	if err != nil {
		return nil, err
	}

	t := &turn{ctx: ctx, upd: upd, sess: sess, lang: sess.Language}
	if upd.Text != "" {
		e.logMessage(ctx, upd.ChatID, upd.Text, domain.DirectionIn)
	}

	if err := e.dispatch(t); err != nil {
		return nil, err
	}

	if err := e.sessions.Put(ctx, sess); err != nil {
		// An order or lead may already be recorded: keep the replies and
		// drop the stale session.
		e.log.Error("failed to save session",
			zap.Int64("chat_id", upd.ChatID),
			zap.Error(err))
		if derr := e.sessions.Delete(ctx, sess.ID); derr != nil {
			e.log.Error("failed to drop session", zap.Int64("chat_id", upd.ChatID), zap.Error(derr))
		}
	}

	for _, o := range t.out {
		if !o.Broadcast {
			e.logMessage(ctx, o.ChatID, o.Text, domain.DirectionOut)
		}
	}
	return t.out, nil
}

// ErrorReply is the notice sent when handling an update failed.
func (e *Engine) ErrorReply(ctx context.Context, chatID int64) domain.Outbound {
	lang := e.DefaultLanguage()
	if sess, err := e.sessions.Get(ctx, strconv.FormatInt(chatID, 10)); err == nil && sess != nil {
		lang = sess.Language
	}
	return domain.Outbound{ChatID: chatID, Text: e.text.Text("temp_error", lang)}
}

func (e *Engine) lockFor(chatID int64) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(strconv.FormatInt(chatID, 10)))
	return &e.locks[h.Sum32()%lockShard]
}

func (e *Engine) loadSession(ctx context.Context, upd domain.Update) (*domain.Session, error) {
	id := strconv.FormatInt(upd.ChatID, 10)
	sess, err := e.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if err := e.repo.UpsertUser(ctx, upd.ChatID, upd.FirstName); err != nil {
		e.log.Warn("upsert user failed", zap.Int64("chat_id", upd.ChatID), zap.Error(err))
	}
	if sess != nil {
		if upd.FirstName != "" {
			sess.Name = upd.FirstName
		}
		return sess, nil
	}

	sess = domain.NewSession(id, e.DefaultLanguage())
	sess.Name = upd.FirstName
	profile, err := e.repo.GetUser(ctx, upd.ChatID)
	switch {
	case err == nil:
		if profile.Language != "" {
			sess.Language = profile.Language
		}
		sess.Phone = profile.Phone
	case !errors.Is(err, repository.ErrNotFound):
		e.log.Warn("load user profile failed", zap.Int64("chat_id", upd.ChatID), zap.Error(err))
	}
	return sess, nil
}

func (e *Engine) logMessage(ctx context.Context, chatID int64, text string, dir domain.Direction) {
	if err := e.repo.LogMessage(ctx, chatID, text, dir); err != nil {
		e.log.Warn("log message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// dispatch applies the event order: contact, location, command, intent,
// then the input the pending context expects.
func (e *Engine) dispatch(t *turn) error {
	switch {
	case t.upd.Contact != nil && t.upd.Contact.PhoneNumber != "":
		return e.onContact(t)
	case t.upd.Location != nil:
		return e.onLocation(t)
	}

	text := strings.TrimSpace(t.upd.Text)
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "/") {
		if handled, err := e.onCommand(t, text); handled || err != nil {
			return err
		}
	}

	if t.sess.Pending.Kind == domain.PendingCategoryBrowsing {
		if handled, err := e.selectItem(t, text); handled || err != nil {
			return err
		}
	}

	strict := t.sess.Pending.Kind == domain.PendingAwaitingAddress
	if intent := e.classifier.Classify(text, strict); intent != IntentNone {
		e.log.Debug("intent", zap.Int64("chat_id", t.upd.ChatID), zap.Stringer("intent", intent))
		return e.onIntent(t, intent, text)
	}

	return e.onFreeText(t, text)
}

func (e *Engine) onIntent(t *turn, intent Intent, text string) error {
	switch intent {
	case IntentLanguagePick:
		lang, _ := e.classifier.Language(text)
		return e.switchLanguage(t, lang)
	case IntentEmptyCart:
		t.sess.Cart.Clear()
		t.reply(e.text.Text("cart_cleared", t.lang), e.menuKeyboard(t.lang))
	case IntentCart:
		e.showCart(t)
	case IntentConfirm:
		if t.sess.Pending.Kind == domain.PendingLead {
			return e.confirmLead(t)
		}
		e.checkout(t)
	case IntentCancel:
		t.sess.Pending = domain.PendingContext{}
		t.reply(e.text.Text("cancelled", t.lang), e.menuKeyboard(t.lang))
	case IntentBack, IntentMenu:
		t.sess.Pending = domain.PendingContext{}
		t.reply(e.text.Text("choose", t.lang), e.menuKeyboard(t.lang))
	case IntentProducts:
		e.showCategories(t)
	case IntentPrices:
		t.reply(e.pricesText(t), e.menuKeyboard(t.lang))
	case IntentAbout:
		t.reply(orDash(e.text.Text("about", t.lang)), e.menuKeyboard(t.lang))
	case IntentSupport:
		t.reply(e.supportText(t.lang), e.menuKeyboard(t.lang))
	case IntentLanguage:
		t.reply(e.text.Text("lang_pick", t.lang), languageKeyboard(e.text.Text("back", t.lang)))
	case IntentQuote:
		e.showPackages(t)
	}
	return nil
}

// onFreeText handles text no intent claimed, in the light of the pending
// context.
func (e *Engine) onFreeText(t *turn, text string) error {
	switch t.sess.Pending.Kind {
	case domain.PendingAwaitingAddress:
		return e.finalizeOrder(t, text, nil)
	case domain.PendingAwaitingPhone:
		t.reply(e.text.Text("need_phone", t.lang), e.phoneKeyboard(t.lang))
		return nil
	}

	if pkg, ok := e.matchPackage(text); ok {
		e.choosePackage(t, pkg)
		return nil
	}
	if e.showCategory(t, text) {
		return nil
	}

	t.reply(e.text.Text("unknown", t.lang), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) onContact(t *turn) error {
	phone := strings.TrimSpace(t.upd.Contact.PhoneNumber)
	t.sess.Phone = phone
	if name := t.upd.Contact.FirstName; name != "" && t.sess.Name == "" {
		t.sess.Name = name
	}
	if err := e.repo.SetUserPhone(t.ctx, t.upd.ChatID, phone); err != nil {
		e.log.Warn("store phone failed", zap.Int64("chat_id", t.upd.ChatID), zap.Error(err))
	}

	switch t.sess.Pending.Kind {
	case domain.PendingAwaitingPhone:
		t.reply(e.text.Text("phone_ok", t.lang), nil)
		t.sess.Pending = domain.AwaitingAddress(checkoutLabel)
		t.reply(e.text.Text("ask_address", t.lang), e.locationKeyboard(t.lang))
		return nil
	case domain.PendingLead:
		return e.finalizeLead(t)
	}

	t.reply(e.text.Text("phone_ok", t.lang), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) onLocation(t *turn) error {
	if t.sess.Pending.Kind != domain.PendingAwaitingAddress {
		return nil
	}
	return e.finalizeOrder(t, "", t.upd.Location)
}

func (e *Engine) switchLanguage(t *turn, lang domain.Language) error {
	t.sess.Language = lang
	t.lang = lang
	if err := e.repo.SetUserLang(t.ctx, t.upd.ChatID, lang); err != nil {
		e.log.Warn("store language failed", zap.Int64("chat_id", t.upd.ChatID), zap.Error(err))
	}
	t.reply(e.text.Text("lang_set", lang), e.menuKeyboard(lang))
	return nil
}

func (e *Engine) isAdmin(chatID int64) bool {
	return e.cfg.IsAdmin(strconv.FormatInt(chatID, 10))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
