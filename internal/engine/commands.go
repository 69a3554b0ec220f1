package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/hamidrz1977-bot/jawab-bot/internal/repository"
	"go.uber.org/zap"
)

type command struct {
	admin bool
	run   func(e *Engine, t *turn, arg string) error
}

var commands = map[string]command{
	"/start":     {run: (*Engine).cmdStart},
	"/lang":      {run: (*Engine).cmdLang},
	"/cancel":    {run: (*Engine).cmdCancel},
	"/sync":      {admin: true, run: (*Engine).cmdSync},
	"/report":    {admin: true, run: (*Engine).cmdReport},
	"/stats":     {admin: true, run: (*Engine).cmdStats},
	"/broadcast": {admin: true, run: (*Engine).cmdBroadcast},
	"/setlang":   {admin: true, run: (*Engine).cmdSetLang},
	"/order":     {admin: true, run: (*Engine).cmdOrder},
}

// onCommand runs a slash command. Unknown commands are left to the
// classifier.
func (e *Engine) onCommand(t *turn, text string) (bool, error) {
	name, arg, _ := strings.Cut(text, " ")
	name = strings.ToLower(name)
	// "/start@MyBot" addresses the bot in group chats.
	name, _, _ = strings.Cut(name, "@")

	cmd, ok := commands[name]
	if !ok {
		return false, nil
	}
	if cmd.admin && !e.isAdmin(t.upd.ChatID) {
		t.reply(e.text.Text("no_permission", t.lang), e.menuKeyboard(t.lang))
		return true, nil
	}
	return true, cmd.run(e, t, strings.TrimSpace(arg))
}

func (e *Engine) cmdStart(t *turn, arg string) error {
	t.sess.Pending = domain.PendingContext{}
	if arg != "" {
		if err := e.repo.SetUserSource(t.ctx, t.upd.ChatID, arg); err != nil {
			e.log.Warn("store source failed", zap.Int64("chat_id", t.upd.ChatID), zap.Error(err))
		}
	}
	t.reply(e.text.Text("welcome", t.lang), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) cmdLang(t *turn, arg string) error {
	lang, ok := domain.ParseLanguage(arg)
	if !ok {
		t.reply(e.text.Text("lang_pick", t.lang), languageKeyboard(e.text.Text("back", t.lang)))
		return nil
	}
	return e.switchLanguage(t, lang)
}

func (e *Engine) cmdCancel(t *turn, _ string) error {
	t.sess.Pending = domain.PendingContext{}
	t.reply(e.text.Text("cancelled", t.lang), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) cmdSync(t *turn, _ string) error {
	n, err := e.catalog.Sync(t.ctx)
	if err != nil {
		e.log.Error("catalog sync failed", zap.Int64("chat_id", t.upd.ChatID), zap.Error(err))
		t.reply(e.text.Text("sync_failed", t.lang)+" "+err.Error(), e.menuKeyboard(t.lang))
		return nil
	}
	t.reply(e.text.Format("sync_ok", t.lang, "n", strconv.Itoa(n)), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) cmdReport(t *turn, arg string) error {
	period := domain.ParsePeriod(strings.ToLower(arg))
	sum, err := e.repo.ReportSummary(t.ctx, period)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	t.reply(e.text.Format("report", t.lang,
		"period", string(period),
		"count", strconv.FormatInt(sum.OrderCount, 10),
		"revenue", money(sum.Revenue)), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) cmdStats(t *turn, _ string) error {
	st, err := e.repo.Stats(t.ctx, e.DefaultLanguage())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	langs := make([]string, 0, len(st.Languages))
	for l, n := range st.Languages {
		langs = append(langs, fmt.Sprintf("%s:%d", l, n))
	}
	sort.Strings(langs)

	t.reply(e.text.Format("stats", t.lang,
		"users", strconv.FormatInt(st.UsersTotal, 10),
		"messages", strconv.FormatInt(st.MessagesTotal, 10),
		"messages24h", strconv.FormatInt(st.Messages24h, 10),
		"orders", strconv.FormatInt(st.OrdersTotal, 10),
		"langs", orDash(strings.Join(langs, ", "))), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) cmdBroadcast(t *turn, arg string) error {
	if arg == "" {
		t.reply(e.text.Text("broadcast_usage", t.lang), e.menuKeyboard(t.lang))
		return nil
	}
	ids, err := e.repo.ListUserIDs(t.ctx, e.cfg.BroadcastLimit)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, id := range ids {
		t.out = append(t.out, domain.Outbound{ChatID: id, Text: arg, Broadcast: true})
	}

	var skipped int64
	if e.cfg.BroadcastLimit > 0 && len(ids) == e.cfg.BroadcastLimit {
		total, err := e.repo.CountUsers(t.ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		skipped = total - int64(len(ids))
	}
	e.log.Info("broadcast queued",
		zap.Int64("chat_id", t.upd.ChatID),
		zap.Int("recipients", len(ids)),
		zap.Int64("skipped", skipped))

	n := strconv.Itoa(len(ids))
	if skipped > 0 {
		t.reply(e.text.Format("broadcast_capped", t.lang,
			"n", n, "skipped", strconv.FormatInt(skipped, 10)), e.menuKeyboard(t.lang))
		return nil
	}
	t.reply(e.text.Format("broadcast_queued", t.lang, "n", n), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) cmdSetLang(t *turn, arg string) error {
	lang, ok := domain.ParseLanguage(arg)
	if !ok {
		t.reply(e.text.Text("setlang_usage", t.lang), e.menuKeyboard(t.lang))
		return nil
	}
	e.setDefaultLanguage(lang)
	e.log.Info("default language changed", zap.Int64("chat_id", t.upd.ChatID), zap.Stringer("lang", lang))
	t.reply(e.text.Format("setlang_ok", t.lang, "lang", string(lang)), e.menuKeyboard(t.lang))
	return nil
}

func (e *Engine) cmdOrder(t *turn, arg string) error {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		t.reply(e.text.Text("order_usage", t.lang), e.menuKeyboard(t.lang))
		return nil
	}

	o, err := e.repo.GetOrder(t.ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		t.reply(e.text.Format("order_not_found", t.lang, "oid", strconv.FormatInt(id, 10)), e.menuKeyboard(t.lang))
		return nil
	}
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}

	text := orderSummary("ORDER", *o, fmt.Sprintf("%s (%s)", orDash(o.ContactName), o.SessionID))
	text += fmt.Sprintf("\nStatus: %s\nCreated: %s", o.Status, o.CreatedAt.Format("2006-01-02 15:04 UTC"))
	t.reply(text, e.menuKeyboard(t.lang))
	return nil
}
