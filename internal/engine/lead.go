package engine

import (
	"fmt"
	"strconv"

	"github.com/hamidrz1977-bot/jawab-bot/internal/config"
	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"go.uber.org/zap"
)

func (e *Engine) showPackages(t *turn) {
	if len(e.cfg.LeadPackages) == 0 {
		t.reply(e.text.Text("packages_empty", t.lang), e.menuKeyboard(t.lang))
		return
	}
	labels := make([]string, len(e.cfg.LeadPackages))
	for i, p := range e.cfg.LeadPackages {
		labels[i] = p.Label
	}
	t.reply(e.text.Text("packages", t.lang), listKeyboard(labels, e.text.Text("back", t.lang)))
}

func (e *Engine) matchPackage(text string) (config.LeadPackage, bool) {
	n := Normalize(text)
	for _, p := range e.cfg.LeadPackages {
		if Normalize(p.Label) == n || Normalize(p.Key) == n {
			return p, true
		}
	}
	return config.LeadPackage{}, false
}

func (e *Engine) packageByKey(key string) config.LeadPackage {
	for _, p := range e.cfg.LeadPackages {
		if p.Key == key {
			return p
		}
	}
	return config.LeadPackage{Key: key, Label: key}
}

func (e *Engine) choosePackage(t *turn, p config.LeadPackage) {
	t.sess.Pending = domain.LeadPending(p.Key)
	if t.sess.Phone == "" {
		t.reply(e.text.Format("lead_prompt", t.lang, "package", p.Label)+"\n"+e.text.Text("lead_need_phone", t.lang),
			e.leadKeyboard(t.lang))
		return
	}
	t.reply(e.text.Format("lead_prompt", t.lang, "package", p.Label), e.leadKeyboard(t.lang))
}

func (e *Engine) leadKeyboard(lang domain.Language) domain.Keyboard {
	return domain.Keyboard{
		{{Text: e.text.Text("btn_confirm", lang)}},
		{{Text: e.text.Text("btn_send_phone", lang), RequestContact: true}},
		{{Text: e.text.Text("btn_cancel", lang)}},
	}
}

// confirmLead finalizes the pending lead once a phone is known.
func (e *Engine) confirmLead(t *turn) error {
	if t.sess.Phone == "" {
		t.reply(e.text.Text("lead_need_phone", t.lang), e.leadKeyboard(t.lang))
		return nil
	}
	return e.finalizeLead(t)
}

func (e *Engine) finalizeLead(t *turn) error {
	pkg := e.packageByKey(t.sess.Pending.Source)
	id, err := e.repo.CreateLead(t.ctx, domain.NewLead{
		SessionID:    t.sess.ID,
		ContactPhone: t.sess.Phone,
		ContactName:  t.sess.Name,
		Source:       pkg.Key,
	})
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	e.log.Info("lead created", zap.Int64("lead_id", id), zap.Int64("chat_id", t.upd.ChatID), zap.String("source", pkg.Key))

	e.notifyAdmins(t, fmt.Sprintf("NEW LEAD #%d\nUser: %s (%d)\nPhone: %s\nPackage: %s (%s)",
		id, orDash(t.sess.Name), t.upd.ChatID, orDash(t.sess.Phone), pkg.Label, pkg.Key))
	t.sess.Reset()
	t.reply(e.text.Format("lead_saved", t.lang, "lid", strconv.FormatInt(id, 10)), e.menuKeyboard(t.lang))
	return nil
}
