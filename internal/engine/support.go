package engine

import (
	"fmt"
	"strings"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

func (e *Engine) supportText(lang domain.Language) string {
	s := e.cfg.Support
	lines := []string{e.text.Text("support_title", lang)}

	if s.Telegram != "" {
		handle := strings.TrimLeft(s.Telegram, "@")
		lines = append(lines, fmt.Sprintf("%s: @%s (https://t.me/%s)", e.text.Text("support_tg", lang), handle, handle))
	}
	if s.Email != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", e.text.Text("support_mail", lang), s.Email))
	}
	if s.WhatsApp != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", e.text.Text("support_wa", lang), s.WhatsApp))
	}
	if s.Instagram != "" {
		handle := s.Instagram
		for _, p := range []string{"https://www.instagram.com/", "https://instagram.com/", "http://instagram.com/"} {
			handle = strings.TrimPrefix(handle, p)
		}
		handle = strings.TrimLeft(strings.TrimSuffix(handle, "/"), "@")
		lines = append(lines, fmt.Sprintf("%s: @%s", e.text.Text("support_ig", lang), handle))
	}

	if len(lines) == 1 {
		lines = append(lines, e.text.Text("support_none", lang))
	}
	return strings.Join(lines, "\n")
}
