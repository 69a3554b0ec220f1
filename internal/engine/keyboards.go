package engine

import (
	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

func (e *Engine) menuKeyboard(lang domain.Language) domain.Keyboard {
	btn := func(key string) domain.Button {
		return domain.Button{Text: e.text.Text(key, lang)}
	}

	var kb domain.Keyboard
	if e.cfg.ShowProducts {
		kb = append(kb, []domain.Button{btn("btn_products"), btn("btn_cart")})
	} else {
		kb = append(kb, []domain.Button{btn("btn_cart")})
	}
	kb = append(kb,
		[]domain.Button{btn("btn_prices"), btn("btn_about")},
		[]domain.Button{btn("btn_support"), btn("btn_language")},
	)
	if len(e.cfg.LeadPackages) > 0 {
		kb = append(kb, []domain.Button{btn("btn_quote")})
	}
	kb = append(kb, []domain.Button{{Text: e.text.Text("btn_send_phone", lang), RequestContact: true}})
	return kb
}

func (e *Engine) phoneKeyboard(lang domain.Language) domain.Keyboard {
	return domain.Keyboard{
		{{Text: e.text.Text("btn_send_phone", lang), RequestContact: true}},
		{{Text: e.text.Text("back", lang)}},
	}
}

func (e *Engine) locationKeyboard(lang domain.Language) domain.Keyboard {
	return domain.Keyboard{
		{{Text: e.text.Text("btn_send_location", lang), RequestLocation: true}},
		{{Text: e.text.Text("back", lang)}},
	}
}

func (e *Engine) cartKeyboard(lang domain.Language) domain.Keyboard {
	return domain.Keyboard{
		{{Text: e.text.Text("btn_order", lang)}, {Text: e.text.Text("btn_empty_cart", lang)}},
		{{Text: e.text.Text("back", lang)}},
	}
}

func languageKeyboard(back string) domain.Keyboard {
	kb := make(domain.Keyboard, 0, len(domain.Languages)+1)
	for _, l := range domain.Languages {
		kb = append(kb, []domain.Button{{Text: languageButtons[l]}})
	}
	return append(kb, []domain.Button{{Text: back}})
}

// listKeyboard puts each label on its own row followed by a back button.
func listKeyboard(labels []string, back string) domain.Keyboard {
	return domain.Rows(append(labels, back)...)
}
