package engine

import (
	"strings"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/hamidrz1977-bot/jawab-bot/internal/i18n"
)

type Intent int

const (
	IntentNone Intent = iota
	IntentLanguagePick
	IntentEmptyCart
	IntentCart
	IntentConfirm
	IntentCancel
	IntentBack
	IntentMenu
	IntentProducts
	IntentPrices
	IntentAbout
	IntentSupport
	IntentLanguage
	IntentQuote
)

var intentNames = map[Intent]string{
	IntentNone:         "none",
	IntentLanguagePick: "language_pick",
	IntentEmptyCart:    "empty_cart",
	IntentCart:         "cart",
	IntentConfirm:      "confirm",
	IntentCancel:       "cancel",
	IntentBack:         "back",
	IntentMenu:         "menu",
	IntentProducts:     "products",
	IntentPrices:       "prices",
	IntentAbout:        "about",
	IntentSupport:      "support",
	IntentLanguage:     "language",
	IntentQuote:        "quote",
}

func (i Intent) String() string {
	if n, ok := intentNames[i]; ok {
		return n
	}
	return "unknown"
}

// languageButtons label the language picker.
var languageButtons = map[domain.Language]string{
	domain.LanguageFA: "🇮🇷 فارسی",
	domain.LanguageEN: "🇬🇧 English",
	domain.LanguageAR: "🇸🇦 العربية",
}

type rule struct {
	intent   Intent
	labels   []string // matched by equality
	keywords []string // matched by containment unless strict
}

// Classifier maps free text to an Intent. Rules are evaluated in order and
// the first match wins; an exact label match anywhere beats containment.
type Classifier struct {
	rules     []rule
	languages map[string]domain.Language
}

func NewClassifier(t *i18n.Table) *Classifier {
	labels := func(keys ...string) []string {
		var out []string
		for _, k := range keys {
			out = append(out, t.Labels(k)...)
		}
		return out
	}

	c := &Classifier{languages: make(map[string]domain.Language)}
	for lang, label := range languageButtons {
		c.languages[Normalize(label)] = lang
	}
	for _, name := range []struct {
		word string
		lang domain.Language
	}{
		{"فارسی", domain.LanguageFA},
		{"persian", domain.LanguageFA},
		{"english", domain.LanguageEN},
		{"العربية", domain.LanguageAR},
		{"arabic", domain.LanguageAR},
	} {
		c.languages[Normalize(name.word)] = name.lang
	}

	c.rules = []rule{
		{IntentEmptyCart, labels("btn_empty_cart"), []string{"empty cart", "خالی", "إفراغ"}},
		{IntentCart, labels("btn_cart"), []string{"سبد", "cart", "السلة", "سلة"}},
		{IntentConfirm, labels("btn_order", "btn_confirm"), []string{"ثبت سفارش", "place order", "confirm", "تایید", "تأكيد"}},
		{IntentCancel, labels("btn_cancel"), []string{"cancel", "انصراف", "لغو", "إلغاء"}},
		{IntentBack, labels("back"), []string{"back", "بازگشت", "رجوع"}},
		{IntentMenu, labels("btn_menu"), []string{"menu", "منو", "القائمة"}},
		{IntentProducts, labels("btn_products"), []string{"محصول", "products", "المنتجات"}},
		{IntentPrices, labels("btn_prices"), []string{"price", "قیمت", "الأسعار"}},
		{IntentAbout, labels("btn_about"), []string{"about", "درباره", "من نحن"}},
		{IntentSupport, labels("btn_support"), []string{"پشتیبانی", "support", "الدعم"}},
		{IntentLanguage, labels("btn_language"), []string{"language", "زبان", "اللغة"}},
		{IntentQuote, labels("btn_quote"), []string{"quote", "مشاوره", "عرض سعر"}},
	}
	for i := range c.rules {
		c.rules[i].labels = normalizeAll(c.rules[i].labels)
		c.rules[i].keywords = normalizeAll(c.rules[i].keywords)
	}
	return c
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Classify returns the intent of text. With strict set only whole-text
// matches count, so free text such as an address is not misread.
func (c *Classifier) Classify(text string, strict bool) Intent {
	n := Normalize(text)
	if n == "" {
		return IntentNone
	}
	if _, ok := c.languages[n]; ok {
		return IntentLanguagePick
	}

	for _, r := range c.rules {
		if contains(r.labels, n) || contains(r.keywords, n) {
			return r.intent
		}
	}
	if strict {
		return IntentNone
	}

	for _, r := range c.rules {
		if containedIn(n, r.labels) || containedIn(n, r.keywords) {
			return r.intent
		}
	}
	return IntentNone
}

// Language returns the language a picker button names.
func (c *Classifier) Language(text string) (domain.Language, bool) {
	l, ok := c.languages[Normalize(text)]
	return l, ok
}

func containedIn(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
