package engine

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/shopspring/decimal"
)

var itemNumber = regexp.MustCompile(`^\s*(\d+)\s*\)?`)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func (e *Engine) showCategories(t *turn) {
	items := e.catalog.Resolve(t.ctx, t.lang)
	t.sess.Pending = domain.PendingContext{}
	if len(items) == 0 {
		t.reply(e.text.Text("catalog_empty", t.lang), e.menuKeyboard(t.lang))
		return
	}

	cats := domain.Categories(items)
	if len(cats) > pageSize {
		cats = cats[:pageSize]
	}
	t.reply(e.text.Text("categories", t.lang), listKeyboard(cats, e.text.Text("back", t.lang)))
}

// showCategory lists the items of the category text names, if any.
func (e *Engine) showCategory(t *turn, text string) bool {
	items := e.catalog.Resolve(t.ctx, t.lang)
	category, ok := matchCategory(domain.Categories(items), text)
	if !ok {
		return false
	}

	products := domain.InCategory(items, category)
	if len(products) == 0 {
		t.reply(e.text.Text("category_empty", t.lang), e.menuKeyboard(t.lang))
		return true
	}
	if len(products) > pageSize {
		products = products[:pageSize]
	}

	labels := make([]string, len(products))
	for i, p := range products {
		labels[i] = fmt.Sprintf("%d) %s — %s", i+1, p.DisplayName, money(p.UnitPrice))
	}
	t.sess.Pending = domain.CategoryBrowsing(category)
	t.reply(e.text.Format("category_products", t.lang, "category", category),
		listKeyboard(labels, e.text.Text("back", t.lang)))
	return true
}

func matchCategory(categories []string, text string) (string, bool) {
	n := Normalize(text)
	if n == "" {
		return "", false
	}
	for _, c := range categories {
		if Normalize(c) == n {
			return c, true
		}
	}
	words := splitWords(n)
	for _, c := range categories {
		if containsPhrase(words, splitWords(Normalize(c))) {
			return c, true
		}
	}
	return "", false
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// containsPhrase reports whether phrase occurs in words as consecutive
// whole words.
func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		if slices.Equal(words[i:i+len(phrase)], phrase) {
			return true
		}
	}
	return false
}

// selectItem adds the Nth listed item of the browsed category to the cart.
func (e *Engine) selectItem(t *turn, text string) (bool, error) {
	m := itemNumber.FindStringSubmatch(Normalize(text))
	if m == nil {
		return false, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return false, nil
	}

	products := domain.InCategory(e.catalog.Resolve(t.ctx, t.lang), t.sess.Pending.Category)
	if len(products) > pageSize {
		products = products[:pageSize]
	}
	if n < 1 || n > len(products) {
		return false, nil
	}

	item := products[n-1]
	if e.cfg.Tier.StockCheck && item.OutOfStock() {
		t.reply(e.text.Text("out_of_stock", t.lang), e.menuKeyboard(t.lang))
		return true, nil
	}

	t.sess.Cart.Add(item.CartLine())
	t.reply(e.text.Format("added_to_cart", t.lang,
		"name", item.DisplayName, "price", money(item.UnitPrice)), e.menuKeyboard(t.lang))
	return true, nil
}

func (e *Engine) showCart(t *turn) {
	if t.sess.Cart.Empty() {
		t.reply(e.text.Text("cart_empty", t.lang), e.menuKeyboard(t.lang))
		return
	}

	var b strings.Builder
	for i, l := range t.sess.Cart {
		fmt.Fprintf(&b, "%d) %s x%d — %s\n", i+1, l.DisplayName, l.Quantity, money(l.UnitPrice))
	}
	fmt.Fprintf(&b, "\n%s: %s", e.text.Text("cart_total", t.lang), money(t.sess.Cart.Total()))
	t.reply(b.String(), e.cartKeyboard(t.lang))
}

// pricesText prefers a configured PRICES text and otherwise lists the catalog.
func (e *Engine) pricesText(t *turn) string {
	if s := e.text.Text("prices", t.lang); s != "" {
		return s
	}
	var lines []string
	for _, it := range e.catalog.Resolve(t.ctx, t.lang) {
		if !it.IsAvailable {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s — %s", it.DisplayName, money(it.UnitPrice)))
	}
	return orDash(strings.Join(lines, "\n"))
}
