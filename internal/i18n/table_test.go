package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_Defaults(t *testing.T) {
	tb := New("Acme")
	assert.Equal(t, "✨ Welcome to Acme ✨\nTap Menu 🗂 to start.", tb.Text("welcome", domain.LanguageEN))
	assert.Equal(t, "🧺 سبد خرید", tb.Text("btn_cart", domain.LanguageFA))
	assert.Equal(t, "❌ إلغاء", tb.Text("btn_cancel", domain.LanguageAR))
}

func TestText_MissingKeyIsEmpty(t *testing.T) {
	tb := New("Acme")
	assert.Equal(t, "", tb.Text("no_such_key", domain.LanguageEN))
	assert.Equal(t, "", tb.Text("prices", domain.LanguageEN))
}

func TestText_ResolutionOrder(t *testing.T) {
	overrides := map[string]string{
		"ABOUT":         "generic",
		"ABOUT_TEXT_EN": "legacy en",
		"ABOUT_FA":      "fa specific",
		"WELCOME_AR":    "   ",
	}
	tb := New("Acme", MapLookup(overrides))

	assert.Equal(t, "fa specific", tb.Text("about", domain.LanguageFA))
	assert.Equal(t, "legacy en", tb.Text("about", domain.LanguageEN))
	assert.Equal(t, "generic", tb.Text("about", domain.LanguageAR))
	// blank overrides are ignored
	assert.Contains(t, tb.Text("welcome", domain.LanguageAR), "Acme")
}

func TestText_LookupChainOrder(t *testing.T) {
	first := MapLookup(map[string]string{"PRICES": "from env"})
	second := MapLookup(map[string]string{"PRICES": "from file", "ABOUT": "file about"})
	tb := New("Acme", first, second)

	assert.Equal(t, "from env", tb.Text("prices", domain.LanguageEN))
	assert.Equal(t, "file about", tb.Text("about", domain.LanguageEN))
}

func TestFormat(t *testing.T) {
	tb := New("Acme")
	assert.Equal(t, "Your order was saved. Order ID: #12\nThank you.", tb.Format("order_saved", domain.LanguageEN, "oid", "12"))
	assert.Equal(t, "a {b}", Expand("a {b}"))
}

func TestLabels(t *testing.T) {
	tb := New("Acme")
	assert.Equal(t, []string{"↩️ بازگشت", "↩️ Back", "↩️ رجوع"}, tb.Labels("back"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locale.yaml")
	require.NoError(t, os.WriteFile(path, []byte("welcome_en: \"Hi from {brand}\"\nabout: About us\n"), 0o600))

	look, err := LoadFile(path)
	require.NoError(t, err)

	tb := New("Acme", look)
	assert.Equal(t, "Hi from Acme", tb.Text("welcome", domain.LanguageEN))
	assert.Equal(t, "About us", tb.Text("about", domain.LanguageFA))
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "parse locale file")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read locale file")
}
