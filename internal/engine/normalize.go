package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decorations are the button emoji stripped before matching.
var decorations = strings.NewReplacer(
	"🧩", "", "🤖", "", "💵", "", "ℹ", "", "📞", "", "🛟", "", "🗂", "",
	"✅", "", "❌", "", "🧺", "", "📍", "", "🧹", "", "🛍", "", "🌐", "",
	"📝", "", "↩", "", "✨", "", "⚠", "",
)

// letterFolds maps Arabic code points to their Persian forms and native
// digits to ASCII.
var letterFolds = strings.NewReplacer(
	"ي", "ی", "ى", "ی", "ك", "ک", "ة", "ه",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

var lower = cases.Lower(language.Und)

// Normalize prepares text for keyword matching.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = decorations.Replace(s)

	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.In(unicode.Cf)),
		norm.NFKC,
	)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}

	s = letterFolds.Replace(s)
	s = lower.String(s)
	return strings.Join(strings.Fields(s), " ")
}
