// Package i18n resolves display strings per language with external
// overrides taking precedence over the compiled-in defaults.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"gopkg.in/yaml.v3"
)

// Lookup returns an override value for an upper-case key.
type Lookup func(key string) (string, bool)

// EnvLookup reads overrides from the process environment.
func EnvLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapLookup serves overrides from a fixed map.
func MapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// LoadFile reads a YAML mapping of KEY: value overrides.
func LoadFile(path string) (Lookup, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale file: %w", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse locale file: %w", err)
	}
	upper := make(map[string]string, len(m))
	for k, v := range m {
		upper[strings.ToUpper(k)] = v
	}
	return MapLookup(upper), nil
}

type Table struct {
	brand   string
	lookups []Lookup
}

// New builds a table; lookups are consulted in order before the defaults.
func New(brand string, lookups ...Lookup) *Table {
	return &Table{brand: brand, lookups: lookups}
}

// Text resolves key for lang: KEY_<LANG>, KEY_TEXT_<LANG>, KEY, then the
// compiled default. Unknown keys yield "".
func (t *Table) Text(key string, lang domain.Language) string {
	upper := strings.ToUpper(key)
	suffix := lang.String()
	for _, name := range []string{upper + "_" + suffix, upper + "_TEXT_" + suffix, upper} {
		if v, ok := t.override(name); ok {
			return t.expand(v)
		}
	}
	if d, ok := defaults[lang][strings.ToLower(key)]; ok {
		return t.expand(d)
	}
	return ""
}

// Format resolves key and substitutes {name} placeholders from pairs.
func (t *Table) Format(key string, lang domain.Language, pairs ...string) string {
	return Expand(t.Text(key, lang), pairs...)
}

// Labels returns the resolved text of key in every supported language.
func (t *Table) Labels(key string) []string {
	out := make([]string, 0, len(domain.Languages))
	for _, l := range domain.Languages {
		if v := t.Text(key, l); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (t *Table) override(name string) (string, bool) {
	for _, look := range t.lookups {
		if v, ok := look(name); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func (t *Table) expand(s string) string {
	return strings.ReplaceAll(s, "{brand}", t.brand)
}

// Expand replaces {name} placeholders; pairs alternate name, value.
func Expand(s string, pairs ...string) string {
	if len(pairs) < 2 {
		return s
	}
	old := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		old = append(old, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(old...).Replace(s)
}
