package domain

import "strings"

type Language string

const (
	LanguageFA Language = "FA"
	LanguageEN Language = "EN"
	LanguageAR Language = "AR"
)

// Languages lists the supported languages in menu order.
var Languages = []Language{LanguageFA, LanguageEN, LanguageAR}

// ParseLanguage accepts a language code in any case.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToUpper(strings.TrimSpace(s))) {
	case LanguageFA:
		return LanguageFA, true
	case LanguageEN:
		return LanguageEN, true
	case LanguageAR:
		return LanguageAR, true
	}
	return "", false
}

func (l Language) String() string {
	return string(l)
}
