// Package i18n resolves the UI language for a request and looks up the
// translated strings used by the page templates. Portuguese is the
// fallback language, matching the deployed audience.
package i18n

import (
	"golang.org/x/text/language"
)

const (
	LangPortuguese = "pt"
	LangEnglish    = "en"

	// DefaultLang is used when neither the stored preference nor the
	// Accept-Language header matches a supported language.
	DefaultLang = LangPortuguese
)

var supported = []language.Tag{
	language.Portuguese, // fallback, must stay first
	language.English,
}

var matcher = language.NewMatcher(supported)

// Supported reports whether lang is one of the languages the portal ships
// translations for.
func Supported(lang string) bool {
	return lang == LangPortuguese || lang == LangEnglish
}

// Match resolves the language for a request. The stored preference wins
// when it names a supported language; otherwise the Accept-Language
// header is matched against the supported set.
func Match(preferred, acceptLanguage string) string {
	if Supported(preferred) {
		return preferred
	}
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if base.String() == "en" {
		return LangEnglish
	}
	return DefaultLang
}

// T returns the translation of key in lang, falling back to the default
// language and finally to the key itself so a missing entry is visible
// rather than blank.
func T(lang, key string) string {
	if msg, ok := messages[lang][key]; ok {
		return msg
	}
	if msg, ok := messages[DefaultLang][key]; ok {
		return msg
	}
	return key
}
