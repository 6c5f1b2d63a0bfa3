// Package i18n resolves translation maps to a single string for the
// language a client asked for.
//
// Translations are stored as JSON objects keyed by language code
// (e.g. {"en": "Circuit", "ru": "Трасса"}). The Resolver picks the client
// language from the Accept-Language header; Locale then walks the
// fallback chain when a translation is missing.
package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Translations maps a language code to a localized string.
type Translations map[string]string

// Locale is the language chosen for one request plus the configured fallback.
type Locale struct {
	Lang     string
	Fallback string
}

// Translate resolves t for the locale.
//
// Order: exact language, its base language ("en-GB" -> "en"), the fallback
// language, then the first non-empty entry by key so that output is stable.
// An empty or nil map yields "".
func (l Locale) Translate(t Translations) string {
	if len(t) == 0 {
		return ""
	}

	candidates := []string{l.Lang}
	if base, _, ok := strings.Cut(l.Lang, "-"); ok {
		candidates = append(candidates, base)
	}
	candidates = append(candidates, l.Fallback)

	for _, code := range candidates {
		if code == "" {
			continue
		}
		if v := t[code]; v != "" {
			return v
		}
	}

	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// Resolver matches client language preferences against the supported set.
type Resolver struct {
	fallback string
	codes    []string
	matcher  language.Matcher
}

// NewResolver builds a Resolver. The default language is always supported
// and wins ties, so it is placed first in the matcher.
func NewResolver(defaultLang string, supported []string) *Resolver {
	codes := []string{defaultLang}
	for _, s := range supported {
		if s != "" && s != defaultLang {
			codes = append(codes, s)
		}
	}

	tags := make([]language.Tag, 0, len(codes))
	for _, c := range codes {
		tags = append(tags, language.Make(c))
	}

	return &Resolver{
		fallback: defaultLang,
		codes:    codes,
		matcher:  language.NewMatcher(tags),
	}
}

// Match returns the supported language code closest to the Accept-Language
// header value, or the default language when nothing matches.
func (r *Resolver) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return r.fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return r.fallback
	}

	_, idx, confidence := r.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(r.codes) {
		return r.fallback
	}
	return r.codes[idx]
}

// Locale returns the request locale for the given Accept-Language value.
func (r *Resolver) Locale(acceptLanguage string) Locale {
	return Locale{Lang: r.Match(acceptLanguage), Fallback: r.fallback}
}

// Default is the fallback language code.
func (r *Resolver) Default() string {
	return r.fallback
}
