package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocaleTranslate(t *testing.T) {
	tr := Translations{"en": "Circuit", "ru": "Трасса", "de": ""}

	tests := []struct {
		name   string
		locale Locale
		input  Translations
		want   string
	}{
		{"exact language", Locale{Lang: "ru", Fallback: "en"}, tr, "Трасса"},
		{"base language", Locale{Lang: "ru-RU", Fallback: "en"}, tr, "Трасса"},
		{"empty value falls back", Locale{Lang: "de", Fallback: "en"}, tr, "Circuit"},
		{"unknown language falls back", Locale{Lang: "fr", Fallback: "en"}, tr, "Circuit"},
		{"fallback missing picks first key", Locale{Lang: "fr", Fallback: "es"}, Translations{"ru": "Б", "lv": "A"}, "A"},
		{"nil map", Locale{Lang: "en", Fallback: "en"}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.locale.Translate(tt.input))
		})
	}
}

func TestResolverMatch(t *testing.T) {
	r := NewResolver("en", []string{"en", "ru", "lv"})

	assert.Equal(t, "en", r.Match(""))
	assert.Equal(t, "ru", r.Match("ru-RU,ru;q=0.9,en;q=0.8"))
	assert.Equal(t, "lv", r.Match("lv"))
	assert.Equal(t, "en", r.Match("ja"))
	assert.Equal(t, "en", r.Match("!!!"))

	loc := r.Locale("ru")
	assert.Equal(t, Locale{Lang: "ru", Fallback: "en"}, loc)
	assert.Equal(t, "en", r.Default())
}
