// Package i18n translates game messages. Message keys are English format
// strings; other languages come from the embedded gettext catalogs.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/tatianab/casa-abandonada/internal/engine"
)

// DefaultLocale is the language the game is played in.
const DefaultLocale = "pt_BR"

// ErrUnknownLocale is returned for a locale with no catalog.
var ErrUnknownLocale = errors.New("unknown locale")

//go:embed locales/*.po
var locales embed.FS

// Catalog looks up translations for one locale. The zero value, and the
// catalog for "en", return keys untranslated.
type Catalog struct {
	locale string
	po     *gotext.Po
}

// New loads the catalog for locale. An empty locale means DefaultLocale.
func New(locale string) (*Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if isEnglish(locale) {
		return &Catalog{locale: locale}, nil
	}

	data, err := locales.ReadFile(path.Join("locales", locale+".po"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (have %s)", ErrUnknownLocale, locale, strings.Join(Locales(), ", "))
	}
	if err != nil {
		return nil, err
	}

	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{locale: locale, po: po}, nil
}

// Locales lists the available locales.
func Locales() []string {
	names := []string{"en"}
	entries, _ := fs.ReadDir(locales, "locales")
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".po"))
	}
	slices.Sort(names)
	return names
}

func isEnglish(locale string) bool {
	return locale == "en" || strings.HasPrefix(locale, "en_") || locale == "C"
}

// Locale returns the catalog's locale.
func (c *Catalog) Locale() string {
	if c == nil || c.locale == "" {
		return "en"
	}
	return c.locale
}

// Get translates key and formats it with args.
func (c *Catalog) Get(key string, args ...any) string {
	if c == nil || c.po == nil {
		return gotext.FormatString(key, args...)
	}
	return c.po.Get(key, args...)
}

// Message renders an engine message.
func (c *Catalog) Message(m engine.Message) string {
	return c.Get(m.Key, m.Args...)
}
