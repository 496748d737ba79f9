package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tatianab/casa-abandonada/internal/engine"
)

func TestCatalogTranslates(t *testing.T) {
	c, err := New("pt_BR")
	require.NoError(t, err)
	require.Equal(t, "pt_BR", c.Locale())

	require.Equal(t, "Você se move para norte.", c.Get("You move %s.", "norte"))
	require.Equal(t, "Estado", c.Get("Status"))
	require.Equal(t, "Seu inventário (2/5): vela, faca.",
		c.Message(engine.Message{Key: "Your inventory (%d/%d): %s.", Args: []any{2, 5, "vela, faca"}}))
	// content text passes through
	require.Equal(t, "Hall de Entrada", c.Message(engine.Message{Key: "%s", Args: []any{"Hall de Entrada"}}))
	// missing translations fall back to the formatted key
	require.Equal(t, "no such key 3", c.Get("no such key %d", 3))
}

func TestDefaultAndEnglish(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	require.Equal(t, DefaultLocale, c.Locale())

	en, err := New("en")
	require.NoError(t, err)
	require.Equal(t, "You move norte.", en.Get("You move %s.", "norte"))

	var zero *Catalog
	require.Equal(t, "en", zero.Locale())
	require.Equal(t, "Exits: sul.", zero.Get("Exits: %s.", "sul"))
}

func TestUnknownLocale(t *testing.T) {
	_, err := New("xx_YY")
	require.ErrorIs(t, err, ErrUnknownLocale)
	require.Equal(t, []string{"en", "pt_BR"}, Locales())
}

func TestEngineEventsAreTranslated(t *testing.T) {
	c, err := New("pt_BR")
	require.NoError(t, err)
	for _, ev := range engine.DefaultEvents {
		require.NotEqual(t, ev.Description, c.Message(engine.Message{Key: ev.Description}))
	}
}
