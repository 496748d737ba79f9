package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tatianab/casa-abandonada/data"
	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/engine"
	"github.com/tatianab/casa-abandonada/internal/models"
	"github.com/tatianab/casa-abandonada/internal/narrator"
	"github.com/tatianab/casa-abandonada/internal/session"
	"github.com/tatianab/casa-abandonada/internal/testhelpers"
)

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

type brokenNarrator struct{}

func (brokenNarrator) Narrate(context.Context, narrator.Scene) (string, error) {
	panic("narrator exploded")
}

func newSession(t *testing.T, opts ...session.Option) *session.Session {
	t.Helper()
	content, err := models.LoadContent(data.FS)
	require.NoError(t, err)
	opts = append([]session.Option{
		session.WithStore(models.NewFileStore(t.TempDir())),
		session.WithLogger(testhelpers.NewLogger(io.Discard)),
		session.WithEngineOptions(engine.WithRand(zeroRand{})),
	}, opts...)
	s, err := session.New(config.DefaultGame(), content, opts...)
	require.NoError(t, err)
	return s
}

func TestRunUntilQuit(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer

	err := New(s, &out, WithMenu(false)).Run(context.Background(), strings.NewReader("mover norte\nsair\nolhar\n"))
	require.NoError(t, err)
	require.Contains(t, out.String(), "Welcome to the Abandoned House!")
	require.Contains(t, out.String(), "You move norte.")
	require.Contains(t, out.String(), "Goodbye.")
	require.NotContains(t, out.String(), "Available actions:")
	require.NotContains(t, out.String(), "\x1b[")
	require.Equal(t, "Corredor", s.View().Location)
}

func TestRunAbortsWhenIntroFails(t *testing.T) {
	s := newSession(t, session.WithNarrator(brokenNarrator{}))
	var out bytes.Buffer

	err := New(s, &out).Run(context.Background(), strings.NewReader("sair\n"))
	require.ErrorIs(t, err, session.ErrAborted)
	require.Contains(t, out.String(), "Something went wrong: narrator exploded.")
	require.NotContains(t, out.String(), "Goodbye.")
}

func TestRunMenuNumbers(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer

	// 4 is "mover norte": olhar, inventario, mover leste, mover norte, ...
	err := New(s, &out).Run(context.Background(), strings.NewReader("4\n"))
	require.NoError(t, err)
	require.Contains(t, out.String(), "Available actions:")
	require.Contains(t, out.String(), "4) mover norte")
	require.Equal(t, "Corredor", s.View().Location)
}

func TestRunStopsAtEnding(t *testing.T) {
	s := newSession(t)
	s.Game().ApplyEffects(models.Effects{models.StatSanity: -100})
	var out bytes.Buffer

	err := New(s, &out, WithMenu(false)).Run(context.Background(), strings.NewReader("olhar\nmover norte\n"))
	require.NoError(t, err)
	require.Contains(t, out.String(), "THE END")
	require.Equal(t, "Hall de Entrada", s.View().Location)
}

func TestRunColor(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer

	c := New(s, &out, WithColor(true))
	require.Equal(t, "plain", c.style(nil, "plain"))
	require.NoError(t, c.Run(context.Background(), strings.NewReader("")))
	require.Contains(t, out.String(), "Hall de Entrada")
}
