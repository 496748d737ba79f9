package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/casa-abandonada/data"
	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/engine"
	"github.com/tatianab/casa-abandonada/internal/models"
	"github.com/tatianab/casa-abandonada/internal/session"
	"github.com/tatianab/casa-abandonada/internal/testhelpers"
)

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func newModel(t *testing.T) model {
	t.Helper()
	content, err := models.LoadContent(data.FS)
	require.NoError(t, err)
	s, err := session.New(config.DefaultGame(), content,
		session.WithStore(models.NewFileStore(t.TempDir())),
		session.WithLogger(testhelpers.NewLogger(io.Discard)),
		session.WithEngineOptions(engine.WithRand(zeroRand{})),
	)
	require.NoError(t, err)

	m := newSized(NewModel(context.Background(), s))
	return update(t, m, m.intro()())
}

func newSized(m model) model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model)
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

// send types input and presses Enter, then delivers the finished turn.
func send(t *testing.T, m model, input string) (model, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.Equal(t, stateLoading, m.state)
	require.NotNil(t, cmd)

	for _, msg := range messages(cmd) {
		if turn, ok := msg.(turnProcessedMsg); ok {
			next, cmd := m.Update(turn)
			return next.(model), cmd
		}
	}
	t.Fatalf("no turn was processed for %q", input)
	return m, nil
}

// messages runs cmd, unpacking batches.
func messages(cmd tea.Cmd) []tea.Msg {
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, messages(c)...)
		}
	}
	return out
}

func TestIntroStartsPlaying(t *testing.T) {
	m := newModel(t)
	require.Equal(t, statePlaying, m.state)
	require.Contains(t, m.gameLog, "Welcome to the Abandoned House!")
	require.Equal(t, "Hall de Entrada", m.status.Location)
	require.Contains(t, m.View(), "Health: 100")
	require.Contains(t, m.View(), "STATUS")
}

func TestTurnUpdatesStatus(t *testing.T) {
	m := newModel(t)

	m, _ = send(t, m, "mover norte")
	require.Equal(t, statePlaying, m.state)
	require.Equal(t, "Corredor", m.status.Location)
	require.Equal(t, 1, m.status.GameTime)
	require.Contains(t, m.gameLog, "> mover norte")

	// empty input does nothing
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, statePlaying, next.(model).state)
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := send(t, m, "sair")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSpinnerOnlyTicksWhileLoading(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(m.spinner.Tick())
	require.Nil(t, cmd)

	m.state = stateLoading
	_, cmd = m.Update(m.spinner.Tick())
	require.NotNil(t, cmd)
}

func TestEndingState(t *testing.T) {
	m := newModel(t)
	m.session.Game().ApplyEffects(models.Effects{models.StatHealth: -100})

	m, _ = send(t, m, "olhar")
	require.Equal(t, stateEnded, m.state)
	require.Equal(t, engine.EndingBad, m.ending)
	require.True(t, strings.Contains(m.View(), "THE END"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.IsType(t, tea.QuitMsg{}, cmd())
}
