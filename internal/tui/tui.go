package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/casa-abandonada/internal/engine"
	"github.com/tatianab/casa-abandonada/internal/session"
)

type sessionState int

const (
	stateLoading sessionState = iota
	statePlaying
	stateEnded
	stateError
)

type model struct {
	state     sessionState
	ctx       context.Context
	session   *session.Session
	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	status    session.View
	ending    engine.Ending
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F1F1F")).
			Bold(true).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B22222")).
			Bold(true).
			Underline(true)

	endStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#8B0000")).
			Bold(true).
			Padding(0, 2)

	kindStyles = map[engine.Kind]lipgloss.Style{
		engine.KindInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD")),
		engine.KindRoom:      lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		engine.KindSuccess:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAF5F")).Bold(true),
		engine.KindWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AF00")),
		engine.KindDanger:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true),
		engine.KindEvent:     lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87D7")),
		engine.KindNarration: lipgloss.NewStyle().Foreground(lipgloss.Color("#A8A8A8")).Italic(true),
	}
)

func NewModel(ctx context.Context, s *session.Session) model {
	ti := textinput.New()
	ti.Placeholder = "olhar, mover norte, ajuda..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		state:     stateLoading,
		ctx:       ctx,
		session:   s,
		textInput: ti,
		viewport:  viewport.New(60, 20),
		spinner:   sp,
		status:    s.View(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.intro())
}

// turnProcessedMsg carries a response and the status it left behind. The
// status is captured in the command so View never reads the session while a
// turn is running.
type turnProcessedMsg struct {
	resp   session.Response
	status session.View
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateEnded || m.state == stateError {
				return m, tea.Quit
			}
			if m.state != statePlaying {
				return m, nil
			}
			action := strings.TrimSpace(m.textInput.Value())
			if action == "" {
				return m, nil
			}
			m.textInput.Reset()

			m.gameLog += "\n" + userStyle.Width(m.logWidth()).Render("> "+action) + "\n\n"
			m.refresh()
			m.state = stateLoading
			return m, tea.Batch(m.processTurn(action), m.spinner.Tick)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(msg.Height-6, 1)
		m.refresh()

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case turnProcessedMsg:
		m.status = msg.status
		for _, line := range msg.resp.Lines {
			m.gameLog += kindStyles[line.Kind].Width(m.logWidth()).Render(line.Text) + "\n"
		}
		m.refresh()

		switch {
		case msg.resp.Fatal:
			m.err = session.ErrAborted
			m.state = stateError
		case msg.resp.Quit:
			return m, tea.Quit
		case msg.resp.Ending != engine.EndingNone:
			m.ending = msg.resp.Ending
			m.state = stateEnded
		default:
			m.state = statePlaying
		}
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateLoading, statePlaying, stateEnded:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		var footer string
		switch m.state {
		case statePlaying:
			footer = m.textInput.View() + "\n\n" + helpStyle.Render(m.session.T("Type 'ajuda' to see the commands."))
		case stateEnded:
			footer = endStyle.Render(m.session.T("THE END")) + "\n\n" + helpStyle.Render(m.session.T("Press Enter to leave."))
		default:
			footer = m.spinner.View()
		}

		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+footer)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	t := m.session.T
	st := m.status

	location := titleStyle.Render(strings.ToUpper(t("Location"))) + "\n" + st.Location + "\n\n"

	period := t("Day")
	if st.IsNight {
		period = t("Night")
	}
	stats := titleStyle.Render(strings.ToUpper(t("Status"))) + "\n" +
		fmt.Sprintf("%s: %d\n%s: %d\n%s: %d\n%s: %d\n%s: %d (%s)\n\n",
			t("Health"), st.Health,
			t("Fear"), st.Fear,
			t("Sanity"), st.Sanity,
			t("Luck"), st.Luck,
			t("Time"), st.GameTime, period)

	inventory := titleStyle.Render(strings.ToUpper(t("Inventory"))) +
		fmt.Sprintf(" %d/%d\n", len(st.Inventory), st.Limit)
	if len(st.Inventory) == 0 {
		inventory += "(" + t("empty") + ")"
	}
	for _, item := range st.Inventory {
		inventory += "- " + item + "\n"
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(location + stats + inventory)
}

func (m model) logWidth() int {
	if m.width == 0 {
		return m.viewport.Width
	}
	return int(float64(m.width) * 0.75)
}

func (m *model) refresh() {
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) intro() tea.Cmd {
	return func() tea.Msg {
		resp := m.session.Intro(m.ctx)
		return turnProcessedMsg{resp: resp, status: m.session.View()}
	}
}

func (m model) processTurn(action string) tea.Cmd {
	return func() tea.Msg {
		resp := m.session.Handle(m.ctx, action)
		return turnProcessedMsg{resp: resp, status: m.session.View()}
	}
}

// Run plays the session full screen until the player quits or the game ends.
func Run(ctx context.Context, s *session.Session) error {
	p := tea.NewProgram(NewModel(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}
