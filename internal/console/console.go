// Package console is the line-oriented front-end, used when stdin is not a
// terminal or when --plain is given.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"

	"github.com/tatianab/casa-abandonada/internal/engine"
	"github.com/tatianab/casa-abandonada/internal/session"
)

var styles = map[engine.Kind]color.Style{
	engine.KindInfo:      {color.FgWhite},
	engine.KindRoom:      {color.FgCyan, color.OpBold},
	engine.KindSuccess:   {color.FgGreen, color.OpBold},
	engine.KindWarning:   {color.FgYellow},
	engine.KindDanger:    {color.FgRed, color.OpBold},
	engine.KindEvent:     {color.FgMagenta},
	engine.KindNarration: {color.FgGray, color.OpItalic},
}

var (
	colorSubtle = color.Style{color.FgGray}
	colorAction = color.Style{color.FgMagenta, color.OpBold}
	colorEnd    = color.Style{color.FgRed, color.OpBold, color.OpReverse}
)

// Console plays a session over a reader and a writer.
type Console struct {
	session *session.Session
	out     io.Writer
	color   bool
	menu    bool
}

// Option customizes a Console.
type Option func(*Console)

// WithColor turns ANSI styling on or off.
func WithColor(on bool) Option {
	return func(c *Console) { c.color = on }
}

// WithMenu shows the numbered list of available actions before each prompt.
func WithMenu(on bool) Option {
	return func(c *Console) { c.menu = on }
}

func New(s *session.Session, out io.Writer, opts ...Option) *Console {
	c := &Console{session: s, out: out, menu: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run reads commands from in until the player quits, the game ends or the
// input runs out. It returns session.ErrAborted when the session had to stop
// after an unexpected failure.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	intro := c.session.Intro(ctx)
	c.print(intro)
	if intro.Fatal {
		return session.ErrAborted
	}

	scanner := bufio.NewScanner(in)
	for {
		actions := c.session.Actions()
		c.prompt(actions)
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}

		resp := c.session.Handle(ctx, c.resolve(scanner.Text(), actions))
		c.print(resp)
		if resp.Fatal {
			return session.ErrAborted
		}
		if resp.Ending != engine.EndingNone {
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, c.style(colorEnd, " "+c.session.T("THE END")+" "))
		}
		if resp.Done() {
			return nil
		}
	}
}

// resolve turns a menu number into its command; anything else is a command.
func (c *Console) resolve(input string, actions []string) string {
	if !c.menu {
		return input
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(actions) {
		return input
	}
	return actions[n-1]
}

func (c *Console) prompt(actions []string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.style(colorSubtle, c.session.StatusLine()))
	if c.menu {
		fmt.Fprintln(c.out, c.session.T("Available actions:"))
		for i, action := range actions {
			fmt.Fprintf(c.out, "  %s %s\n", c.style(colorAction, strconv.Itoa(i+1)+")"), action)
		}
		fmt.Fprintln(c.out, c.style(colorSubtle, c.session.T("Type a command or the number of an action.")))
	}
	fmt.Fprint(c.out, "> ")
}

func (c *Console) print(resp session.Response) {
	for _, line := range resp.Lines {
		fmt.Fprintln(c.out, c.style(styles[line.Kind], line.Text))
	}
}

func (c *Console) style(s color.Style, text string) string {
	if !c.color || len(s) == 0 {
		return text
	}
	return s.Sprint(text)
}
