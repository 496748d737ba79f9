// Package session runs one game for a front-end: it feeds player input to
// the engine, handles saving and loading, and renders the results as
// localized lines.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tatianab/casa-abandonada/internal/command"
	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/engine"
	"github.com/tatianab/casa-abandonada/internal/i18n"
	"github.com/tatianab/casa-abandonada/internal/logging"
	"github.com/tatianab/casa-abandonada/internal/models"
	"github.com/tatianab/casa-abandonada/internal/narrator"
)

const narrateTimeout = 15 * time.Second

// ErrAborted is returned by front-ends that stopped after a Fatal response.
var ErrAborted = errors.New("game aborted after an unexpected error")

// Line is one rendered line of output.
type Line struct {
	Kind engine.Kind
	Text string
}

// Response is what the front-end shows after one line of input.
type Response struct {
	Lines  []Line
	Ending engine.Ending
	// Quit asks the front-end to stop reading input.
	Quit bool
	// Fatal is set when an unexpected failure was recovered; Quit is set too.
	Fatal bool
}

// Done reports whether the front-end should stop after this response.
func (r Response) Done() bool {
	return r.Quit || r.Ending != engine.EndingNone
}

// Session owns the running engine. It is not safe for concurrent use.
type Session struct {
	cfg        config.Game
	content    *models.Content
	store      models.SaveStore
	narrator   narrator.Narrator
	catalog    *i18n.Catalog
	logger     *slog.Logger
	engineOpts []engine.Option

	game *engine.Engine
}

// Option customizes a Session.
type Option func(*Session)

// WithStore sets where games are saved. The default is a FileStore in
// models.DefaultSaveDir.
func WithStore(store models.SaveStore) Option {
	return func(s *Session) { s.store = store }
}

// WithNarrator adds generated prose to every look.
func WithNarrator(n narrator.Narrator) Option {
	return func(s *Session) { s.narrator = n }
}

// WithCatalog sets the translations. Without one, messages are English.
func WithCatalog(c *i18n.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// WithLogger sets the logger shared with the engine.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithEngineOptions passes options to every engine the session creates,
// including those restored from a save.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Session) { s.engineOpts = append(s.engineOpts, opts...) }
}

// New starts a fresh game.
func New(cfg config.Game, content *models.Content, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:     cfg,
		content: content,
		store:   models.NewFileStore(""),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engineOpts = append([]engine.Option{engine.WithLogger(s.logger)}, s.engineOpts...)

	game, err := engine.New(cfg, content, s.engineOpts...)
	if err != nil {
		return nil, err
	}
	s.game = game
	return s, nil
}

// Game returns the engine currently in play. It changes after a successful load.
func (s *Session) Game() *engine.Engine { return s.game }

// T translates a front-end string.
func (s *Session) T(key string, args ...any) string { return s.catalog.Get(key, args...) }

// Intro is shown once before the first prompt. Like Handle, it reports an
// unexpected failure as a Fatal response.
func (s *Session) Intro(ctx context.Context) (resp Response) {
	defer s.recoverFatal(ctx, &resp, "")

	resp.add(engine.KindSuccess, s.T("Welcome to the Abandoned House!"))
	resp.add(engine.KindInfo, s.T("Type 'ajuda' to see the commands."))
	s.describe(ctx, &resp)
	return resp
}

// Handle processes one line of player input. It never panics: an unexpected
// failure is logged and reported as a Fatal response.
func (s *Session) Handle(ctx context.Context, input string) (resp Response) {
	defer s.recoverFatal(ctx, &resp, input)

	intent, ok := command.Parse(input)
	if !ok {
		return Response{}
	}
	ctx = logging.WithAttrs(ctx, slog.String("action", string(intent.Action)))

	switch intent.Action {
	case command.ActionQuit:
		s.logger.InfoContext(ctx, "player quit", slog.Int("time", s.game.Status().GameTime))
		resp.Quit = true
		resp.add(engine.KindInfo, s.T("Goodbye. The house will be waiting for you."))
	case command.ActionSave:
		s.save(ctx, &resp, slotName(intent.Target))
	case command.ActionLoad:
		s.load(ctx, &resp, slotName(intent.Target))
	default:
		res := s.game.Execute(intent)
		s.render(&resp, res)
		resp.Ending = res.Ending
		if intent.Action == command.ActionLook && res.Ending == engine.EndingNone {
			s.narrate(ctx, &resp)
		}
	}
	return resp
}

// recoverFatal turns a panic into a Fatal response. It must be deferred.
func (s *Session) recoverFatal(ctx context.Context, resp *Response, input string) {
	r := recover()
	if r == nil {
		return
	}
	s.logger.ErrorContext(ctx, "recovered from panic", slog.Any("panic", r), slog.String("input", input))
	*resp = Response{Quit: true, Fatal: true}
	resp.add(engine.KindDanger, s.T("Something went wrong: %v. The game will close.", r))
}

func slotName(target string) string {
	if target == "" {
		return models.DefaultSlot
	}
	return target
}

func (s *Session) save(ctx context.Context, resp *Response, slot string) {
	if err := s.store.Save(ctx, slot, s.game.Snapshot()); err != nil {
		s.logger.WarnContext(ctx, "save failed", slog.String("slot", slot), slog.Any("error", err))
		resp.add(engine.KindDanger, s.T("Could not save the game: %v", err))
		return
	}
	s.logger.InfoContext(ctx, "game saved", slog.String("slot", slot))
	resp.add(engine.KindSuccess, s.T("Game saved in slot '%s'.", slot))
}

func (s *Session) load(ctx context.Context, resp *Response, slot string) {
	if err := s.Load(ctx, slot); err != nil {
		s.logger.WarnContext(ctx, "load failed", slog.String("slot", slot), slog.Any("error", err))
		switch {
		case errors.Is(err, models.ErrSaveNotFound):
			resp.add(engine.KindWarning, s.T("There is no save in slot '%s'.", slot))
		case errors.Is(err, models.ErrSaveParse), errors.Is(err, models.ErrSaveSchema):
			resp.add(engine.KindDanger, s.T("The save in slot '%s' is damaged and was not loaded.", slot))
		default:
			resp.add(engine.KindDanger, s.T("Could not load the game: %v", err))
		}
		return
	}

	resp.add(engine.KindSuccess, s.T("Game loaded from slot '%s'.", slot))
	resp.Ending = s.game.Ending()
	s.describe(ctx, resp)
}

// Load replaces the running game with the one saved in slot. The saved game
// is swapped in only when it restored cleanly; on any failure the current
// game carries on untouched.
func (s *Session) Load(ctx context.Context, slot string) error {
	game, err := s.restore(ctx, slotName(slot))
	if err != nil {
		return err
	}
	s.game = game
	s.logger.InfoContext(ctx, "game loaded", slog.String("slot", slot))
	return nil
}

func (s *Session) restore(ctx context.Context, slot string) (*engine.Engine, error) {
	rec, err := s.store.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	game, err := engine.Restore(s.cfg, s.content, rec, s.engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", slot, err)
	}
	return game, nil
}

func (s *Session) describe(ctx context.Context, resp *Response) {
	var res engine.Result
	s.game.Describe(&res)
	s.render(resp, res)
	s.narrate(ctx, resp)
}

func (s *Session) narrate(ctx context.Context, resp *Response) {
	if s.narrator == nil {
		return
	}
	room := s.game.CurrentRoom()
	if room == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, narrateTimeout)
	defer cancel()

	status := s.game.Status()
	text, err := s.narrator.Narrate(ctx, narrator.Scene{
		Room:        room.Name,
		Description: room.Description,
		Items:       room.Items,
		Exits:       room.Directions(),
		Fear:        status.Fear,
		Sanity:      status.Sanity,
		IsNight:     status.IsNight,
		Language:    narrator.Language(s.catalog.Locale()),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "narration failed", slog.Any("error", err))
		return
	}
	resp.add(engine.KindNarration, text)
}

func (s *Session) render(resp *Response, res engine.Result) {
	for _, m := range res.Messages {
		resp.add(m.Kind, s.catalog.Message(m))
	}
}

func (r *Response) add(kind engine.Kind, text string) {
	r.Lines = append(r.Lines, Line{Kind: kind, Text: text})
}
