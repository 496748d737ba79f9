package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tatianab/casa-abandonada/internal/console"
	"github.com/tatianab/casa-abandonada/internal/engine"
	"github.com/tatianab/casa-abandonada/internal/i18n"
	"github.com/tatianab/casa-abandonada/internal/narrator"
	"github.com/tatianab/casa-abandonada/internal/session"
	"github.com/tatianab/casa-abandonada/internal/tui"
)

var (
	flagPlain   bool
	flagNoColor bool
	flagNoMenu  bool
	flagSeed    uint64
	flagLoad    string
)

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagPlain, "plain", false, "line-by-line console instead of the full-screen interface")
	cmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colors in the console")
	cmd.Flags().BoolVar(&flagNoMenu, "no-menu", false, "hide the numbered action list in the console")
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "seed for luck and random events (default: random)")
	cmd.Flags().StringVar(&flagLoad, "load", "", "resume the game saved in this slot")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, logger := a.cfg, a.logger

	content, err := loadContent(cfg.ContentDir)
	if err != nil {
		return err
	}
	for _, problem := range content.Validate(cfg.Game.StartRoom) {
		logger.Warn("content problem", slog.Any("error", problem))
	}

	catalog, err := i18n.New(cfg.Locale)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []session.Option{
		session.WithStore(store),
		session.WithCatalog(catalog),
		session.WithLogger(logger),
	}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, session.WithEngineOptions(engine.WithRand(rand.New(rand.NewPCG(flagSeed, flagSeed)))))
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := narrator.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("narrator disabled", slog.Any("error", err))
		} else {
			defer gemini.Close()
			opts = append(opts, session.WithNarrator(gemini))
		}
	}

	s, err := session.New(cfg.Game, content, opts...)
	if err != nil {
		return err
	}
	if flagLoad != "" {
		if err := s.Load(ctx, flagLoad); err != nil {
			fmt.Fprintf(os.Stderr, "Could not load %q, starting a new game: %v\n", flagLoad, err)
		}
	}

	return play(ctx, s)
}

func play(ctx context.Context, s *session.Session) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive && !flagPlain {
		return tui.Run(ctx, s)
	}

	c := console.New(s, os.Stdout,
		console.WithColor(term.IsTerminal(int(os.Stdout.Fd())) && !flagNoColor),
		console.WithMenu(!flagNoMenu),
	)
	return c.Run(ctx, os.Stdin)
}
