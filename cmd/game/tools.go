package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tatianab/casa-abandonada/data"
	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/models"
	"github.com/tatianab/casa-abandonada/internal/storage"
)

var toolsGroup = &cobra.Group{
	ID:    "tools",
	Title: "Tools",
}

var savesCmd = &cobra.Command{
	Use:     "saves",
	GroupID: "tools",
	Short:   "List saved games",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, closeStore, err := openStore(cmd.Context(), a.cfg, a.logger)
		if err != nil {
			return err
		}
		defer closeStore()

		slots, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(slots) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved games.")
			return nil
		}
		for _, slot := range slots {
			fmt.Fprintln(cmd.OutOrStdout(), slot)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:     "validate",
	GroupID: "tools",
	Short:   "Check the game content for broken references",
	Long:    "Loads the content and reports dangling exits, unreachable rooms and unknown quizzes, puzzles and items.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		content, err := loadContent(a.cfg.ContentDir)
		if err != nil {
			return err
		}

		problems := content.Validate(a.cfg.Game.StartRoom)
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "- %v\n", p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problems found", len(problems))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Content OK: %d rooms, %d quizzes, %d puzzles.\n",
			len(content.World.RoomIDs()), len(content.Quizzes.IDs()), len(content.Puzzles.IDs()))
		return nil
	},
}

// loadContent reads the content from dir, or the built-in house when dir is empty.
func loadContent(dir string) (*models.Content, error) {
	var fsys fs.FS = data.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return models.LoadContent(fsys)
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (models.SaveStore, func() error, error) {
	if cfg.SaveBackend == config.BackendSQLite {
		store, err := storage.OpenSQLite(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return models.NewFileStore(cfg.SaveDir), func() error { return nil }, nil
}
