package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/logging"
)

// app is what every command shares once the configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

var (
	a app

	flagContent string
	flagSaves   string
	flagLocale  string
)

var rootCmd = &cobra.Command{
	Use:   "casa-abandonada",
	Short: "A text horror adventure in an abandoned house",
	Long: `Casa Abandonada is a text adventure: explore the house, collect items,
answer the voices and solve its riddles before fear and madness take you.

Settings come from the environment (CASA_*, GEMINI_API_KEY) or a .env file;
flags override them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(*cobra.Command, []string) error {
		if a.closeLog != nil {
			return a.closeLog()
		}
		return nil
	},
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "directory with world.yaml and friends (default: built-in house)")
	rootCmd.PersistentFlags().StringVar(&flagSaves, "saves", "", "save directory for the file backend")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "message language, e.g. pt_BR or en")

	addPlayFlags(rootCmd)
	rootCmd.AddGroup(toolsGroup)
	rootCmd.AddCommand(savesCmd, validateCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("content") {
		cfg.ContentDir = flagContent
	}
	if cmd.Flags().Changed("saves") {
		cfg.SaveDir = flagSaves
	}
	if cmd.Flags().Changed("locale") {
		cfg.Locale = flagLocale
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	a = app{cfg: cfg, logger: logger, closeLog: closeLog}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
