package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Game holds the fixed rules of a session. It is passed by value into the
// engine and never changes afterwards.
type Game struct {
	StartRoom         string
	InventoryLimit    int
	TimePerCycle      int // moves between day/night toggles
	FearNightIncrease int
}

// DefaultGame returns the standard rules.
func DefaultGame() Game {
	return Game{
		StartRoom:         "hall_entrada",
		InventoryLimit:    5,
		TimePerCycle:      10,
		FearNightIncrease: 10,
	}
}

// Save backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Game Game

	ContentDir   string // empty means the embedded content
	SaveDir      string
	SaveBackend  string
	SQLitePath   string
	Locale       string
	LogFile      string // empty means logs are discarded
	LogLevel     string
	GeminiAPIKey string // optional; enables the narrator
}

// LoadConfig loads the configuration from a .env file, if any, and the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration using lookupEnv, which has the signature of os.LookupEnv.
func FromEnv(lookupEnv func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookupEnv(key); ok && v != "" {
			return v
		}
		return fallback
	}

	game := DefaultGame()
	game.StartRoom = get("CASA_START_ROOM", game.StartRoom)

	var errs []error
	for _, f := range []struct {
		key string
		dst *int
	}{
		{"CASA_INVENTORY_LIMIT", &game.InventoryLimit},
		{"CASA_TIME_PER_CYCLE", &game.TimePerCycle},
		{"CASA_NIGHT_FEAR", &game.FearNightIncrease},
	} {
		v, ok := lookupEnv(f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive integer, got %q", f.key, v))
			continue
		}
		*f.dst = n
	}

	cfg := &Config{
		Game:         game,
		ContentDir:   get("CASA_CONTENT_DIR", ""),
		SaveDir:      get("CASA_SAVE_DIR", ".saves"),
		SaveBackend:  get("CASA_SAVE_BACKEND", BackendFile),
		SQLitePath:   get("CASA_SQLITE_PATH", "casa.db"),
		Locale:       get("CASA_LOCALE", "pt_BR"),
		LogFile:      get("CASA_LOG_FILE", ""),
		LogLevel:     get("CASA_LOG_LEVEL", "info"),
		GeminiAPIKey: get("GEMINI_API_KEY", ""),
	}
	if cfg.SaveBackend != BackendFile && cfg.SaveBackend != BackendSQLite {
		errs = append(errs, fmt.Errorf("CASA_SAVE_BACKEND must be %q or %q, got %q", BackendFile, BackendSQLite, cfg.SaveBackend))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}
