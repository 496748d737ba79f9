// Package engine owns the state of a game in progress and applies player
// intents to it.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/models"
)

// Status bounds for health, fear and sanity.
const (
	MinStat = 0
	MaxStat = 100
)

var (
	// ErrInvalidMove is returned when the current room has no usable exit in that direction.
	ErrInvalidMove = errors.New("no way in that direction")
	// ErrLocked is returned when an exit exists but its lock has not been opened.
	ErrLocked = errors.New("the way is locked")
	// ErrUnknownStartRoom is returned when the configured start room is not in the world.
	ErrUnknownStartRoom = errors.New("unknown start room")
)

// Rand is the source of randomness for luck and random events.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Ending is the outcome of a finished game.
type Ending string

const (
	EndingNone Ending = ""
	EndingBad  Ending = "bad"
	EndingGood Ending = "good"
)

// Status is the player's condition.
type Status struct {
	Health   int
	Fear     int
	Sanity   int
	Luck     int // rolled once, in [1,100]
	IsNight  bool
	GameTime int
}

// DefaultPlayer is the investigator every new game starts with.
var DefaultPlayer = models.Character{
	Name:        "Investigador",
	Description: "Um destemido explorador paranormal",
	Dialog:      "Preciso descobrir a verdade...",
}

// Engine is the game state machine: Exploring until CheckEnding reports an
// ending, then Ended for good.
type Engine struct {
	cfg     config.Game
	content *models.Content
	world   *models.World

	player      models.Character
	inventory   *models.Inventory
	currentRoom string
	status      Status

	completedEvents []string
	completed       mapset.Set[string]
	endingFlags     map[string]bool
	ending          Ending

	goodEnding []EndingRule
	events     []RandomEvent
	rng        Rand
	logger     *slog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand injects the randomness source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithGoodEnding sets the rules that must all hold for the good ending.
// With no rules the good ending cannot be reached.
func WithGoodEnding(rules ...EndingRule) Option {
	return func(e *Engine) { e.goodEnding = rules }
}

// WithEvents replaces the random event table.
func WithEvents(events ...RandomEvent) Option {
	return func(e *Engine) { e.events = events }
}

func newEngine(cfg config.Game, content *models.Content, opts []Option) (*Engine, error) {
	if content == nil || content.World == nil {
		return nil, fmt.Errorf("%w: no world", models.ErrLoad)
	}
	c := *content
	e := &Engine{
		cfg:         cfg,
		content:     &c,
		world:       content.World.Clone(),
		player:      DefaultPlayer,
		inventory:   models.NewInventory(cfg.InventoryLimit),
		completed:   mapset.New[string](),
		endingFlags: map[string]bool{string(EndingGood): false, string(EndingBad): false},
		events:      DefaultEvents,
		rng:         globalRand{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.content.Quizzes == nil {
		e.content.Quizzes = models.NewQuizRegistry()
	}
	if e.content.Puzzles == nil {
		e.content.Puzzles = models.NewPuzzleRegistry()
	}
	if e.content.Items == nil {
		e.content.Items = models.NewItemCatalog()
	}
	if e.content.Recipes == nil {
		e.content.Recipes = models.NewRecipeBook()
	}
	return e, nil
}

// New starts a fresh game at the configured start room.
func New(cfg config.Game, content *models.Content, opts ...Option) (*Engine, error) {
	e, err := newEngine(cfg, content, opts)
	if err != nil {
		return nil, err
	}
	if e.world.Room(cfg.StartRoom) == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStartRoom, cfg.StartRoom)
	}

	e.currentRoom = cfg.StartRoom
	e.status = Status{
		Health: MaxStat,
		Fear:   MinStat,
		Sanity: MaxStat,
		Luck:   e.rng.IntN(100) + 1,
	}
	e.logger.Debug("new game", slog.String("room", e.currentRoom), slog.Int("luck", e.status.Luck))
	return e, nil
}

// Move takes the exit in direction. It reports false, leaving the state
// untouched, when there is no such exit, the target room does not exist, or
// the exit is still locked.
func (e *Engine) Move(direction string) bool {
	return e.move(direction) == nil
}

func (e *Engine) move(direction string) error {
	room := e.world.Room(e.currentRoom)
	if room == nil {
		return ErrInvalidMove
	}
	target, ok := e.world.ResolveConnection(e.currentRoom, direction)
	if !ok {
		return ErrInvalidMove
	}
	if event, locked := room.Locks[direction]; locked && !e.completed.Has(event) {
		return ErrLocked
	}

	e.logger.Debug("move", slog.String("from", e.currentRoom), slog.String("to", target))
	e.currentRoom = target
	e.AdvanceTime()
	return nil
}

// ApplyEffects adds each delta to its status field and clamps the result to
// [MinStat, MaxStat]. Keys other than health, fear and sanity are ignored.
// Every change to those fields goes through here.
func (e *Engine) ApplyEffects(effects models.Effects) {
	for key, delta := range effects {
		// a stat can move at most MaxStat-MinStat; bounding delta avoids overflow
		delta = max(MinStat-MaxStat, min(MaxStat-MinStat, delta))
		switch key {
		case models.StatHealth:
			e.status.Health = clamp(e.status.Health + delta)
		case models.StatFear:
			e.status.Fear = clamp(e.status.Fear + delta)
		case models.StatSanity:
			e.status.Sanity = clamp(e.status.Sanity + delta)
		}
	}
}

func clamp(v int) int {
	return max(MinStat, min(MaxStat, v))
}

// AdvanceTime moves the clock one tick. Every TimePerCycle ticks day and
// night swap; nightfall raises fear.
func (e *Engine) AdvanceTime() {
	e.status.GameTime++
	if e.cfg.TimePerCycle <= 0 || e.status.GameTime%e.cfg.TimePerCycle != 0 {
		return
	}
	e.status.IsNight = !e.status.IsNight
	if e.status.IsNight {
		e.ApplyEffects(models.Effects{models.StatFear: e.cfg.FearNightIncrease})
	}
	e.logger.Debug("day cycle", slog.Bool("night", e.status.IsNight), slog.Int("time", e.status.GameTime))
}

// TriggerRandomEvent rolls against the player's fear: the more afraid, the
// likelier something happens. When it does, one event from the table is
// applied and its description returned.
func (e *Engine) TriggerRandomEvent() (string, bool) {
	if len(e.events) == 0 {
		return "", false
	}
	roll := e.rng.IntN(100) + 1
	if roll <= MaxStat-e.status.Fear {
		return "", false
	}

	event := e.events[e.rng.IntN(len(e.events))]
	e.ApplyEffects(event.Effect)
	e.logger.Debug("random event", slog.Int("roll", roll), slog.Int("fear", e.status.Fear))
	return event.Description, true
}

// CheckEnding reports whether the game is over. Health is checked before
// sanity. Once an ending is reached it never changes.
func (e *Engine) CheckEnding() Ending {
	if e.ending != EndingNone {
		return e.ending
	}

	switch {
	case e.status.Health <= 0:
		e.ending = EndingBad
	case e.status.Sanity <= 0:
		e.ending = EndingBad
	case e.goodEndingReached():
		e.ending = EndingGood
	default:
		return EndingNone
	}

	e.endingFlags[string(e.ending)] = true
	e.logger.Info("game ended", slog.String("ending", string(e.ending)), slog.Int("time", e.status.GameTime))
	return e.ending
}

func (e *Engine) goodEndingReached() bool {
	if len(e.goodEnding) == 0 {
		return false
	}
	for _, rule := range e.goodEnding {
		if !rule(e) {
			return false
		}
	}
	return true
}

// Ending returns the ending reached so far, if any.
func (e *Engine) Ending() Ending { return e.ending }

// Status returns the player's condition.
func (e *Engine) Status() Status { return e.status }

// Player returns the player's identity.
func (e *Engine) Player() models.Character { return e.player }

// Inventory returns the player's inventory.
func (e *Engine) Inventory() *models.Inventory { return e.inventory }

// World returns this game's copy of the world.
func (e *Engine) World() *models.World { return e.world }

// Config returns the rules this game runs with.
func (e *Engine) Config() config.Game { return e.cfg }

// CurrentRoomID returns the ID of the room the player is in.
func (e *Engine) CurrentRoomID() string { return e.currentRoom }

// CurrentRoom returns the room the player is in.
func (e *Engine) CurrentRoom() *models.Room { return e.world.Room(e.currentRoom) }

// CompletedEvents returns the completed events in the order they happened.
func (e *Engine) CompletedEvents() []string { return slices.Clone(e.completedEvents) }

// HasCompleted reports whether the event is in the completed log.
func (e *Engine) HasCompleted(event string) bool { return e.completed.Has(event) }

// EndingFlags returns a copy of the named ending flags.
func (e *Engine) EndingFlags() map[string]bool { return maps.Clone(e.endingFlags) }

// complete appends event to the log unless it is already there.
func (e *Engine) complete(event string) {
	if event == "" || e.completed.Has(event) {
		return
	}
	e.completed.Put(event)
	e.completedEvents = append(e.completedEvents, event)
	e.logger.Debug("event completed", slog.String("event", event))
}
