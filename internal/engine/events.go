package engine

import "github.com/tatianab/casa-abandonada/internal/models"

// RandomEvent is something the house does to the player.
type RandomEvent struct {
	Description string
	Effect      models.Effects
}

// DefaultEvents is the fixed table random events are drawn from.
var DefaultEvents = []RandomEvent{
	{
		Description: "A shadow darts across the corner of your eye.",
		Effect:      models.Effects{models.StatFear: 15},
	},
	{
		Description: "Unintelligible whispers echo through the walls.",
		Effect:      models.Effects{models.StatFear: 20, models.StatSanity: -5},
	},
	{
		Description: "Something cold brushes against the back of your neck.",
		Effect:      models.Effects{models.StatFear: 10, models.StatHealth: -5},
	},
}

// EndingRule is one condition of an ending.
type EndingRule func(e *Engine) bool

// RequireEvent holds once event is in the completed log.
func RequireEvent(event string) EndingRule {
	return func(e *Engine) bool { return e.HasCompleted(event) }
}

// RequireItem holds while the player carries the named item.
func RequireItem(name string) EndingRule {
	return func(e *Engine) bool { return e.inventory.Has(name) }
}
