package models

import (
	"maps"
	"slices"
	"strings"
)

// Status keys understood by an Effects map.
const (
	StatHealth = "health"
	StatFear   = "fear"
	StatSanity = "sanity"
)

// Effects maps a status key to the delta applied to it, e.g. {"fear": 15}.
type Effects map[string]int

// Character represents the player's identity and dialog.
type Character struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Dialog      string `yaml:"dialog"`
	Quirks      string `yaml:"quirks,omitempty"`
}

// Item represents something the player can carry.
type Item struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Effects     Effects `yaml:"effects,omitempty"` // applied (and the item consumed) on use
	UseMessage  string  `yaml:"use_message,omitempty"`
}

// Room represents a navigable location in the world graph.
type Room struct {
	ID          string
	Name        string
	Description string
	Items       []string
	QuizID      string
	PuzzleID    string
	Connections map[string]string // direction -> room ID
	Locks       map[string]string // direction -> event ID required to pass
}

// Directions returns the room's exits in a stable order.
func (r *Room) Directions() []string {
	return slices.Sorted(maps.Keys(r.Connections))
}

// HasItem reports whether an item with the given name lies in the room.
func (r *Room) HasItem(name string) bool {
	return indexFold(r.Items, name) >= 0
}

// TakeItem removes the named item from the room and returns its stored name.
func (r *Room) TakeItem(name string) (string, bool) {
	i := indexFold(r.Items, name)
	if i < 0 {
		return "", false
	}
	stored := r.Items[i]
	r.Items = append(r.Items[:i:i], r.Items[i+1:]...)
	return stored, true
}

// PutItem leaves an item in the room.
func (r *Room) PutItem(name string) {
	r.Items = append(r.Items, name)
}

// Reward describes what a solved quiz or puzzle grants.
type Reward struct {
	Item    string
	Effect  Effects
	Unlocks string
}

// Recipe combines two items into a new one.
type Recipe struct {
	Items   [2]string
	Result  string
	Message string
}

func indexFold(names []string, name string) int {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}
