package models

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"
)

// roomSpec is the on-disk shape of a room.
type roomSpec struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Items       []string          `yaml:"items"`
	QuizID      string            `yaml:"quiz_id"`
	PuzzleID    string            `yaml:"puzzle_id"`
	Connections map[string]string `yaml:"connections"`
	Locks       map[string]string `yaml:"locks"`
}

// World holds every room keyed by ID.
type World struct {
	rooms map[string]*Room
}

// NewWorld builds a world from already constructed rooms.
func NewWorld(rooms ...*Room) *World {
	w := &World{rooms: make(map[string]*Room, len(rooms))}
	for _, r := range rooms {
		w.rooms[r.ID] = r
	}
	return w
}

// LoadWorld reads and parses the named world file from fsys.
func LoadWorld(fsys fs.FS, name string) (*World, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	w, err := ParseWorld(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return w, nil
}

// ParseWorld decodes a room-keyed YAML (or JSON) document.
//
// Rooms are created first and wired afterwards, since a connection may
// reference a room defined further down the document.
func ParseWorld(data []byte) (*World, error) {
	var specs map[string]roomSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: world has no rooms", ErrLoad)
	}

	rooms := make([]*Room, 0, len(specs))
	for id, spec := range specs {
		name := spec.Name
		if name == "" {
			name = id
		}
		rooms = append(rooms, &Room{
			ID:          id,
			Name:        name,
			Description: spec.Description,
			Items:       slices.Clone(spec.Items),
			QuizID:      spec.QuizID,
			PuzzleID:    spec.PuzzleID,
			Connections: make(map[string]string, len(spec.Connections)),
			Locks:       make(map[string]string, len(spec.Locks)),
		})
	}

	w := NewWorld(rooms...)
	for id, spec := range specs {
		room := w.rooms[id]
		for dir, target := range spec.Connections {
			room.Connections[dir] = target
		}
		for dir, event := range spec.Locks {
			room.Locks[dir] = event
		}
	}
	return w, nil
}

// Room returns the room with the given ID, or nil.
func (w *World) Room(id string) *Room {
	return w.rooms[id]
}

// RoomIDs returns all room IDs in a stable order.
func (w *World) RoomIDs() []string {
	return slices.Sorted(maps.Keys(w.rooms))
}

// ResolveConnection returns the room reached from roomID going direction.
// Connections to rooms that do not exist are dead ends.
func (w *World) ResolveConnection(roomID, direction string) (string, bool) {
	room := w.rooms[roomID]
	if room == nil {
		return "", false
	}
	target, ok := room.Connections[direction]
	if !ok || w.rooms[target] == nil {
		return "", false
	}
	return target, true
}

// Clone returns a deep copy so that each session owns its room item lists.
func (w *World) Clone() *World {
	c := &World{rooms: make(map[string]*Room, len(w.rooms))}
	for id, r := range w.rooms {
		cp := *r
		cp.Items = slices.Clone(r.Items)
		cp.Connections = maps.Clone(r.Connections)
		cp.Locks = maps.Clone(r.Locks)
		c.rooms[id] = &cp
	}
	return c
}

// Validate reports dangling connections, locks on missing exits, an unknown
// start room and rooms that cannot be reached from it.
func (w *World) Validate(startRoom string) []error {
	var errs []error
	for _, id := range w.RoomIDs() {
		room := w.rooms[id]
		for _, dir := range room.Directions() {
			if target := room.Connections[dir]; w.rooms[target] == nil {
				errs = append(errs, fmt.Errorf("room %q: exit %q leads to unknown room %q", id, dir, target))
			}
		}
		for _, dir := range slices.Sorted(maps.Keys(room.Locks)) {
			if _, ok := room.Connections[dir]; !ok {
				errs = append(errs, fmt.Errorf("room %q: lock on missing exit %q", id, dir))
			}
		}
	}

	start := w.rooms[startRoom]
	if start == nil {
		return append(errs, fmt.Errorf("start room %q does not exist", startRoom))
	}

	reached := w.reachable(start)
	for _, id := range w.RoomIDs() {
		if !reached.Has(id) {
			errs = append(errs, fmt.Errorf("room %q is unreachable from %q", id, startRoom))
		}
	}
	return errs
}

// reachable collects the IDs of every room reachable from start using BFS.
func (w *World) reachable(start *Room) mapset.Set[string] {
	visited := mapset.New[string]()
	queue := []*Room{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited.Has(current.ID) {
			continue
		}
		visited.Put(current.ID)

		for _, dir := range current.Directions() {
			if next := w.rooms[current.Connections[dir]]; next != nil && !visited.Has(next.ID) {
				queue = append(queue, next)
			}
		}
	}
	return visited
}
