package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/models"
)

// Snapshot captures everything needed to resume this game.
func (e *Engine) Snapshot() *models.SaveRecord {
	roomItems := make(map[string][]string)
	for _, id := range e.world.RoomIDs() {
		roomItems[id] = slices.Clone(e.world.Room(id).Items)
		if roomItems[id] == nil {
			roomItems[id] = []string{}
		}
	}

	inventory := e.inventory.Items()
	for i := range inventory {
		inventory[i].Effects = maps.Clone(inventory[i].Effects)
	}

	events := slices.Clone(e.completedEvents)
	if events == nil {
		events = []string{}
	}

	return &models.SaveRecord{
		Player:          e.player,
		Inventory:       inventory,
		CurrentRoom:     e.currentRoom,
		Health:          e.status.Health,
		Fear:            e.status.Fear,
		Sanity:          e.status.Sanity,
		Luck:            e.status.Luck,
		IsNight:         e.status.IsNight,
		GameTime:        e.status.GameTime,
		CompletedEvents: events,
		EndingFlags:     maps.Clone(e.endingFlags),
		RoomItems:       roomItems,
	}
}

// Restore rebuilds a game from a save record. The record is checked against
// the content and the rules; on any problem nothing is returned.
func Restore(cfg config.Game, content *models.Content, rec *models.SaveRecord, opts ...Option) (*Engine, error) {
	e, err := newEngine(cfg, content, opts)
	if err != nil {
		return nil, err
	}
	if err := checkRecord(e, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrSaveSchema, err)
	}

	e.player = rec.Player
	for _, item := range rec.Inventory {
		e.inventory.Add(item)
	}
	e.currentRoom = rec.CurrentRoom
	e.status = Status{
		Health:   rec.Health,
		Fear:     rec.Fear,
		Sanity:   rec.Sanity,
		Luck:     rec.Luck,
		IsNight:  rec.IsNight,
		GameTime: rec.GameTime,
	}
	for _, event := range rec.CompletedEvents {
		e.complete(event)
	}
	for name, set := range rec.EndingFlags {
		e.endingFlags[name] = set
	}
	switch {
	case e.endingFlags[string(EndingBad)]:
		e.ending = EndingBad
	case e.endingFlags[string(EndingGood)]:
		e.ending = EndingGood
	}

	for id, items := range rec.RoomItems {
		room := e.world.Room(id)
		if room == nil {
			e.logger.Warn("save mentions unknown room", slog.String("room", id))
			continue
		}
		room.Items = slices.Clone(items)
	}

	e.logger.Debug("game restored", slog.String("room", e.currentRoom), slog.Int("time", e.status.GameTime))
	return e, nil
}

func checkRecord(e *Engine, rec *models.SaveRecord) error {
	if rec == nil {
		return errors.New("no record")
	}
	if e.world.Room(rec.CurrentRoom) == nil {
		return fmt.Errorf("unknown room %q", rec.CurrentRoom)
	}
	for name, v := range map[string]int{
		models.StatHealth: rec.Health,
		models.StatFear:   rec.Fear,
		models.StatSanity: rec.Sanity,
	} {
		if v < MinStat || v > MaxStat {
			return fmt.Errorf("%s %d out of range", name, v)
		}
	}
	if rec.Luck < 1 || rec.Luck > 100 {
		return fmt.Errorf("luck %d out of range", rec.Luck)
	}
	if rec.GameTime < 0 {
		return fmt.Errorf("negative game time %d", rec.GameTime)
	}
	if len(rec.Inventory) > e.inventory.Limit() {
		return fmt.Errorf("%d items exceed the inventory limit of %d", len(rec.Inventory), e.inventory.Limit())
	}
	return nil
}
