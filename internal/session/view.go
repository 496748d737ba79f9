package session

import (
	"context"
	"fmt"

	"github.com/tatianab/casa-abandonada/internal/engine"
)

// View is the player's situation as the status panel shows it.
type View struct {
	engine.Status
	Location  string
	Inventory []string
	Limit     int
}

// View returns the current status panel contents.
func (s *Session) View() View {
	v := View{
		Status:    s.game.Status(),
		Inventory: s.game.Inventory().Names(),
		Limit:     s.game.Inventory().Limit(),
	}
	if room := s.game.CurrentRoom(); room != nil {
		v.Location = room.Name
	}
	return v
}

// StatusLine renders the view on a single line, e.g. for a plain terminal.
func (s *Session) StatusLine() string {
	v := s.View()
	period := s.T("Day")
	if v.IsNight {
		period = s.T("Night")
	}
	return fmt.Sprintf("%s: %d | %s: %d | %s: %d | %s: %d | %s: %d (%s) | %s: %s",
		s.T("Health"), v.Health,
		s.T("Fear"), v.Fear,
		s.T("Sanity"), v.Sanity,
		s.T("Luck"), v.Luck,
		s.T("Time"), v.GameTime, period,
		s.T("Location"), v.Location)
}

// Actions lists commands that make sense right now: looking, the inventory,
// each exit, each item in the room, each carried item, and help and quit.
// Pending challenges add their command verb.
func (s *Session) Actions() []string {
	actions := []string{"olhar", "inventario"}
	room := s.game.CurrentRoom()
	if room != nil {
		for _, dir := range room.Directions() {
			actions = append(actions, "mover "+dir)
		}
		for _, item := range room.Items {
			actions = append(actions, "pegar "+item)
		}
	}
	for _, item := range s.game.Inventory().Names() {
		actions = append(actions, "examinar "+item)
	}
	if room != nil {
		if room.QuizID != "" && !s.game.HasCompleted(engine.QuizEvent(room.QuizID)) {
			actions = append(actions, "responder")
		}
		if room.PuzzleID != "" && !s.game.HasCompleted(engine.PuzzleEvent(room.PuzzleID)) {
			actions = append(actions, "resolver")
		}
	}
	return append(actions, "ajuda", "sair")
}

// Saves lists the slots in the session's store.
func (s *Session) Saves(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}
