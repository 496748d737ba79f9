package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tatianab/casa-abandonada/internal/command"
	"github.com/tatianab/casa-abandonada/internal/models"
)

// Kind tells a renderer how to present a message.
type Kind int

const (
	KindInfo Kind = iota
	KindRoom
	KindSuccess
	KindWarning
	KindDanger
	KindEvent
	KindNarration
)

// Message is one line of output. Key is an untranslated format string; the
// renderer localizes it and fills in Args.
type Message struct {
	Kind Kind
	Key  string
	Args []any
}

// String formats the message without translation.
func (m Message) String() string {
	if len(m.Args) == 0 {
		return m.Key
	}
	return fmt.Sprintf(m.Key, m.Args...)
}

// Result is what one intent produced.
type Result struct {
	Messages []Message
	Ending   Ending
}

func (r *Result) add(kind Kind, key string, args ...any) {
	r.Messages = append(r.Messages, Message{Kind: kind, Key: key, Args: args})
}

// Has reports whether any message uses key.
func (r Result) Has(key string) bool {
	for _, m := range r.Messages {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Execute applies one intent to the game. Quit, save and load belong to the
// session and are not handled here. After every intent the ending conditions
// are evaluated; once the game has ended every intent is refused.
func (e *Engine) Execute(intent command.Intent) Result {
	var r Result
	if e.ending != EndingNone {
		r.add(KindWarning, "The game is over.")
		r.Ending = e.ending
		return r
	}

	e.logger.Debug("execute", slog.String("action", string(intent.Action)), slog.String("target", intent.Target))

	switch intent.Action {
	case command.ActionMove:
		e.doMove(&r, intent.Target)
	case command.ActionLook:
		e.Describe(&r)
		e.randomEvent(&r)
	case command.ActionExamine:
		e.doExamine(&r, intent.Target)
	case command.ActionTake:
		e.doTake(&r, intent.Target)
	case command.ActionDrop:
		e.doDrop(&r, intent.Target)
	case command.ActionUse:
		e.doUse(&r, intent.Target)
	case command.ActionCombine:
		e.doCombine(&r, intent.Items)
	case command.ActionInventory:
		e.doInventory(&r)
	case command.ActionAnswer:
		e.doAnswer(&r, intent.Target)
	case command.ActionSolve:
		e.doSolve(&r, intent.Target)
	case command.ActionHelp:
		help(&r)
	case command.ActionUnknown:
		r.add(KindWarning, "Command '%s' not recognized. Try 'ajuda'.", intent.Original)
	default:
		r.add(KindWarning, "'%s' cannot be used right now.", string(intent.Action))
	}

	switch r.Ending = e.CheckEnding(); r.Ending {
	case EndingBad:
		r.add(KindDanger, "Your strength gives out. The house has claimed another soul.")
	case EndingGood:
		r.add(KindSuccess, "The front door creaks open to the dawn. You made it out.")
	}
	return r
}

func (e *Engine) doMove(r *Result, direction string) {
	if direction == "" {
		r.add(KindWarning, "Where do you want to go?")
		return
	}

	wasNight := e.status.IsNight
	err := e.move(direction)
	switch {
	case errors.Is(err, ErrLocked):
		r.add(KindWarning, "The way %s is blocked. Something in the house is holding it shut.", direction)
		return
	case err != nil:
		r.add(KindWarning, "You can't go that way!")
		return
	}

	r.add(KindInfo, "You move %s.", direction)
	if e.status.IsNight != wasNight {
		if e.status.IsNight {
			r.add(KindEvent, "Night falls over the house. Your fear grows.")
		} else {
			r.add(KindEvent, "Pale daylight seeps through the windows.")
		}
	}
	e.Describe(r)
	e.randomEvent(r)
}

func (e *Engine) randomEvent(r *Result) {
	if desc, ok := e.TriggerRandomEvent(); ok {
		r.add(KindEvent, "You feel a cold presence nearby...")
		r.add(KindEvent, desc)
	}
}

// Describe adds the current room, its items, exits and any pending
// challenge to r.
func (e *Engine) Describe(r *Result) {
	room := e.CurrentRoom()
	if room == nil {
		r.add(KindDanger, "The current room could not be loaded.")
		return
	}

	r.add(KindRoom, "%s", room.Name)
	r.add(KindRoom, "%s", strings.TrimSpace(room.Description))
	if len(room.Items) > 0 {
		r.add(KindInfo, "You notice: %s.", strings.Join(room.Items, ", "))
	}
	if dirs := room.Directions(); len(dirs) > 0 {
		r.add(KindInfo, "Exits: %s.", strings.Join(dirs, ", "))
	}

	if id := room.PuzzleID; id != "" && !e.completed.Has(PuzzleEvent(id)) {
		if p := e.content.Puzzles.Get(id); p != nil {
			r.add(KindWarning, "You sense a riddle in this room.")
			if p.Prompt != "" {
				r.add(KindWarning, "%s", p.Prompt)
			}
			r.add(KindInfo, "Try 'resolver <answer>'.")
		}
	}
	if id := room.QuizID; id != "" && !e.completed.Has(QuizEvent(id)) {
		if q := e.content.Quizzes.Get(id); q != nil {
			r.add(KindWarning, "A mysterious voice echoes through the room.")
			if q.Prompt != "" {
				r.add(KindWarning, "%s", q.Prompt)
			}
			for i, opt := range q.Options {
				r.add(KindInfo, "%d) %s", i+1, opt)
			}
			r.add(KindInfo, "Try 'responder <number>'.")
		}
	}
}

func (e *Engine) doExamine(r *Result, target string) {
	if target == "" {
		r.add(KindWarning, "What do you want to examine? Name an item or object.")
		return
	}

	var item models.Item
	if carried, ok := e.inventory.Get(target); ok {
		item = carried
	} else if room := e.CurrentRoom(); room != nil && room.HasItem(target) {
		item = e.content.Items.New(target)
	} else {
		r.add(KindWarning, "There is no %s here to examine.", target)
		return
	}

	if item.Description == "" {
		r.add(KindInfo, "You examine the %s. It looks ordinary.", item.Name)
		return
	}
	r.add(KindInfo, "You examine the %s. %s", item.Name, strings.TrimSpace(item.Description))
}

func (e *Engine) doTake(r *Result, target string) {
	if target == "" {
		r.add(KindWarning, "What do you want to take? Name an item.")
		return
	}
	room := e.CurrentRoom()
	if room == nil || !room.HasItem(target) {
		r.add(KindWarning, "There is no %s here to take.", target)
		return
	}
	if e.inventory.Full() {
		r.add(KindWarning, "Your inventory is full. You can't take the %s.", target)
		return
	}

	name, _ := room.TakeItem(target)
	e.inventory.Add(e.content.Items.New(name))
	r.add(KindSuccess, "You take the %s and put it in your inventory.", name)
}

func (e *Engine) doDrop(r *Result, target string) {
	if target == "" {
		r.add(KindWarning, "What do you want to drop? Name an item.")
		return
	}
	room := e.CurrentRoom()
	if room == nil {
		r.add(KindDanger, "The current room could not be loaded.")
		return
	}
	item, ok := e.inventory.Remove(target)
	if !ok {
		r.add(KindWarning, "You don't have %s in your inventory.", target)
		return
	}
	room.PutItem(item.Name)
	r.add(KindInfo, "You drop the %s.", item.Name)
}

func (e *Engine) doUse(r *Result, target string) {
	if target == "" {
		r.add(KindWarning, "What do you want to use? Name an item.")
		return
	}
	item, ok := e.inventory.Get(target)
	if !ok {
		r.add(KindWarning, "You don't have %s in your inventory.", target)
		return
	}

	if len(item.Effects) == 0 {
		if item.UseMessage != "" {
			r.add(KindInfo, "%s", item.UseMessage)
			return
		}
		r.add(KindWarning, "You can't use the %s here.", item.Name)
		return
	}

	e.ApplyEffects(item.Effects)
	e.inventory.Remove(item.Name)
	if item.UseMessage != "" {
		r.add(KindSuccess, "%s", item.UseMessage)
	}
	r.add(KindInfo, "The %s is used up.", item.Name)
}

func (e *Engine) doCombine(r *Result, items []string) {
	if len(items) < 2 {
		r.add(KindWarning, "Combine what? Name two items, e.g. 'combinar vela fosforos'.")
		return
	}
	a, b := items[0], items[1]
	if strings.EqualFold(a, b) {
		r.add(KindWarning, "You can't combine the %s with itself.", a)
		return
	}
	for _, name := range items[:2] {
		if !e.inventory.Has(name) {
			r.add(KindWarning, "You don't have %s in your inventory.", name)
			return
		}
	}

	recipe, ok := e.content.Recipes.Find(a, b)
	if !ok {
		r.add(KindInfo, "Nothing happens when you combine the %s with the %s.", a, b)
		return
	}

	e.inventory.Remove(a)
	e.inventory.Remove(b)
	e.inventory.Add(e.content.Items.New(recipe.Result))
	if recipe.Message != "" {
		r.add(KindSuccess, "%s", recipe.Message)
	}
	r.add(KindSuccess, "You now have: %s.", recipe.Result)
}

func (e *Engine) doInventory(r *Result) {
	if e.inventory.Len() == 0 {
		r.add(KindInfo, "Your inventory is empty.")
		return
	}
	r.add(KindInfo, "Your inventory (%d/%d): %s.", e.inventory.Len(), e.inventory.Limit(), strings.Join(e.inventory.Names(), ", "))
}

func (e *Engine) doAnswer(r *Result, target string) {
	room := e.CurrentRoom()
	if room == nil || room.QuizID == "" || e.content.Quizzes.Get(room.QuizID) == nil {
		r.add(KindWarning, "There is no question to answer here.")
		return
	}
	id := room.QuizID
	if e.completed.Has(QuizEvent(id)) {
		r.add(KindInfo, "The voices have already been answered.")
		return
	}
	n, err := strconv.Atoi(target)
	if err != nil {
		r.add(KindWarning, "Answer with the number of an option, e.g. 'responder 2'.")
		return
	}

	if !e.content.Quizzes.ValidateAnswer(id, n-1) {
		if penalty, ok := e.content.Quizzes.Penalty(id); ok {
			e.ApplyEffects(penalty)
		}
		r.add(KindDanger, "Wrong answer. The room grows colder around you.")
		return
	}

	e.complete(QuizEvent(id))
	r.add(KindSuccess, "The voices fall silent. You answered correctly.")
	if reward, ok := e.content.Quizzes.Reward(id); ok {
		e.grant(r, reward)
	}
}

func (e *Engine) doSolve(r *Result, target string) {
	room := e.CurrentRoom()
	if room == nil || room.PuzzleID == "" || e.content.Puzzles.Get(room.PuzzleID) == nil {
		r.add(KindWarning, "There is no riddle to solve here.")
		return
	}
	id := room.PuzzleID
	if e.completed.Has(PuzzleEvent(id)) {
		r.add(KindInfo, "This riddle has already been solved.")
		return
	}
	if target == "" {
		r.add(KindWarning, "Say your answer, e.g. 'resolver chave'.")
		return
	}

	if !e.content.Puzzles.CheckSolution(id, target) {
		if penalty, ok := e.content.Puzzles.Penalty(id); ok {
			e.ApplyEffects(penalty)
		}
		r.add(KindDanger, "Nothing happens... except the feeling that something noticed your mistake.")
		return
	}

	e.complete(PuzzleEvent(id))
	r.add(KindSuccess, "Something clicks deep inside the walls. The riddle is solved.")
	if reward, ok := e.content.Puzzles.Reward(id); ok {
		e.grant(r, reward)
	}
}

// grant applies a quiz or puzzle reward. An item that does not fit in the
// inventory is left on the floor.
func (e *Engine) grant(r *Result, reward models.Reward) {
	if len(reward.Effect) > 0 {
		e.ApplyEffects(reward.Effect)
		r.add(KindSuccess, "You feel a little steadier.")
	}
	if reward.Item != "" {
		if e.inventory.Add(e.content.Items.New(reward.Item)) {
			r.add(KindSuccess, "You received: %s.", reward.Item)
		} else {
			e.CurrentRoom().PutItem(reward.Item)
			r.add(KindWarning, "Your hands are full. The %s falls to the floor.", reward.Item)
		}
	}
	if reward.Unlocks != "" {
		e.complete(reward.Unlocks)
		r.add(KindEvent, "Somewhere in the house, a passage opens.")
	}
}

func help(r *Result) {
	r.add(KindInfo, "Available commands:")
	for _, line := range helpLines {
		r.add(KindInfo, line)
	}
}

var helpLines = []string{
	"- mover [direction]: go to another room (e.g. 'mover norte')",
	"- olhar: look around the room",
	"- examinar [item]: examine an item (e.g. 'examinar chave')",
	"- pegar [item]: put an item in your inventory",
	"- largar [item]: leave an item in the room",
	"- usar [item]: use an item from your inventory",
	"- combinar [item1] [item2]: combine two items",
	"- responder [number]: answer the question in this room",
	"- resolver [answer]: solve the riddle in this room",
	"- inventario: see what you carry",
	"- salvar [slot] / carregar [slot]: save or load the game",
	"- sair: quit the game",
}

// QuizEvent and PuzzleEvent name the completed events recorded when a quiz
// or puzzle is solved.
func QuizEvent(id string) string   { return "quiz:" + id }
func PuzzleEvent(id string) string { return "puzzle:" + id }
