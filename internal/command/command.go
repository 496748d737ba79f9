// Package command turns raw player input into intents.
package command

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Action is a canonical player action.
type Action string

const (
	ActionMove      Action = "move"
	ActionLook      Action = "look"
	ActionExamine   Action = "examine"
	ActionTake      Action = "take"
	ActionDrop      Action = "drop"
	ActionUse       Action = "use"
	ActionCombine   Action = "combine"
	ActionInventory Action = "inventory"
	ActionAnswer    Action = "answer"
	ActionSolve     Action = "solve"
	ActionSave      Action = "save"
	ActionLoad      Action = "load"
	ActionQuit      Action = "quit"
	ActionHelp      Action = "help"
	ActionUnknown   Action = "unknown"
)

// Intent is the normalized form of one line of player input.
type Intent struct {
	Action Action
	// Target is the joined remainder for single-target actions; empty if none was given.
	Target string
	// Items holds the pair to combine; nil unless two were given.
	Items []string
	// Original is the trimmed raw input, kept for unknown actions.
	Original string
}

// verbs maps folded player verbs to canonical actions.
var verbs = buildVerbTable(map[Action][]string{
	ActionMove:      {"mover", "ir", "andar", "navegar", "go", "move", "walk"},
	ActionExamine:   {"inspecionar", "examinar", "examine", "inspect"},
	ActionLook:      {"ver", "olhar", "look"},
	ActionTake:      {"pegar", "coletar", "take", "get"},
	ActionDrop:      {"largar", "soltar", "drop"},
	ActionUse:       {"usar", "use"},
	ActionCombine:   {"combinar", "juntar", "combine"},
	ActionInventory: {"inventário", "inv", "inventory", "i"},
	ActionAnswer:    {"responder", "answer"},
	ActionSolve:     {"resolver", "solve"},
	ActionSave:      {"salvar", "save"},
	ActionLoad:      {"carregar", "load"},
	ActionQuit:      {"sair", "terminar", "quit", "exit"},
	ActionHelp:      {"ajuda", "help"},
})

func buildVerbTable(synonyms map[Action][]string) map[string]Action {
	table := make(map[string]Action)
	for action, words := range synonyms {
		for _, w := range words {
			table[fold(w)] = action
		}
	}
	return table
}

// Parse interprets raw player input. It reports false when the input holds
// nothing but whitespace.
func Parse(raw string) (Intent, bool) {
	original := strings.TrimSpace(raw)
	parts := strings.Fields(strings.ToLower(original))
	if len(parts) == 0 {
		return Intent{}, false
	}

	action, ok := verbs[fold(parts[0])]
	if !ok {
		return Intent{Action: ActionUnknown, Original: original}, true
	}

	intent := Intent{Action: action, Original: original}
	switch action {
	case ActionInventory, ActionQuit, ActionHelp:
		// extra words are ignored
	case ActionCombine:
		if len(parts) >= 3 {
			intent.Items = []string{parts[1], parts[2]}
		}
	default:
		if len(parts) > 1 {
			intent.Target = strings.Join(parts[1:], " ")
		}
	}
	return intent, true
}

// fold lower-cases s and strips diacritics so "inventário" matches "inventario".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
