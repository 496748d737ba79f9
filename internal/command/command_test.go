package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Intent
	}{
		{
			name:  "move with target",
			input: "mover norte",
			want:  Intent{Action: ActionMove, Target: "norte", Original: "mover norte"},
		},
		{
			name:  "synonym and extra whitespace",
			input: "  Andar   NORTE  ",
			want:  Intent{Action: ActionMove, Target: "norte", Original: "Andar   NORTE"},
		},
		{
			name:  "multi word target",
			input: "examinar caixa de musica",
			want:  Intent{Action: ActionExamine, Target: "caixa de musica", Original: "examinar caixa de musica"},
		},
		{
			name:  "single target action without target",
			input: "pegar",
			want:  Intent{Action: ActionTake, Original: "pegar"},
		},
		{
			name:  "no argument action ignores the rest",
			input: "ajuda agora por favor",
			want:  Intent{Action: ActionHelp, Original: "ajuda agora por favor"},
		},
		{
			name:  "accent insensitive verb",
			input: "Inventário",
			want:  Intent{Action: ActionInventory, Original: "Inventário"},
		},
		{
			name:  "combine takes the first two items",
			input: "combinar vela fosforos faca",
			want:  Intent{Action: ActionCombine, Items: []string{"vela", "fosforos"}, Original: "combinar vela fosforos faca"},
		},
		{
			name:  "combine with one item has no items",
			input: "juntar vela",
			want:  Intent{Action: ActionCombine, Original: "juntar vela"},
		},
		{
			name:  "unknown verb keeps the original text",
			input: "Dançar na chuva",
			want:  Intent{Action: ActionUnknown, Original: "Dançar na chuva"},
		},
		{
			name:  "answer",
			input: "responder 2",
			want:  Intent{Action: ActionAnswer, Target: "2", Original: "responder 2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, ok := Parse(input)
		require.False(t, ok, "input %q", input)
	}
}

func TestParseIsPure(t *testing.T) {
	first, _ := Parse("usar lanterna")
	for range 3 {
		again, _ := Parse("usar lanterna")
		require.Equal(t, first, again)
	}
}
