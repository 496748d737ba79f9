package narrator

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
)

func TestRenderPrompt(t *testing.T) {
	prompt, err := RenderPrompt(Scene{
		Room:        "Porão",
		Description: "Degraus de pedra descem para a escuridão.",
		Items:       []string{"chave_enferrujada", "corda"},
		Exits:       []string{"cima"},
		Fear:        80,
		Sanity:      90,
		IsNight:     true,
	})
	require.NoError(t, err)
	require.Contains(t, prompt, "Brazilian Portuguese")
	require.Contains(t, prompt, "Room: Porão")
	require.Contains(t, prompt, "Visible items: chave_enferrujada, corda")
	require.Contains(t, prompt, "Time of day: night")
	require.Contains(t, prompt, "terrified")
	require.NotContains(t, prompt, "slipping")
}

func TestRenderPromptOmitsEmptyLists(t *testing.T) {
	prompt, err := RenderPrompt(Scene{Room: "Sótão", Language: "English", Sanity: 10})
	require.NoError(t, err)
	require.NotContains(t, prompt, "Visible items")
	require.NotContains(t, prompt, "Exits:")
	require.Contains(t, prompt, "in English")
	require.Contains(t, prompt, "Time of day: day")
	require.True(t, strings.Contains(prompt, "slipping"))
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("  O ar "), genai.Text("pesa.\n")}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	require.Equal(t, "O ar pesa.", text)

	_, err = responseText(&genai.GenerateContentResponse{})
	require.ErrorIs(t, err, ErrEmptyResponse)
	_, err = responseText(nil)
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestLanguage(t *testing.T) {
	require.Equal(t, "Brazilian Portuguese", Language("pt_BR"))
	require.Equal(t, "English", Language("en"))
	require.Equal(t, "de", Language("de"))
}
