// Package narrator adds generated flavor text to room descriptions.
package narrator

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

//go:embed prompts/describe_room.txt
var describeRoomPrompt string

var describeRoomTmpl = template.Must(template.New("describe_room").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(describeRoomPrompt))

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("no content returned from Gemini")

// Scene is what the player currently perceives.
type Scene struct {
	Room        string
	Description string
	Items       []string
	Exits       []string
	Fear        int
	Sanity      int
	IsNight     bool
	Language    string
}

// Narrator describes a scene in prose.
type Narrator interface {
	Narrate(ctx context.Context, scene Scene) (string, error)
}

// Gemini narrates with a Gemini model.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SetTemperature(0.9)
	model.SetMaxOutputTokens(256)
	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Narrate(ctx context.Context, scene Scene) (string, error) {
	prompt, err := RenderPrompt(scene)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate narration: %w", err)
	}
	return responseText(resp)
}

// RenderPrompt fills the room description prompt for scene.
func RenderPrompt(scene Scene) (string, error) {
	if scene.Language == "" {
		scene.Language = "Brazilian Portuguese"
	}
	var buf bytes.Buffer
	if err := describeRoomTmpl.Execute(&buf, scene); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Language names the prose language for a locale.
func Language(locale string) string {
	switch {
	case strings.HasPrefix(locale, "pt"):
		return "Brazilian Portuguese"
	case strings.HasPrefix(locale, "en"):
		return "English"
	default:
		return locale
	}
}
