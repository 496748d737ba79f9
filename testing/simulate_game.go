package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/casa-abandonada/data"
	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/engine"
	"github.com/tatianab/casa-abandonada/internal/i18n"
	"github.com/tatianab/casa-abandonada/internal/models"
	"github.com/tatianab/casa-abandonada/internal/session"
)

const maxTurns = 40

// walkthrough visits every room of the built-in house and solves its challenges.
var walkthrough = []string{
	"pegar lanterna",
	"mover oeste", "pegar remedio",
	"mover baixo", "usar lanterna", "resolver doze", "pegar chave_enferrujada",
	"mover cima", "mover leste",
	"mover leste", "pegar vela", "mover norte", "responder 3", "mover sul", "mover oeste",
	"mover norte", "pegar fosforos", "combinar vela fosforos", "responder 2",
	"mover norte", "resolver mapa", "mover sul",
	"mover cima", "olhar", "usar vela_acesa", "mover baixo",
	"inventario", "salvar simulacao", "carregar simulacao", "sair",
}

// picker chooses the next command, or reports false to stop.
type picker func(ctx context.Context, s *session.Session) (string, bool)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	content, err := models.LoadContent(data.FS)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	catalog, err := i18n.New(cfg.Locale)
	if err != nil {
		log.Fatalf("Failed to load messages: %v", err)
	}
	saveDir, err := os.MkdirTemp("", "casa-simulation")
	if err != nil {
		log.Fatalf("Failed to create save dir: %v", err)
	}
	defer os.RemoveAll(saveDir)

	s, err := session.New(cfg.Game, content,
		session.WithCatalog(catalog),
		session.WithStore(models.NewFileStore(saveDir)),
		session.WithEngineOptions(engine.WithRand(rand.New(rand.NewPCG(7, 7)))),
	)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	pick := scripted(walkthrough)
	if cfg.GeminiAPIKey != "" && len(os.Args) > 1 && os.Args[1] == "llm" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer client.Close()
		pick = llmPlayer(client.GenerativeModel("gemini-2.5-flash"))
		fmt.Println("--- The Player LLM is playing ---")
	}

	printResponse(s.Intro(ctx))
	for turn := 1; turn <= maxTurns; turn++ {
		action, ok := pick(ctx, s)
		if !ok {
			break
		}
		fmt.Printf("\n--- Turn %d ---\n", turn)
		fmt.Printf("Player Action: %s\n", action)

		resp := s.Handle(ctx, action)
		printResponse(resp)
		fmt.Printf("Status: %s\n", s.StatusLine())

		if resp.Fatal {
			log.Fatalf("Session aborted at turn %d", turn)
		}
		if resp.Done() {
			break
		}
	}

	fmt.Println("\n--- Simulation Finished ---")
	g := s.Game()
	fmt.Printf("Ending: %q\n", g.Ending())
	fmt.Printf("Completed events: %v\n", g.CompletedEvents())
	fmt.Printf("Inventory: %v\n", g.Inventory().Names())
}

func scripted(commands []string) picker {
	next := 0
	return func(context.Context, *session.Session) (string, bool) {
		if next >= len(commands) {
			return "", false
		}
		next++
		return commands[next-1], true
	}
}

var numberRe = regexp.MustCompile(`\d+`)

// llmPlayer lets a model choose from the numbered list of available actions.
func llmPlayer(model *genai.GenerativeModel) picker {
	return func(ctx context.Context, s *session.Session) (string, bool) {
		actions := s.Actions()
		var sb strings.Builder
		sb.WriteString("You are playing a text horror adventure in an abandoned house. ")
		sb.WriteString("Your goal is to explore, survive and solve the house's riddles.\n")
		fmt.Fprintf(&sb, "Status: %s\n\nAvailable actions:\n", s.StatusLine())
		for i, a := range actions {
			fmt.Fprintf(&sb, "%d) %s\n", i+1, a)
		}
		sb.WriteString("\nReply with ONLY the number of the action you choose.")

		resp, err := model.GenerateContent(ctx, genai.Text(sb.String()))
		if err != nil {
			fmt.Printf("Error getting player action: %v\n", err)
			return "", false
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "olhar", true
		}
		reply := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
		n, err := strconv.Atoi(numberRe.FindString(reply))
		if err != nil || n < 1 || n > len(actions) {
			return "olhar", true
		}
		return actions[n-1], true
	}
}

func printResponse(resp session.Response) {
	for _, line := range resp.Lines {
		fmt.Println(line.Text)
	}
}
