// Command supportcrew runs a two-agent customer-support crew: a support
// representative drafts an answer to the inquiry (consulting the configured
// documentation page), a QA specialist reviews it, and the final response is
// written to a Markdown file under the outputs directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"supportcrew/pkg/agent"
	"supportcrew/pkg/config"
	"supportcrew/pkg/crew"
	"supportcrew/pkg/memory"
	"supportcrew/pkg/models"
	"supportcrew/pkg/output"
	"supportcrew/pkg/support"
	"supportcrew/pkg/tools"
)

func main() {
	defaults := support.DefaultInputs()

	customer := flag.String("customer", defaults["customer"], "Customer organization name")
	person := flag.String("person", defaults["person"], "Person reaching out")
	inquiry := flag.String("inquiry", defaults["inquiry"], "The customer's inquiry")
	docsURL := flag.String("url", support.DocsURL, "Documentation page the support agent may scrape")
	outputsDir := flag.String("outputs-dir", output.DefaultDir, "Directory for the result Markdown file")
	verbose := flag.Bool("verbose", true, "Log agent activity")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	model, err := buildModel(ctx, cfg)
	if err != nil {
		log.Fatalf("build model: %v", err)
	}

	mem, err := buildMemory(ctx, cfg)
	if err != nil {
		log.Fatalf("build memory: %v", err)
	}

	supportAgent := support.NewSupportAgent(*verbose)
	qaAgent := support.NewQualityAssuranceAgent(*verbose)
	scrapeTool := tools.NewScrapeWebsiteTool(*docsURL)

	c, err := crew.New(crew.Options{
		Agents: []agent.Agent{supportAgent, qaAgent},
		Tasks: []crew.Task{
			support.NewInquiryResolutionTask(supportAgent, []tools.Tool{scrapeTool}),
			support.NewQualityAssuranceReviewTask(qaAgent),
		},
		Model:   model,
		Memory:  mem,
		Verbose: *verbose,
	})
	if err != nil {
		log.Fatalf("assemble crew: %v", err)
	}

	result, err := c.Kickoff(ctx, crew.Inputs{
		"customer": *customer,
		"person":   *person,
		"inquiry":  *inquiry,
	})
	if err != nil {
		log.Fatalf("crew run failed: %v", err)
	}

	path, err := output.Save(result.Raw, *outputsDir)
	if err != nil {
		log.Fatalf("save output: %v", err)
	}
	fmt.Printf("Saved response to %s\n", path)
}

func buildModel(ctx context.Context, cfg *config.Config) (models.Agent, error) {
	switch cfg.Provider {
	case "openai":
		key, err := cfg.OpenAIKey()
		if err != nil {
			return nil, err
		}
		return models.NewOpenAILLM(key, cfg.OpenAIModelName, "")
	case "anthropic":
		return models.NewAnthropicLLM(cfg.AnthropicAPIKey, "claude-3-5-sonnet-latest", "")
	case "gemini":
		return models.NewGeminiLLM(ctx, cfg.GoogleAPIKey, "gemini-2.5-pro", "")
	case "ollama":
		return models.NewOllamaLLM(cfg.OllamaHost, "llama3", "")
	case "dummy":
		return models.NewDummyLLM(""), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func buildMemory(ctx context.Context, cfg *config.Config) (*memory.SessionMemory, error) {
	switch {
	case cfg.MemoryURL == "":
		return memory.NewSessionMemory(memory.NewInMemoryStore(), 32), nil
	case strings.HasPrefix(cfg.MemoryURL, "postgres://"), strings.HasPrefix(cfg.MemoryURL, "postgresql://"):
		store, err := memory.NewPostgresStore(ctx, cfg.MemoryURL)
		if err != nil {
			return nil, err
		}
		if err := store.CreateSchema(ctx); err != nil {
			return nil, err
		}
		return memory.NewSessionMemory(store, 32), nil
	case strings.HasPrefix(cfg.MemoryURL, "mongodb://"), strings.HasPrefix(cfg.MemoryURL, "mongodb+srv://"):
		store, err := memory.NewMongoStore(ctx, cfg.MemoryURL, "", "")
		if err != nil {
			return nil, err
		}
		return memory.NewSessionMemory(store, 32), nil
	default:
		return nil, fmt.Errorf("unsupported memory URL %q", cfg.MemoryURL)
	}
}
