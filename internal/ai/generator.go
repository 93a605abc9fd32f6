package ai

import (
	"context"
	"fmt"

	"github.com/garnizeh/jobboard/pkg/ollama"
)

// Generator produces raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OllamaGenerator sends prompts to a single model on an Ollama instance.
type OllamaGenerator struct {
	client *ollama.Client
	model  string
}

func NewOllamaGenerator(client *ollama.Client, model string) *OllamaGenerator {
	return &OllamaGenerator{client: client, model: model}
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Generate(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return res.Text, nil
}
