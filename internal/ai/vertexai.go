package ai

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

// VertexGenerator asks a Gemini model on Vertex AI for JSON output.
type VertexGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewVertexGenerator uses application default credentials for project.
func NewVertexGenerator(ctx context.Context, project, location, model string) (*VertexGenerator, error) {
	client, err := genai.NewClient(ctx, project, location)
	if err != nil {
		return nil, fmt.Errorf("create vertex ai client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(1024)
	m.ResponseMIMEType = "application/json"

	return &VertexGenerator{client: client, model: m}, nil
}

func (v *VertexGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("vertex ai generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

func (v *VertexGenerator) Close() error {
	return v.client.Close()
}
