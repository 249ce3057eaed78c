package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"cruze/models"
)

// Gemini streams completions from the Google GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = "gemini-flash-lite-latest"
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) StreamChat(ctx context.Context, history []models.Message) (<-chan StreamResponse, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "model"
		if m.Role == models.RoleUser {
			role = "user"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemInstruction}}},
	}

	out := make(chan StreamResponse)
	go func() {
		defer close(out)
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, cfg) {
			if err != nil {
				out <- StreamResponse{Err: err}
				return
			}
			if text := resp.Text(); text != "" {
				out <- StreamResponse{Content: text}
			}
		}
		out <- StreamResponse{Done: true}
	}()
	return out, nil
}
