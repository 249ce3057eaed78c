// Package llm wraps the inference collaborators behind a single streaming
// interface. A request yields a lazy, finite, non-restartable sequence of
// text increments consumed by the response merger.
package llm

import (
	"context"
	"fmt"

	"cruze/config"
	"cruze/models"
)

// SystemInstruction is the fixed behavior instruction supplied with every
// request. It is per-request configuration, never persisted as a message.
const SystemInstruction = "You are Cruze, a state-of-the-art, hyper-fast AI companion. " +
	"Your goal is to provide instantaneous, clear, and high-impact responses. " +
	"You are direct, intelligent, and efficient. Use professional Markdown formatting."

// StreamResponse is one increment of a streaming completion. Exactly one of
// the terminal states is delivered last: Done or Err.
type StreamResponse struct {
	Content string
	Done    bool
	Err     error
}

// Provider is the inference contract. StreamChat receives the full ordered
// message history (oldest to newest) and returns a channel of increments.
// The channel is closed after the terminal response.
type Provider interface {
	StreamChat(ctx context.Context, history []models.Message) (<-chan StreamResponse, error)
}

// New builds the provider selected by config.
func New(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "google", "":
		return NewGemini(ctx, cfg.ModelName)
	case "openai":
		return NewOpenAI(cfg.ModelName, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
