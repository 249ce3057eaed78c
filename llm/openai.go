package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sashabaranov/go-openai"

	"cruze/models"
)

// OpenAI streams completions from an OpenAI-compatible endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(model, baseURL string) *OpenAI {
	clientConfig := openai.DefaultConfig(os.Getenv("OPENAI_API_KEY"))
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (o *OpenAI) StreamChat(ctx context.Context, history []models.Message) (<-chan StreamResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemInstruction,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(m.Role),
			Content: m.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   true,
	}

	out := make(chan StreamResponse)
	go func() {
		defer close(out)

		stream, err := o.client.CreateChatCompletionStream(ctx, req)
		if err != nil {
			out <- StreamResponse{Err: fmt.Errorf("create stream: %w", err)}
			return
		}
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				out <- StreamResponse{Done: true}
				return
			}
			if err != nil {
				out <- StreamResponse{Err: fmt.Errorf("stream recv: %w", err)}
				return
			}
			if len(resp.Choices) > 0 {
				if content := resp.Choices[0].Delta.Content; content != "" {
					out <- StreamResponse{Content: content}
				}
			}
		}
	}()
	return out, nil
}

func toOpenAIRole(r models.Role) string {
	switch r {
	case models.RoleUser:
		return openai.ChatMessageRoleUser
	case models.RoleSystem:
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleAssistant
	}
}
