package phonetic

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIFetcher fetches reference transcriptions from OpenAI chat models.
type OpenAIFetcher struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIFetcher creates a fetcher; an empty model selects GPT-4o.
func NewOpenAIFetcher(apiKey, model string) *OpenAIFetcher {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIFetcher{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

// Fetch implements Fetcher.
func (f *OpenAIFetcher) Fetch(ctx context.Context, word string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("OpenAI: %w", ErrNoAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(word)},
		},
		Temperature: 0.1,
		MaxTokens:   60,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI: %w", ErrEmptyResponse)
	}

	ipa := Clean(resp.Choices[0].Message.Content)
	if ipa == "" {
		return "", fmt.Errorf("OpenAI: %w", ErrEmptyResponse)
	}
	return ipa, nil
}
