package phonetic

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiFetcher fetches reference transcriptions from the Gemini API.
type GeminiFetcher struct {
	apiKey string
	model  string
}

// NewGeminiFetcher creates a fetcher; an empty model selects
// DefaultGeminiModel.
func NewGeminiFetcher(apiKey, model string) *GeminiFetcher {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiFetcher{apiKey: apiKey, model: model}
}

// Fetch implements Fetcher.
func (f *GeminiFetcher) Fetch(ctx context.Context, word string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("Gemini: %w", ErrNoAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  f.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1),
	}
	resp, err := client.Models.GenerateContent(ctx, f.model, genai.Text(userPrompt(word)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	ipa := Clean(resp.Text())
	if ipa == "" {
		return "", fmt.Errorf("Gemini: %w", ErrEmptyResponse)
	}
	return ipa, nil
}
