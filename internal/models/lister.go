package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Lister lists the chat models usable as reference providers.
type Lister struct {
	openAIKey string
	geminiKey string
	client    *openai.Client
}

// NewLister creates a new model lister. Either key may be empty.
func NewLister(openAIKey, geminiKey string) *Lister {
	return &Lister{
		openAIKey: openAIKey,
		geminiKey: geminiKey,
		client:    openai.NewClient(openAIKey),
	}
}

// ListAvailableModels writes the chat models of every configured provider to w.
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.openAIKey == "" && l.geminiKey == "" {
		return fmt.Errorf("no API key found. Set OPENAI_API_KEY or GEMINI_API_KEY, or configure reference keys in .bgrhyme.yaml")
	}

	if l.openAIKey != "" {
		chatModels, err := l.openAIModels(ctx)
		if err != nil {
			return err
		}
		printModels(w, "OpenAI Chat Models (--provider openai):", chatModels)
	}

	if l.geminiKey != "" {
		geminiModels, err := l.geminiModels(ctx)
		if err != nil {
			return err
		}
		printModels(w, "Gemini Models (--provider gemini):", geminiModels)
	}
	return nil
}

func (l *Lister) openAIModels(ctx context.Context) ([]string, error) {
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenAI models: %w", err)
	}

	var chatModels []string
	for _, model := range models.Models {
		if isChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)
	return chatModels, nil
}

func (l *Lister) geminiModels(ctx context.Context) ([]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.geminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var names []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list Gemini models: %w", err)
		}
		if strings.Contains(model.Name, "gemini") {
			names = append(names, strings.TrimPrefix(model.Name, "models/"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// isChatModel keeps text chat models and drops audio, image and embedding ones.
func isChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "dall-e", "image", "embedding", "whisper", "realtime", "transcribe"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.Contains(id, "gpt") || strings.Contains(id, "chat") || strings.HasPrefix(id, "o")
}

func printModels(w io.Writer, title string, models []string) {
	fmt.Fprintln(w, title)
	if len(models) == 0 {
		fmt.Fprintln(w, "  No models found")
		return
	}
	for _, model := range models {
		fmt.Fprintf(w, "  %s\n", model)
	}
	fmt.Fprintln(w)
}
