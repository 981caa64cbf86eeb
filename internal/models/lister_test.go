package models

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.openAIKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.openAIKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "no API key found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIsChatModel(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"gpt-4o", true},
		{"gpt-4o-mini", true},
		{"o3-mini", true},
		{"gpt-4o-mini-tts", false},
		{"gpt-4o-audio-preview", false},
		{"dall-e-3", false},
		{"text-embedding-3-small", false},
		{"whisper-1", false},
	}

	for _, tt := range tests {
		if got := isChatModel(tt.id); got != tt.want {
			t.Errorf("isChatModel(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestPrintModels(t *testing.T) {
	var buf bytes.Buffer
	printModels(&buf, "Models:", nil)
	if !strings.Contains(buf.String(), "No models found") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	printModels(&buf, "Models:", []string{"gpt-4o"})
	if buf.String() != "Models:\n  gpt-4o\n\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	openAIKey := os.Getenv("OPENAI_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if openAIKey == "" && geminiKey == "" {
		t.Skip("Skipping integration test: no API key set")
	}

	var buf bytes.Buffer
	lister := NewLister(openAIKey, geminiKey)
	if err := lister.ListAvailableModels(context.Background(), &buf); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
	t.Log(buf.String())
}
