package ai

import (
	"billora-backend/entities"
	"context"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

type (
	GeminiConfig struct {
		APIKey string
		Model  string
	}

	// GeminiGenerator opens its client on first use and keeps it until Close.
	GeminiGenerator struct {
		apiKey string
		model  string

		mu     sync.Mutex
		client *genai.Client
	}
)

func NewGeminiGenerator(cfg GeminiConfig) *GeminiGenerator {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &GeminiGenerator{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (g *GeminiGenerator) ModelInfo() entities.ModelInfo {
	return entities.ModelInfo{
		Provider:    ProviderGemini,
		ModelID:     g.model,
		Version:     "1.0",
		APIEndpoint: "https://generativelanguage.googleapis.com/v1beta/models/" + g.model + ":generateContent",
	}
}

func (g *GeminiGenerator) getClient() (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, err
	}
	g.client = client
	return client, nil
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	if g.apiKey == "" {
		return "", &NotConfiguredError{Key: "GEMINI_API_KEY"}
	}

	client, err := g.getClient()
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(g.model)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), nil
}

func (g *GeminiGenerator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}
