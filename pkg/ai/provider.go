package ai

import (
	"billora-backend/entities"
	"context"
	"fmt"
)

const (
	ProviderHuggingFace = "hugging_face"
	ProviderOpenAI      = "openai"
	ProviderGemini      = "gemini"
)

type (
	// TextGenerator is a single blocking round trip to a text-generation API.
	TextGenerator interface {
		GenerateText(ctx context.Context, req GenerationRequest) (string, error)
		ModelInfo() entities.ModelInfo
	}

	GenerationRequest struct {
		SystemPrompt string
		Prompt       string
		MaxTokens    int
		Temperature  float32
	}
)

// NotConfiguredError is returned when the provider's API key is missing.
type NotConfiguredError struct {
	Key string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s not configured", e.Key)
}

// APIError is a non-2xx answer from a provider.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("AI API error: %d - %s", e.StatusCode, e.Status)
}
