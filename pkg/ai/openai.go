package ai

import (
	"billora-backend/entities"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel   = openai.GPT3Dot5Turbo
	openAIDefaultBaseURL = "https://api.openai.com/v1"
)

type (
	OpenAIConfig struct {
		APIKey  string
		Model   string
		BaseURL string
		Timeout time.Duration
	}

	openAIGenerator struct {
		client  *openai.Client
		apiKey  string
		model   string
		baseURL string
	}
)

func NewOpenAIGenerator(cfg OpenAIConfig) TextGenerator {
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = openAIDefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &openAIGenerator{
		client:  openai.NewClientWithConfig(clientConfig),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: clientConfig.BaseURL,
	}
}

func (g *openAIGenerator) ModelInfo() entities.ModelInfo {
	return entities.ModelInfo{
		Provider:    ProviderOpenAI,
		ModelID:     g.model,
		Version:     "1.0",
		APIEndpoint: g.baseURL + "/chat/completions",
	}
}

func (g *openAIGenerator) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	if g.apiKey == "" {
		return "", &NotConfiguredError{Key: "OPENAI_API_KEY"}
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{
				StatusCode: apiErr.HTTPStatusCode,
				Status:     http.StatusText(apiErr.HTTPStatusCode),
				Body:       apiErr.Message,
			}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &APIError{
				StatusCode: reqErr.HTTPStatusCode,
				Status:     http.StatusText(reqErr.HTTPStatusCode),
				Body:       reqErr.Error(),
			}
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
