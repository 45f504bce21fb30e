package ai

import (
	"billora-backend/entities"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultHuggingFaceModelURL = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.2"
	huggingFaceModelID         = "mistralai/Mistral-7B-Instruct-v0.2"
)

type (
	HuggingFaceConfig struct {
		APIKey   string
		ModelURL string
		Timeout  time.Duration
	}

	huggingFaceGenerator struct {
		apiKey     string
		modelURL   string
		httpClient *http.Client
	}
)

func NewHuggingFaceGenerator(cfg HuggingFaceConfig) TextGenerator {
	if cfg.ModelURL == "" {
		cfg.ModelURL = DefaultHuggingFaceModelURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &huggingFaceGenerator{
		apiKey:     cfg.APIKey,
		modelURL:   cfg.ModelURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (g *huggingFaceGenerator) ModelInfo() entities.ModelInfo {
	modelID := huggingFaceModelID
	if i := strings.Index(g.modelURL, "/models/"); i >= 0 {
		modelID = g.modelURL[i+len("/models/"):]
	}

	return entities.ModelInfo{
		Provider:        ProviderHuggingFace,
		ModelID:         modelID,
		Version:         "1.0",
		MetadataJSONURL: "https://huggingface.co/" + modelID,
	}
}

func (g *huggingFaceGenerator) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	if g.apiKey == "" {
		return "", &NotConfiguredError{Key: "HUGGING_FACE_API_KEY"}
	}

	inputs := req.Prompt
	if req.SystemPrompt != "" {
		inputs = req.SystemPrompt + "\n\n" + req.Prompt
	}

	requestBody := map[string]interface{}{
		"inputs": inputs,
		"parameters": map[string]interface{}{
			"max_new_tokens":   req.MaxTokens,
			"temperature":      req.Temperature,
			"return_full_text": false,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.modelURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(bodyBytes),
		}
	}

	var generated []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("decode inference response: %w", err)
	}

	if len(generated) == 0 {
		return "", nil
	}
	return generated[0].GeneratedText, nil
}
