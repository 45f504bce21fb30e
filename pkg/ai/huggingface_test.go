package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFaceGenerator_GenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Inputs     string `json:"inputs"`
			Parameters struct {
				MaxNewTokens   int     `json:"max_new_tokens"`
				Temperature    float64 `json:"temperature"`
				ReturnFullText bool    `json:"return_full_text"`
			} `json:"parameters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Analyze this invoice", body.Inputs)
		assert.Equal(t, 500, body.Parameters.MaxNewTokens)
		assert.InDelta(t, 0.7, body.Parameters.Temperature, 0.001)
		assert.False(t, body.Parameters.ReturnFullText)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text":"{\"summary\":\"ok\"}"}]`))
	}))
	defer server.Close()

	generator := NewHuggingFaceGenerator(HuggingFaceConfig{APIKey: "hf-key", ModelURL: server.URL + "/models/acme/tiny"})
	text, err := generator.GenerateText(context.Background(), GenerationRequest{
		Prompt:      "Analyze this invoice",
		MaxTokens:   500,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, text)
	assert.Equal(t, "acme/tiny", generator.ModelInfo().ModelID)
	assert.Equal(t, ProviderHuggingFace, generator.ModelInfo().Provider)
	assert.Equal(t, "hugging_face", ProviderHuggingFace)
}

func TestHuggingFaceGenerator_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		generator := NewHuggingFaceGenerator(HuggingFaceConfig{})
		_, err := generator.GenerateText(context.Background(), GenerationRequest{Prompt: "x"})
		assert.EqualError(t, err, "HUGGING_FACE_API_KEY not configured")
	})

	t.Run("non-2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model is loading"}`))
		}))
		defer server.Close()

		generator := NewHuggingFaceGenerator(HuggingFaceConfig{APIKey: "k", ModelURL: server.URL})
		_, err := generator.GenerateText(context.Background(), GenerationRequest{Prompt: "x"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
		assert.EqualError(t, err, "AI API error: 503 - Service Unavailable")
	})

	t.Run("empty list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		generator := NewHuggingFaceGenerator(HuggingFaceConfig{APIKey: "k", ModelURL: server.URL})
		text, err := generator.GenerateText(context.Background(), GenerationRequest{Prompt: "x"})
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("context deadline", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		generator := NewHuggingFaceGenerator(HuggingFaceConfig{APIKey: "k", ModelURL: server.URL})
		_, err := generator.GenerateText(ctx, GenerationRequest{Prompt: "x"})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
