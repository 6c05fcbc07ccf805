package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// APIKeyEnv names the environment variable holding the OpenAI key.
const APIKeyEnv = "OPENAI_API_KEY"

// DefaultBaseURL is the OpenAI API root used when none is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// ErrMissingAPIKey is returned when OPENAI_API_KEY is not set.
var ErrMissingAPIKey = errors.New(APIKeyEnv + " is not set")

// OpenAIConfig configures OpenAIGenerator.
type OpenAIConfig struct {
	Model       string        `koanf:"model" yaml:"model" validate:"required"`
	BaseURL     string        `koanf:"base_url" yaml:"base_url" validate:"omitempty,url"`
	Temperature float64       `koanf:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int           `koanf:"max_tokens" yaml:"max_tokens" validate:"gt=0"`
	Timeout     time.Duration `koanf:"timeout" yaml:"timeout" validate:"gte=0"`
}

// DefaultOpenAIConfig returns the settings the tool ships with.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:       "gpt-4o",
		BaseURL:     DefaultBaseURL,
		Temperature: 0.1,
		MaxTokens:   4096,
		Timeout:     2 * time.Minute,
	}
}

// OpenAIGenerator calls the chat completions endpoint.
type OpenAIGenerator struct {
	apiKey     string
	cfg        OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIGenerator creates a generator with an explicit key.
func NewOpenAIGenerator(apiKey string, cfg OpenAIConfig) *OpenAIGenerator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &OpenAIGenerator{
		apiKey:     apiKey,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// NewOpenAIGeneratorFromEnv reads the key from OPENAI_API_KEY.
func NewOpenAIGeneratorFromEnv(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	return NewOpenAIGenerator(key, cfg), nil
}

// Name returns "openai".
func (g *OpenAIGenerator) Name() string {
	return KindOpenAI
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends both prompts and returns the first choice's content.
func (g *OpenAIGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal openai payload: %w", err)
	}

	url := strings.TrimRight(g.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read openai response: %w", err)
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode >= http.StatusBadRequest {
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("openai responded with status %s: %s", resp.Status, parsed.Error.Message)
		}
		return "", fmt.Errorf("openai responded with status %s", resp.Status)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode openai response: %w", decodeErr)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
