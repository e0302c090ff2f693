package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Completion is one model response plus the token usage it consumed.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Provider is the interface for LLM scoring backends.
type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (Completion, error)
	IsConfigured() bool
}

// httpStatusError reports a non-2xx response so the retry loop can
// distinguish rate limits and server errors from permanent failures.
type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("scoring service returned %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// AnthropicProvider calls the Anthropic messages API.
type AnthropicProvider struct {
	Model  string
	APIKey string
	client *http.Client
}

// NewAnthropicProvider creates an Anthropic provider reading its key from
// the given environment variable.
func NewAnthropicProvider(model, apiKeyEnv string) *AnthropicProvider {
	return &AnthropicProvider{
		Model:  model,
		APIKey: os.Getenv(apiKeyEnv),
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (a *AnthropicProvider) IsConfigured() bool {
	return a.APIKey != ""
}

const scoringSystemPrompt = "You are an expert content analyst."

// Generate sends a prompt to Anthropic and returns the response with usage.
func (a *AnthropicProvider) Generate(ctx context.Context, prompt string, maxTokens int) (Completion, error) {
	if a.APIKey == "" {
		return Completion{}, fmt.Errorf("Anthropic API key not configured")
	}

	body := map[string]any{
		"model":       a.Model,
		"max_tokens":  maxTokens,
		"temperature": 0.3,
		"system":      scoringSystemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return Completion{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewReader(data))
	if err != nil {
		return Completion{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.client.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("anthropic API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return Completion{}, &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			RetryAfter: retryAfter,
		}
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Completion{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Content) == 0 {
		return Completion{}, fmt.Errorf("no content in Anthropic response")
	}

	return Completion{
		Text:         result.Content[0].Text,
		InputTokens:  result.Usage.InputTokens,
		OutputTokens: result.Usage.OutputTokens,
	}, nil
}

// OpenAIProvider is an OpenAI API provider.
type OpenAIProvider struct {
	Model  string
	APIKey string
	client *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(model, apiKeyEnv string) *OpenAIProvider {
	return &OpenAIProvider{
		Model:  model,
		APIKey: os.Getenv(apiKeyEnv),
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (o *OpenAIProvider) IsConfigured() bool {
	return o.APIKey != ""
}

// Generate sends a prompt to OpenAI and returns the response with usage.
func (o *OpenAIProvider) Generate(ctx context.Context, prompt string, maxTokens int) (Completion, error) {
	if o.APIKey == "" {
		return Completion{}, fmt.Errorf("OpenAI API key not configured")
	}

	body := map[string]any{
		"model": o.Model,
		"messages": []map[string]string{
			{"role": "system", "content": scoringSystemPrompt},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  maxTokens,
		"temperature": 0.3,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return Completion{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return Completion{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return Completion{}, &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			RetryAfter: retryAfter,
		}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Completion{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Choices) == 0 {
		return Completion{}, fmt.Errorf("no choices in OpenAI response")
	}

	return Completion{
		Text:         result.Choices[0].Message.Content,
		InputTokens:  result.Usage.PromptTokens,
		OutputTokens: result.Usage.CompletionTokens,
	}, nil
}

// CreateProvider creates a scoring provider based on configuration.
func CreateProvider(provider, model, apiKeyEnv string) Provider {
	var p Provider
	switch strings.ToLower(provider) {
	case "anthropic":
		p = NewAnthropicProvider(model, apiKeyEnv)
	case "openai":
		p = NewOpenAIProvider(model, apiKeyEnv)
	default:
		log.Printf("Unknown scoring provider %q", provider)
		return nil
	}

	if !p.IsConfigured() {
		log.Printf("Scoring provider %s not configured. Set %s.", provider, apiKeyEnv)
		return nil
	}
	log.Printf("Using %s with model: %s", provider, model)
	return p
}

// parseRetryAfter parses a Retry-After header given in seconds.
func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	secs, err := time.ParseDuration(value + "s")
	if err != nil {
		return 0, false
	}
	return secs, true
}
