package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

const (
	anthropicAPIURL = "https://api.anthropic.com/v1/messages"

	ModelHaiku  = "claude-3-5-haiku-20241022"
	ModelSonnet = "claude-3-5-sonnet-20241022"

	defaultMaxTokens   = 1024
	defaultTemperature = 0.9 // theme and candidate prompts want lexical variety
	defaultTimeout     = 30 * time.Second

	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// AnthropicClient implements Client against Anthropic's Messages API.
type AnthropicClient struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// AnthropicConfig configures an AnthropicClient.
type AnthropicConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *anthropicError    `json:"error,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewAnthropicClient builds a client, applying the same defaults the
// existing clue-generation provider uses.
func NewAnthropicClient(config AnthropicConfig) (*AnthropicClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("llm: anthropic API key is required")
	}
	if config.Model == "" {
		config.Model = ModelSonnet
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.Temperature == 0 {
		config.Temperature = defaultTemperature
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &AnthropicClient{
		apiKey:      config.APIKey,
		model:       config.Model,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		httpClient:  &http.Client{Timeout: config.Timeout},
	}, nil
}

// Complete sends prompt to Claude, retrying retryable failures with
// exponential backoff.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoffFor(attempt)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		response, err := c.sendRequest(ctx, prompt)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if ctx.Err() != nil || !isRetryableError(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("llm: anthropic failed after %d retries: %w", maxRetries, lastErr)
}

func (c *AnthropicClient) sendRequest(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", anthropicAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RetryableError{Err: fmt.Errorf("llm: request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", handleHTTPError(resp.StatusCode, body)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("llm: unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("llm: api error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("llm: empty response content")
	}

	return apiResp.Content[0].Text, nil
}

func handleHTTPError(statusCode int, body []byte) error {
	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
		baseErr := fmt.Errorf("llm: api error (%d): %s - %s", statusCode, apiResp.Error.Type, apiResp.Error.Message)
		if isRetryableStatus(statusCode) {
			return &RetryableError{Err: baseErr}
		}
		return baseErr
	}

	baseErr := fmt.Errorf("llm: http error %d: %s", statusCode, string(body))
	if isRetryableStatus(statusCode) {
		return &RetryableError{Err: baseErr}
	}
	return baseErr
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout ||
		(statusCode >= 500 && statusCode < 600)
}

func backoffFor(attempt int) time.Duration {
	backoff := time.Duration(float64(initialBackoff) * math.Pow(2, float64(attempt-1)))
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	return backoff
}
