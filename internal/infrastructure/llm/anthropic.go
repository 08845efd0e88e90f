package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"LinkBrief/internal/ports"
)

const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
)

// AnthropicClient implements ports.Completer over the Messages API.
type AnthropicClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.Completer = (*AnthropicClient)(nil)

// NewAnthropicClient builds a client; an empty baseURL targets the public API.
func NewAnthropicClient(baseURL string, client *http.Client) *AnthropicClient {
	if baseURL == "" {
		baseURL = DefaultAnthropicBaseURL
	}
	return &AnthropicClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: defaultHTTPClient(client),
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func anthropicHeaders(apiKey string) map[string]string {
	return map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": anthropicVersion,
	}
}

// Complete sends prompt as a single user turn and returns the first content
// block when it is text.
func (c *AnthropicClient) Complete(ctx context.Context, apiKey, model, prompt string) (string, error) {
	payload := anthropicRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}

	var resp anthropicResponse
	if err := doJSON(ctx, c.httpClient, http.MethodPost, c.baseURL+"/v1/messages", anthropicHeaders(apiKey), payload, &resp); err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Type != "text" || resp.Content[0].Text == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyResponse)
	}
	return resp.Content[0].Text, nil
}
