package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"LinkBrief/internal/ports"
)

const DefaultOpenAIBaseURL = "https://api.openai.com"

// OpenAIClient implements ports.Completer backed by OpenAI-compatible APIs.
type OpenAIClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client; an empty baseURL targets the public API.
func NewOpenAIClient(baseURL string, client *http.Client) *OpenAIClient {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &OpenAIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: defaultHTTPClient(client),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete posts prompt as a user message to the chat completions endpoint.
func (c *OpenAIClient) Complete(ctx context.Context, apiKey, model, prompt string) (string, error) {
	payload := chatRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{"Authorization": "Bearer " + apiKey}

	var resp chatResponse
	if err := doJSON(ctx, c.httpClient, http.MethodPost, c.baseURL+"/v1/chat/completions", headers, payload, &resp); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
