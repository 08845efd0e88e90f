package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"LinkBrief/internal/ports"
)

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient implements ports.Completer with the Gen AI SDK. The SDK
// client is keyed by API key, so one is built per call.
type GeminiClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.Completer = (*GeminiClient)(nil)

// NewGeminiClient builds a client; an empty baseURL targets the public API.
func NewGeminiClient(baseURL string, client *http.Client) *GeminiClient {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	return &GeminiClient{baseURL: baseURL, httpClient: defaultHTTPClient(client)}
}

func newGenAIClient(ctx context.Context, baseURL, apiKey string, httpClient *http.Client) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return client, nil
}

func (c *GeminiClient) Complete(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := newGenAIClient(ctx, c.baseURL, apiKey, c.httpClient)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return text, nil
}
