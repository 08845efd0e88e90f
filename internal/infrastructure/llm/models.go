package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"LinkBrief/internal/domain"
)

// fallbackModels is the static list offered when live listing is unavailable.
// It is only read through FallbackModelsFor.
var fallbackModels = map[domain.Provider][]domain.ModelInfo{
	domain.ProviderAnthropic: {
		{ID: "claude-sonnet-4-5-20250929", Name: "Claude Sonnet 4.5"},
		{ID: "claude-haiku-4-5-20251001", Name: "Claude Haiku 4.5"},
		{ID: "claude-opus-4-5-20251101", Name: "Claude Opus 4.5"},
	},
	domain.ProviderOpenAI: {
		{ID: "gpt-4.1-mini", Name: "GPT-4.1 Mini"},
		{ID: "gpt-4.1-nano", Name: "GPT-4.1 Nano"},
		{ID: "gpt-4.1", Name: "GPT-4.1"},
		{ID: "gpt-4o-mini", Name: "GPT-4o Mini"},
		{ID: "gpt-4o", Name: "GPT-4o"},
	},
	domain.ProviderGemini: {
		{ID: "gemini-3-flash-preview", Name: "Gemini 3 Flash"},
		{ID: "gemini-3-pro-preview", Name: "Gemini 3 Pro"},
		{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash"},
		{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro"},
	},
}

// FallbackModelsFor returns a copy of the static list for provider.
func FallbackModelsFor(provider domain.Provider) []domain.ModelInfo {
	models := fallbackModels[provider]
	out := make([]domain.ModelInfo, len(models))
	copy(out, models)
	return out
}

var (
	openAIPrefixes = []string{"gpt-4", "gpt-5", "o1", "o3", "o4"}
	openAIExcluded = []string{"realtime", "audio", "vision", "instruct", "turbo", "preview"}
	versionExpr    = regexp.MustCompile(`\d+(\.\d+)?`)
)

// Catalog lists the models a key can use, straight from each vendor.
type Catalog struct {
	endpoints  Endpoints
	httpClient *http.Client
	logger     *slog.Logger
}

// NewCatalog wires vendor endpoints; empty fields target the public APIs.
func NewCatalog(endpoints Endpoints, client *http.Client, log *slog.Logger) *Catalog {
	if endpoints.Anthropic == "" {
		endpoints.Anthropic = DefaultAnthropicBaseURL
	}
	if endpoints.OpenAI == "" {
		endpoints.OpenAI = DefaultOpenAIBaseURL
	}
	if endpoints.Gemini == "" {
		endpoints.Gemini = DefaultGeminiBaseURL
	}
	return &Catalog{endpoints: endpoints, httpClient: defaultHTTPClient(client), logger: log}
}

// FetchModels never fails: any transport, status or decoding problem yields
// an empty list.
func (c *Catalog) FetchModels(ctx context.Context, provider domain.Provider, apiKey string) []domain.ModelInfo {
	var (
		models []domain.ModelInfo
		err    error
	)
	switch provider {
	case domain.ProviderAnthropic:
		models, err = c.anthropicModels(ctx, apiKey)
	case domain.ProviderOpenAI:
		models, err = c.openAIModels(ctx, apiKey)
	case domain.ProviderGemini:
		models, err = c.geminiModels(ctx, apiKey)
	default:
		return []domain.ModelInfo{}
	}
	if err != nil {
		c.debug("list models failed", "provider", provider, "error", err)
		return []domain.ModelInfo{}
	}
	return models
}

func (c *Catalog) anthropicModels(ctx context.Context, apiKey string) ([]domain.ModelInfo, error) {
	var resp struct {
		Data []struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
		} `json:"data"`
	}
	endpoint := strings.TrimSuffix(c.endpoints.Anthropic, "/") + "/v1/models"
	if err := doJSON(ctx, c.httpClient, http.MethodGet, endpoint, anthropicHeaders(apiKey), nil, &resp); err != nil {
		return nil, err
	}

	models := make([]domain.ModelInfo, 0, len(resp.Data))
	for _, m := range resp.Data {
		if !strings.Contains(m.ID, "claude") || strings.Contains(m.ID, "instant") {
			continue
		}
		name := m.DisplayName
		if name == "" {
			name = m.ID
		}
		models = append(models, domain.ModelInfo{ID: m.ID, Name: name})
	}
	return models, nil
}

func (c *Catalog) openAIModels(ctx context.Context, apiKey string) ([]domain.ModelInfo, error) {
	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	endpoint := strings.TrimSuffix(c.endpoints.OpenAI, "/") + "/v1/models"
	headers := map[string]string{"Authorization": "Bearer " + apiKey}
	if err := doJSON(ctx, c.httpClient, http.MethodGet, endpoint, headers, nil, &resp); err != nil {
		return nil, err
	}

	models := make([]domain.ModelInfo, 0, len(resp.Data))
	for _, m := range resp.Data {
		id := strings.ToLower(m.ID)
		if !hasAnyPrefix(id, openAIPrefixes) || containsAny(id, openAIExcluded) {
			continue
		}
		models = append(models, domain.ModelInfo{ID: m.ID, Name: m.ID})
	}
	sort.SliceStable(models, func(i, j int) bool {
		return models[i].ID > models[j].ID
	})
	return models, nil
}

func (c *Catalog) geminiModels(ctx context.Context, apiKey string) ([]domain.ModelInfo, error) {
	client, err := newGenAIClient(ctx, c.endpoints.Gemini, apiKey, c.httpClient)
	if err != nil {
		return nil, err
	}

	models := []domain.ModelInfo{}
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("gemini: list models: %w", err)
		}
		if !slices.Contains(m.SupportedActions, "generateContent") || !strings.Contains(m.Name, "gemini") {
			continue
		}
		id := strings.Replace(m.Name, "models/", "", 1)
		name := m.DisplayName
		if name == "" {
			name = id
		}
		models = append(models, domain.ModelInfo{ID: id, Name: name})
	}
	sort.SliceStable(models, func(i, j int) bool {
		return modelVersion(models[i].ID) > modelVersion(models[j].ID)
	})
	return models, nil
}

// modelVersion reads the first number in a model id, "gemini-2.5-pro" -> 2.5.
func modelVersion(id string) float64 {
	v, err := strconv.ParseFloat(versionExpr.FindString(id), 64)
	if err != nil {
		return 0
	}
	return v
}

func (c *Catalog) debug(msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, args...)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
