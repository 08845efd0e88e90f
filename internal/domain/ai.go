package domain

// Provider names a reasoning backend vendor.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)

// Providers lists every supported provider in display order.
func Providers() []Provider {
	return []Provider{ProviderAnthropic, ProviderOpenAI, ProviderGemini}
}

// AIConfig is supplied by the caller for classification and summarization.
// An empty APIKey selects the deterministic fallbacks.
type AIConfig struct {
	Provider Provider
	APIKey   string
	Model    string
	Language string
}

// ModelInfo is one selectable model of a provider.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
