package llm

import (
	"errors"
	"fmt"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/ports"
)

var (
	// ErrUnknownProvider is returned by Resolve for providers without a backend.
	ErrUnknownProvider = errors.New("unknown ai provider")
	// ErrEmptyResponse means the backend answered without any text.
	ErrEmptyResponse = errors.New("empty completion")
)

// Registry keeps a mapping from providers to their completion backends.
type Registry struct {
	completers map[domain.Provider]ports.Completer
}

var _ ports.CompleterResolver = (*Registry)(nil)

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{completers: map[domain.Provider]ports.Completer{}}
}

// Register adds or replaces the backend for a provider.
func (r *Registry) Register(provider domain.Provider, completer ports.Completer) {
	if r.completers == nil {
		r.completers = map[domain.Provider]ports.Completer{}
	}
	r.completers[provider] = completer
}

// Resolve returns the backend for provider or ErrUnknownProvider.
func (r *Registry) Resolve(provider domain.Provider) (ports.Completer, error) {
	if r != nil {
		if c, ok := r.completers[provider]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
}

// Endpoints overrides vendor base URLs; empty fields keep the public APIs.
type Endpoints struct {
	Anthropic string
	OpenAI    string
	Gemini    string
}

// NewDefaultRegistry registers all three vendor backends.
func NewDefaultRegistry(endpoints Endpoints) *Registry {
	reg := NewRegistry()
	reg.Register(domain.ProviderAnthropic, NewAnthropicClient(endpoints.Anthropic, nil))
	reg.Register(domain.ProviderOpenAI, NewOpenAIClient(endpoints.OpenAI, nil))
	reg.Register(domain.ProviderGemini, NewGeminiClient(endpoints.Gemini, nil))
	return reg
}
