package summarize

import (
	"context"
	"fmt"
	"log/slog"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/ports"
	"LinkBrief/pkg/jsonblock"
)

// Summarizer writes an editorial briefing through a reasoning backend and
// degrades to a URL-derived summary when the backend cannot be used.
type Summarizer struct {
	backends ports.CompleterResolver
	logger   *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// New wires the backend resolver. A nil resolver always falls back.
func New(backends ports.CompleterResolver, log *slog.Logger) *Summarizer {
	return &Summarizer{backends: backends, logger: log}
}

// Summarize never fails.
func (s *Summarizer) Summarize(ctx context.Context, title, content, url string, cfg domain.AIConfig) domain.ArticleSummary {
	if cfg.APIKey == "" {
		return DefaultSummary(title, url)
	}

	prompt := buildPrompt(title, content, url, NormalizeLanguage(cfg.Language))
	summary, err := s.summarize(ctx, prompt, title, cfg)
	if err != nil {
		s.warn("summary fell back to defaults", "url", url, "provider", cfg.Provider, "error", err)
		return DefaultSummary(title, url)
	}
	return summary
}

func (s *Summarizer) summarize(ctx context.Context, prompt, title string, cfg domain.AIConfig) (domain.ArticleSummary, error) {
	if s.backends == nil {
		return domain.ArticleSummary{}, fmt.Errorf("no backends configured")
	}
	backend, err := s.backends.Resolve(cfg.Provider)
	if err != nil {
		return domain.ArticleSummary{}, err
	}

	text, err := backend.Complete(ctx, cfg.APIKey, cfg.Model, prompt)
	if err != nil {
		return domain.ArticleSummary{}, fmt.Errorf("complete: %w", err)
	}

	parsed, err := jsonblock.Decode(text)
	if err != nil {
		return domain.ArticleSummary{}, fmt.Errorf("decode summary: %w", err)
	}

	headline := jsonblock.String(parsed, "headline")
	if headline == "" {
		headline = title
	}
	difficulty := domain.Difficulty(jsonblock.String(parsed, "difficulty"))
	if !difficulty.Valid() {
		difficulty = domain.DifficultyIntermediate
	}

	return domain.ArticleSummary{
		Headline:     headline,
		TLDR:         jsonblock.String(parsed, "tldr"),
		KeyPoints:    jsonblock.Strings(parsed, "keyPoints", domain.MaxKeyPoints),
		WhyItMatters: jsonblock.String(parsed, "whyItMatters"),
		KeyQuote:     jsonblock.String(parsed, "keyQuote"),
		Tags:         jsonblock.Strings(parsed, "tags", domain.MaxTags),
		Difficulty:   difficulty,
	}, nil
}

func (s *Summarizer) warn(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(msg, args...)
}
