package classify

import (
	"context"
	"fmt"
	"log/slog"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/ports"
	"LinkBrief/pkg/jsonblock"
)

// Classifier asks a reasoning backend whether a shared link is worth
// collecting and falls back to URL rules whenever that is not possible.
type Classifier struct {
	backends ports.CompleterResolver
	logger   *slog.Logger
}

var _ ports.Classifier = (*Classifier)(nil)

// New wires the backend resolver. A nil resolver always falls back.
func New(backends ports.CompleterResolver, log *slog.Logger) *Classifier {
	return &Classifier{backends: backends, logger: log}
}

// Classify never fails. Model output is mapped without validating the
// content type or depth against their enumerations.
func (c *Classifier) Classify(ctx context.Context, messageText, url, title, description string, cfg domain.AIConfig) domain.ContentClassification {
	if cfg.APIKey == "" {
		return DefaultClassification(url)
	}

	result, err := c.classify(ctx, buildPrompt(messageText, url, title, description), cfg)
	if err != nil {
		c.warn("classification fell back to url rules", "url", url, "provider", cfg.Provider, "error", err)
		return DefaultClassification(url)
	}
	return result
}

func (c *Classifier) classify(ctx context.Context, prompt string, cfg domain.AIConfig) (domain.ContentClassification, error) {
	if c.backends == nil {
		return domain.ContentClassification{}, fmt.Errorf("no backends configured")
	}
	backend, err := c.backends.Resolve(cfg.Provider)
	if err != nil {
		return domain.ContentClassification{}, err
	}

	text, err := backend.Complete(ctx, cfg.APIKey, cfg.Model, prompt)
	if err != nil {
		return domain.ContentClassification{}, fmt.Errorf("complete: %w", err)
	}

	parsed, err := jsonblock.Decode(text)
	if err != nil {
		return domain.ContentClassification{}, fmt.Errorf("decode classification: %w", err)
	}

	actionability := domain.Actionability(jsonblock.String(parsed, "actionability"))
	if actionability == "" {
		actionability = domain.ActionAwareness
	}
	shouldCollect, _ := parsed["should_collect"].(bool)

	return domain.ContentClassification{
		ContentType:    domain.ContentType(jsonblock.String(parsed, "content_type")),
		TechnicalDepth: domain.TechnicalDepth(jsonblock.String(parsed, "technical_depth")),
		Actionability:  actionability,
		ShouldCollect:  shouldCollect,
		Reasoning:      jsonblock.String(parsed, "reasoning"),
	}, nil
}

func (c *Classifier) warn(msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(msg, args...)
}
