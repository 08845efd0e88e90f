package ports

import (
	"context"
	"time"

	"LinkBrief/internal/domain"
)

// MessageSource yields chat messages to scan for links.
type MessageSource interface {
	Messages(ctx context.Context) ([]domain.ChatMessage, error)
}

// ContentFetcher retrieves raw HTML for a URL.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTMLExtractor turns raw HTML into normalized content.
type HTMLExtractor interface {
	Parse(html, pageURL string) (domain.ScrapedContent, error)
}

// Completer sends a single prompt to a reasoning backend and returns its text.
type Completer interface {
	Complete(ctx context.Context, apiKey, model, prompt string) (string, error)
}

// CompleterResolver picks the Completer registered for a provider.
type CompleterResolver interface {
	Resolve(provider domain.Provider) (Completer, error)
}

// Classifier decides whether a shared link is worth collecting.
type Classifier interface {
	Classify(ctx context.Context, messageText, url, title, description string, cfg domain.AIConfig) domain.ContentClassification
}

// Summarizer produces an editorial briefing for fetched content.
type Summarizer interface {
	Summarize(ctx context.Context, title, content, url string, cfg domain.AIConfig) domain.ArticleSummary
}

// ArticleRepository persists collected articles for deduplication and history.
type ArticleRepository interface {
	AlreadyProcessed(ctx context.Context, urls []string) (map[string]bool, error)
	SaveProcessed(ctx context.Context, article domain.Article) error
}

// Notifier streams finished digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
