package usecase

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/links"
	"LinkBrief/internal/ports"
	"LinkBrief/internal/summarize"
)

// DefaultWorkers bounds how many links are processed at once.
const DefaultWorkers = 4

// Stage names where a link dropped out of the pipeline.
const (
	StageScrape = "scrape"
	StageSave   = "save"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Fetcher    ports.ContentFetcher
	Extractor  ports.HTMLExtractor
	Classifier ports.Classifier
	Summarizer ports.Summarizer
	Repository ports.ArticleRepository
	Notifier   ports.Notifier
	Logger     *slog.Logger
	Workers    int
}

// Pipeline implements the link-ingestion workflow.
type Pipeline struct {
	fetcher    ports.ContentFetcher
	extractor  ports.HTMLExtractor
	classifier ports.Classifier
	summarizer ports.Summarizer
	repository ports.ArticleRepository
	notifier   ports.Notifier
	logger     *slog.Logger
	workers    int
	now        func() time.Time
}

// RejectedLink is a link the classifier decided not to collect.
type RejectedLink struct {
	URL            string
	Classification domain.ContentClassification
}

// FailedLink records why a collected link could not be stored.
type FailedLink struct {
	URL   string
	Stage string
	Err   error
}

// Report summarizes one ingestion run.
type Report struct {
	Extracted int
	Skipped   int
	Rejected  []RejectedLink
	Collected []domain.Article
	Failed    []FailedLink
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	workers := deps.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pipeline{
		fetcher:    deps.Fetcher,
		extractor:  deps.Extractor,
		classifier: deps.Classifier,
		summarizer: deps.Summarizer,
		repository: deps.Repository,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		workers:    workers,
		now:        time.Now,
	}
}

type linkOutcome struct {
	rejected *RejectedLink
	article  *domain.Article
	failed   *FailedLink
}

// Ingest extracts links from messages, then classifies, scrapes, summarizes
// and stores each new one. A failing link never aborts the batch; only a
// repository lookup failure or cancellation returns an error.
func (p *Pipeline) Ingest(ctx context.Context, messages []domain.ChatMessage, cfg domain.AIConfig) (Report, error) {
	extracted := links.ExtractLinksFromMessages(messages)
	report := Report{Extracted: len(extracted)}
	if len(extracted) == 0 {
		return report, nil
	}

	urls := make([]string, len(extracted))
	for i, link := range extracted {
		urls[i] = link.URL
	}

	skip := map[string]bool{}
	if p.repository != nil {
		var err error
		skip, err = p.repository.AlreadyProcessed(ctx, urls)
		if err != nil {
			return report, fmt.Errorf("load processed: %w", err)
		}
	}

	pending := make([]domain.ExtractedLink, 0, len(extracted))
	for _, link := range extracted {
		if skip[link.URL] {
			report.Skipped++
			continue
		}
		pending = append(pending, link)
	}
	p.debug("ingest", "extracted", len(extracted), "skipped", report.Skipped, "workers", p.workers)

	outcomes := make([]linkOutcome, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, link := range pending {
		g.Go(func() error {
			outcomes[i] = p.process(gctx, link, cfg)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	for _, o := range outcomes {
		switch {
		case o.rejected != nil:
			report.Rejected = append(report.Rejected, *o.rejected)
		case o.failed != nil:
			report.Failed = append(report.Failed, *o.failed)
		case o.article != nil:
			report.Collected = append(report.Collected, *o.article)
		}
	}

	p.publish(ctx, report.Collected)
	return report, nil
}

func (p *Pipeline) process(ctx context.Context, link domain.ExtractedLink, cfg domain.AIConfig) linkOutcome {
	classification := p.classify(ctx, link, cfg)
	if !classification.ShouldCollect {
		p.debug("link rejected", "url", link.URL, "type", classification.ContentType, "reason", classification.Reasoning)
		return linkOutcome{rejected: &RejectedLink{URL: link.URL, Classification: classification}}
	}

	scraped, err := Scrape(ctx, p.fetcher, p.extractor, link.URL)
	if err != nil {
		p.warn("scrape failed", "url", link.URL, "error", err)
		return linkOutcome{failed: &FailedLink{URL: link.URL, Stage: StageScrape, Err: err}}
	}

	summary := summarize.DefaultSummary(scraped.Title, link.URL)
	if p.summarizer != nil {
		summary = p.summarizer.Summarize(ctx, scraped.Title, scraped.Content, link.URL, cfg)
	}

	article := p.buildArticle(link, scraped, summary)
	if p.repository != nil {
		if err := p.repository.SaveProcessed(ctx, article); err != nil {
			p.warn("save failed", "url", link.URL, "error", err)
			return linkOutcome{failed: &FailedLink{URL: link.URL, Stage: StageSave, Err: err}}
		}
	}
	return linkOutcome{article: &article}
}

func (p *Pipeline) classify(ctx context.Context, link domain.ExtractedLink, cfg domain.AIConfig) domain.ContentClassification {
	if p.classifier == nil {
		return domain.ContentClassification{ShouldCollect: true}
	}
	return p.classifier.Classify(ctx, link.MessageText, link.URL, "", "", cfg)
}

func (p *Pipeline) buildArticle(link domain.ExtractedLink, scraped domain.ScrapedContent, summary domain.ArticleSummary) domain.Article {
	now := p.now().UTC()
	article := domain.Article{
		URL:                link.URL,
		Title:              scraped.Title,
		Description:        scraped.Description,
		Content:            scraped.Content,
		Summary:            summarize.Serialize(summary),
		Tags:               summary.Tags,
		Difficulty:         summary.Difficulty,
		ReadingTimeMinutes: scraped.ReadingTimeMinutes,
		Image:              scraped.Image,
		SourceLabel:        scraped.SourceLabel,
		SourceType:         domain.SourceSlack,
		SourceID:           sourceID(link),
		IsOutdated:         scraped.IsOutdated,
		OutdatedReason:     scraped.OutdatedReason,
		CreatedAt:          now,
		ProcessedAt:        &now,
	}
	if article.Title == "" {
		article.Title = summary.Headline
	}
	if scraped.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, scraped.PublishedAt); err == nil {
			article.PublishedAt = &t
		}
	}
	return article
}

func sourceID(link domain.ExtractedLink) string {
	if link.Timestamp.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d.%06d", link.Timestamp.Unix(), link.Timestamp.Nanosecond()/int(time.Microsecond))
}

func (p *Pipeline) publish(ctx context.Context, articles []domain.Article) {
	if p.notifier == nil || len(articles) == 0 {
		return
	}
	if err := p.notifier.PublishDigest(ctx, BuildDigestMessage(articles)); err != nil {
		p.warn("publish digest failed", "articles", len(articles), "error", err)
	}
}

// BuildDigestMessage renders collected articles as a Telegram HTML list.
// Titles and summaries are escaped since they come from pages and models.
func BuildDigestMessage(articles []domain.Article) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	for _, article := range articles {
		summary := summarize.Deserialize(article.Summary)
		fmt.Fprintf(&b, "- <b>%s</b>\n", html.EscapeString(article.Title))
		if summary != nil && summary.TLDR != "" && summary.TLDR != article.Title {
			fmt.Fprintf(&b, "%s\n", html.EscapeString(summary.TLDR))
		}
		if article.IsOutdated {
			fmt.Fprintf(&b, "<i>Outdated: %s</i>\n", html.EscapeString(article.OutdatedReason))
		}
		fmt.Fprintf(&b, "%s\n\n", html.EscapeString(article.URL))
	}
	return b.String()
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(msg, args...)
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Warn(msg, args...)
}
