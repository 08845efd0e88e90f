package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/summarize"
)

type fakeFetcher struct {
	pages map[string]string
}

func (f fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	html, ok := f.pages[url]
	if !ok {
		return "", errors.New("HTTP 404")
	}
	return html, nil
}

type fakeExtractor struct{}

func (fakeExtractor) Parse(html, _ string) (domain.ScrapedContent, error) {
	return domain.ScrapedContent{
		Title:              html,
		Content:            "body of " + html,
		SourceLabel:        "Article",
		PublishedAt:        "2024-03-05T10:20:30.000Z",
		ReadingTimeMinutes: 1,
	}, nil
}

type fakeClassifier struct{}

func (fakeClassifier) Classify(_ context.Context, _, url, _, _ string, _ domain.AIConfig) domain.ContentClassification {
	if strings.Contains(url, "youtube") {
		return domain.ContentClassification{ContentType: domain.ContentMedia, ShouldCollect: false}
	}
	return domain.ContentClassification{ContentType: domain.ContentArticle, ShouldCollect: true}
}

type memoryRepository struct {
	mu      sync.Mutex
	stored  map[string]domain.Article
	failFor string
}

func newMemoryRepository(existing ...string) *memoryRepository {
	r := &memoryRepository{stored: map[string]domain.Article{}}
	for _, url := range existing {
		r.stored[url] = domain.Article{URL: url}
	}
	return r
}

func (r *memoryRepository) AlreadyProcessed(_ context.Context, urls []string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]bool{}
	for _, u := range urls {
		if _, ok := r.stored[u]; ok {
			out[u] = true
		}
	}
	return out, nil
}

func (r *memoryRepository) SaveProcessed(_ context.Context, article domain.Article) error {
	if article.URL == r.failFor {
		return errors.New("disk full")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored[article.URL] = article
	return nil
}

type recordingNotifier struct {
	digests []string
}

func (n *recordingNotifier) PublishDigest(_ context.Context, digest string) error {
	n.digests = append(n.digests, digest)
	return nil
}

func messages(texts ...string) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(texts))
	for i, text := range texts {
		out[i] = domain.ChatMessage{TS: "1700000000.000100", Text: text, Type: "message"}
	}
	return out
}

func TestIngestClassifiesScrapesAndStores(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepository("https://seen.example/post")
	notifier := &recordingNotifier{}
	p := NewPipeline(PipelineDeps{
		Fetcher: fakeFetcher{pages: map[string]string{
			"https://go.dev/blog/pgo": "PGO",
		}},
		Extractor:  fakeExtractor{},
		Classifier: fakeClassifier{},
		Repository: repo,
		Notifier:   notifier,
		Workers:    2,
	})
	fixed := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	report, err := p.Ingest(context.Background(), messages(
		"read <https://go.dev/blog/pgo|PGO> and https://seen.example/post",
		"video https://www.youtube.com/watch?v=1",
		"broken https://missing.example/article",
		"dup https://go.dev/blog/pgo",
	), domain.AIConfig{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	if report.Extracted != 4 || report.Skipped != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if len(report.Rejected) != 1 || report.Rejected[0].URL != "https://www.youtube.com/watch?v=1" {
		t.Fatalf("unexpected rejected: %+v", report.Rejected)
	}
	if len(report.Failed) != 1 || report.Failed[0].Stage != StageScrape {
		t.Fatalf("unexpected failed: %+v", report.Failed)
	}
	if len(report.Collected) != 1 {
		t.Fatalf("unexpected collected: %+v", report.Collected)
	}

	article := repo.stored["https://go.dev/blog/pgo"]
	if article.Title != "PGO" || article.SourceType != domain.SourceSlack || article.SourceID != "1700000000.000100" {
		t.Fatalf("unexpected stored article: %+v", article)
	}
	if article.PublishedAt == nil || article.PublishedAt.Format(time.RFC3339) != "2024-03-05T10:20:30Z" {
		t.Fatalf("unexpected published at: %v", article.PublishedAt)
	}
	if article.ProcessedAt == nil || !article.ProcessedAt.Equal(fixed) {
		t.Fatalf("unexpected processed at: %v", article.ProcessedAt)
	}
	summary := summarize.Deserialize(article.Summary)
	if summary == nil || summary.Headline != "PGO" {
		t.Fatalf("summary not stored: %q", article.Summary)
	}

	if len(notifier.digests) != 1 || !strings.Contains(notifier.digests[0], "https://go.dev/blog/pgo") {
		t.Fatalf("unexpected digests: %q", notifier.digests)
	}
}

func TestIngestRecordsSaveFailures(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepository()
	repo.failFor = "https://a.example/post"
	p := NewPipeline(PipelineDeps{
		Fetcher: fakeFetcher{pages: map[string]string{
			"https://a.example/post": "A",
			"https://b.example/post": "B",
		}},
		Extractor:  fakeExtractor{},
		Repository: repo,
	})

	report, err := p.Ingest(context.Background(), messages("https://a.example/post https://b.example/post"), domain.AIConfig{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(report.Failed) != 1 || report.Failed[0].Stage != StageSave || report.Failed[0].URL != "https://a.example/post" {
		t.Fatalf("unexpected failed: %+v", report.Failed)
	}
	if len(report.Collected) != 1 || report.Collected[0].URL != "https://b.example/post" {
		t.Fatalf("unexpected collected: %+v", report.Collected)
	}
}

func TestIngestWithoutLinks(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	report, err := NewPipeline(PipelineDeps{Notifier: notifier}).Ingest(context.Background(), messages("no links here", ""), domain.AIConfig{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if report.Extracted != 0 || len(notifier.digests) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestIngestCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(PipelineDeps{Fetcher: fakeFetcher{}, Extractor: fakeExtractor{}})
	if _, err := p.Ingest(ctx, messages("https://a.example/post"), domain.AIConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildDigestMessage(t *testing.T) {
	t.Parallel()

	got := BuildDigestMessage([]domain.Article{{
		Title:          "Go 1.22",
		URL:            "https://go.dev/blog/go1.22",
		Summary:        summarize.Serialize(domain.ArticleSummary{Headline: "Go 1.22", TLDR: "Loop vars fixed."}),
		IsOutdated:     true,
		OutdatedReason: "End of life",
	}})
	want := "- <b>Go 1.22</b>\nLoop vars fixed.\n<i>Outdated: End of life</i>\nhttps://go.dev/blog/go1.22\n\n"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	escaped := BuildDigestMessage([]domain.Article{{
		Title:   "use_after_free in *C* & <Go>",
		URL:     "https://example.com/a?x=1&y=2",
		Summary: summarize.Serialize(domain.ArticleSummary{Headline: "h", TLDR: "a [link] `code`"}),
	}})
	wantEscaped := "- <b>use_after_free in *C* &amp; &lt;Go&gt;</b>\na [link] `code`\nhttps://example.com/a?x=1&amp;y=2\n\n"
	if escaped != wantEscaped {
		t.Fatalf("want %q, got %q", wantEscaped, escaped)
	}
	if BuildDigestMessage(nil) != "" {
		t.Fatal("empty digest should be empty")
	}
}
