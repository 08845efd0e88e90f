package parser

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/ports"
)

// MaxContentRunes caps the extracted plain text.
const MaxContentRunes = 10000

const publishedLayout = "2006-01-02T15:04:05.000Z"

const noiseSelector = "script, style, nav, footer, header, aside, .ads, .advertisement, .sidebar"

var contentSelectors = []string{
	"article",
	`[role="main"]`,
	"main",
	".post-content",
	".article-content",
	".entry-content",
	".content",
	"#content",
}

var imageContainers = []string{
	"article",
	`[role="main"]`,
	"main",
	".post-content",
	".article-content",
}

var dateSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="pubdate"]`,
	`meta[name="publishdate"]`,
	`meta[name="date"]`,
	`meta[property="og:published_time"]`,
	"time[datetime]",
	"time[pubdate]",
	".published",
	".post-date",
	".article-date",
	".entry-date",
	`[itemprop="datePublished"]`,
}

// Extractor turns raw HTML into ScrapedContent using meta tags and
// content-container heuristics.
type Extractor struct {
	logger *slog.Logger
	lang   *languageDetector
}

var _ ports.HTMLExtractor = (*Extractor)(nil)

// NewExtractor wires an optional logger.
func NewExtractor(log *slog.Logger) *Extractor {
	return &Extractor{logger: log, lang: newLanguageDetector()}
}

// Parse never fails on malformed markup; an error means pageURL is not an
// absolute URL.
func (e *Extractor) Parse(html, pageURL string) (domain.ScrapedContent, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return domain.ScrapedContent{}, fmt.Errorf("invalid page url %q", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.ScrapedContent{}, fmt.Errorf("parse document: %w", err)
	}

	title := firstMeta(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`)
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	description := firstMeta(doc,
		`meta[property="og:description"]`,
		`meta[name="description"]`,
		`meta[name="twitter:description"]`,
	)

	// Staleness looks at the page before noise removal.
	outdated, reason := DetectOutdated(title, description, selectionText(doc.Find("body")))

	doc.Find(noiseSelector).Remove()

	siteName := firstMeta(doc, `meta[property="og:site_name"]`)
	if siteName == "" {
		siteName = strings.TrimPrefix(base.Hostname(), "www.")
	}

	content := extractContent(doc)

	result := domain.ScrapedContent{
		Title:              title,
		Description:        description,
		Content:            content,
		SiteName:           siteName,
		Image:              extractImage(doc, base),
		SourceLabel:        DetectSourceLabel(pageURL),
		PublishedAt:        extractPublishedAt(doc),
		IsOutdated:         outdated,
		OutdatedReason:     reason,
		Author:             extractByline(html, base),
		Language:           e.lang.detect(content),
		ReadingTimeMinutes: ReadingTime(content),
	}

	e.debug("parsed page",
		"url", pageURL,
		"content_runes", len([]rune(content)),
		"outdated", outdated,
		"language", result.Language,
	)

	return result, nil
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Debug(msg, args...)
}

func firstMeta(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
			return v
		}
	}
	return ""
}

func extractContent(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		if text := selectionText(doc.Find(sel)); text != "" {
			return truncateRunes(text, MaxContentRunes)
		}
	}
	return truncateRunes(selectionText(doc.Find("body")), MaxContentRunes)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func extractImage(doc *goquery.Document, base *url.URL) string {
	if v := firstMeta(doc, `meta[property="og:image"]`, `meta[name="twitter:image"]`); v != "" {
		return resolveURL(v, base)
	}

	for _, container := range imageContainers {
		img := doc.Find(container + " img").First()
		src := img.AttrOr("src", "")
		if src == "" {
			src = img.AttrOr("data-src", "")
		}
		if src != "" && !isIconLike(src) {
			return resolveURL(src, base)
		}
	}
	return ""
}

func resolveURL(raw string, base *url.URL) string {
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}

var iconMarkers = []string{"logo", "icon", "avatar", "favicon", "badge", "1x1", "pixel"}

func isIconLike(src string) bool {
	lower := strings.ToLower(src)
	if strings.HasSuffix(lower, ".svg") {
		return true
	}
	for _, marker := range iconMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func extractPublishedAt(doc *goquery.Document) string {
	for _, sel := range dateSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		raw := el.AttrOr("content", "")
		if raw == "" {
			raw = el.AttrOr("datetime", "")
		}
		if raw == "" {
			raw = el.Text()
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		// Fragments such as "Sat," or "12:" parse to year zero.
		if parsed, err := dateparse.ParseIn(raw, time.UTC); err == nil && parsed.Year() > 0 {
			return parsed.UTC().Format(publishedLayout)
		}
	}
	return ""
}
