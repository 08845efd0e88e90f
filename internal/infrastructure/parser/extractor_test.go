package parser

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Fallback Title</title>
  <meta property="og:title" content="  Open Graph Title ">
  <meta name="description" content="A page about Go.">
  <meta property="og:site_name" content="Gopher Weekly">
  <meta property="article:published_time" content="2024-03-05T10:20:30Z">
</head>
<body>
  <header>Site header</header>
  <nav>Home | About</nav>
  <article>
    <h1>Heading</h1>
    <img src="/static/logo.png">
    <p>First   paragraph
       of the article.</p>
  </article>
  <footer>Copyright</footer>
  <script>var tracking = true;</script>
</body>
</html>`

func TestParsePrefersOpenGraph(t *testing.T) {
	t.Parallel()

	got, err := NewExtractor(nil).Parse(samplePage, "https://www.example.com/posts/go")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if got.Title != "Open Graph Title" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
	if got.Description != "A page about Go." {
		t.Fatalf("unexpected description: %q", got.Description)
	}
	if got.SiteName != "Gopher Weekly" {
		t.Fatalf("unexpected site name: %q", got.SiteName)
	}
	if got.Content != "Heading First paragraph of the article." {
		t.Fatalf("unexpected content: %q", got.Content)
	}
	if got.PublishedAt != "2024-03-05T10:20:30.000Z" {
		t.Fatalf("unexpected published at: %q", got.PublishedAt)
	}
	if got.Image != "" {
		t.Fatalf("logo should not be chosen as image, got %q", got.Image)
	}
	if got.IsOutdated {
		t.Fatalf("page should not be outdated: %s", got.OutdatedReason)
	}
	if got.ReadingTimeMinutes != 1 {
		t.Fatalf("unexpected reading time: %d", got.ReadingTimeMinutes)
	}
}

func TestParseFallsBackToTitleAndHost(t *testing.T) {
	t.Parallel()

	html := `<html><head><title> Plain </title></head><body><p>Hello</p></body></html>`
	got, err := NewExtractor(nil).Parse(html, "https://www.blog.example.org/a")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.Title != "Plain" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
	if got.SiteName != "blog.example.org" {
		t.Fatalf("unexpected site name: %q", got.SiteName)
	}
	if got.Content != "Hello" {
		t.Fatalf("unexpected content: %q", got.Content)
	}
	if got.SourceLabel != "Blog" {
		t.Fatalf("unexpected source label: %q", got.SourceLabel)
	}
}

func TestParseDetectsDeprecation(t *testing.T) {
	t.Parallel()

	html := `<html><body><main><p>This library is deprecated.</p></main></body></html>`
	got, err := NewExtractor(nil).Parse(html, "https://example.com/lib")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !got.IsOutdated {
		t.Fatal("expected page to be outdated")
	}
	if got.OutdatedReason == "" {
		t.Fatal("expected an outdated reason")
	}
}

func TestParseSeesDeprecationInRemovedNoise(t *testing.T) {
	t.Parallel()

	html := `<html><body><aside>This project is archived</aside><article>Still here</article></body></html>`
	got, err := NewExtractor(nil).Parse(html, "https://example.com/x")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !got.IsOutdated || got.OutdatedReason != "Project deprecated/archived" {
		t.Fatalf("unexpected staleness: %v %q", got.IsOutdated, got.OutdatedReason)
	}
	if strings.Contains(got.Content, "archived") {
		t.Fatalf("aside should be stripped from content: %q", got.Content)
	}
}

func TestParseSeparatesAdjacentElements(t *testing.T) {
	t.Parallel()

	html := `<html><body><main><h2>Intro</h2><p>First</p><p>Second<b>bold</b></p></main></body></html>`
	got, err := NewExtractor(nil).Parse(html, "https://example.com/x")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.Content != "Intro First Second bold" {
		t.Fatalf("unexpected content: %q", got.Content)
	}
}

func TestParseRejectsRelativePageURL(t *testing.T) {
	t.Parallel()

	if _, err := NewExtractor(nil).Parse("<html></html>", "/relative/path"); err == nil {
		t.Fatal("expected error for relative page url")
	}
}

func TestParseCapsContent(t *testing.T) {
	t.Parallel()

	html := "<html><body><article>" + strings.Repeat("가 ", 8000) + "</article></body></html>"
	got, err := NewExtractor(nil).Parse(html, "https://example.kr/")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if n := len([]rune(got.Content)); n != MaxContentRunes {
		t.Fatalf("expected %d runes, got %d", MaxContentRunes, n)
	}
	if got.Language != "ko" {
		t.Fatalf("expected korean, got %q", got.Language)
	}
}

func TestImageSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og image wins",
			html: `<head><meta property="og:image" content="https://cdn.example.com/og.jpg"></head><article><img src="/a.jpg"></article>`,
			want: "https://cdn.example.com/og.jpg",
		},
		{
			name: "protocol relative twitter image",
			html: `<head><meta name="twitter:image" content="//cdn.example.com/tw.jpg"></head>`,
			want: "https://cdn.example.com/tw.jpg",
		},
		{
			name: "relative article image",
			html: `<article><img src="img/cover.jpg"></article>`,
			want: "https://example.com/posts/img/cover.jpg",
		},
		{
			name: "lazy image",
			html: `<main><img data-src="/lazy.png"></main>`,
			want: "https://example.com/lazy.png",
		},
		{
			name: "icon skipped",
			html: `<article><img src="/avatar.jpg"></article>`,
			want: "",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewExtractor(nil).Parse("<html>"+tc.html+"</html>", "https://example.com/posts/one")
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if got.Image != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got.Image)
			}
		})
	}
}

func TestPublishedAtFallsThroughSelectors(t *testing.T) {
	t.Parallel()

	html := `<html><body><time datetime="not a date">x</time><span class="post-date">2023-11-02</span></body></html>`
	got, err := NewExtractor(nil).Parse(html, "https://example.com/")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.PublishedAt != "2023-11-02T00:00:00.000Z" {
		t.Fatalf("unexpected published at: %q", got.PublishedAt)
	}
}

func TestPublishedAtSkipsDateFragments(t *testing.T) {
	t.Parallel()

	for _, fragment := range []string{"Sat,", "12:", "Jan 2"} {
		html := `<html><body><span class="post-date">` + fragment + `</span>` +
			`<meta itemprop="datePublished" content="2024-03-05T10:00:00Z"></body></html>`
		got, err := NewExtractor(nil).Parse(html, "https://example.com/")
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if got.PublishedAt != "2024-03-05T10:00:00.000Z" {
			t.Fatalf("fragment %q: unexpected published at: %q", fragment, got.PublishedAt)
		}
	}
}

func TestDetectSourceLabel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://medium.com/@a/post":            "Blog",
		"https://github.com/golang/go":          "GitHub",
		"https://golang.github.io/x":            "Blog",
		"https://news.ycombinator.com/item?id=1": "HackerNews",
		"https://x.com/someone/status/1":        "Twitter",
		"https://example.com/blog/post":         "Blog",
		"https://example.com/news/post":         "Article",
	}
	for in, want := range cases {
		if got := DetectSourceLabel(in); got != want {
			t.Fatalf("%s: want %q, got %q", in, want, got)
		}
	}
}

func TestDetectOutdatedPatterns(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text   string
		reason string
	}{
		{"It has been deprecated since 2020", "Article declares deprecation"},
		{"This API is no longer supported", "No longer maintained/supported"},
		{"Python 2 reached end-of-life", "End of life"},
		{"The service has been sunset", "Project discontinued"},
		{"please use the new client instead of this", "Recommends alternative"},
		{"we migrated to postgres last year", "Migration recommended"},
	}
	for _, tc := range cases {
		ok, reason := DetectOutdated("", "", tc.text)
		if !ok || reason != tc.reason {
			t.Fatalf("%q: got %v %q, want %q", tc.text, ok, reason, tc.reason)
		}
	}

	if ok, _ := DetectOutdated("Release notes", "", "What is new in Go 1.22"); ok {
		t.Fatal("fresh text flagged as outdated")
	}
}

func TestReadingTime(t *testing.T) {
	t.Parallel()

	if got := ReadingTime(""); got != 0 {
		t.Fatalf("empty content: got %d", got)
	}
	if got := ReadingTime(strings.Repeat("word ", 201)); got != 2 {
		t.Fatalf("201 words: got %d", got)
	}
}
