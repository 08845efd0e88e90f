package parser

import (
	"net/url"
	"strings"
)

var sourceLabels = []struct {
	host  string
	label string
}{
	{"medium.com", "Blog"},
	{"dev.to", "Blog"},
	{"hashnode.dev", "Blog"},
	{"velog.io", "Blog"},
	{"tistory.com", "Blog"},
	{"brunch.co.kr", "Blog"},
	{"substack.com", "Newsletter"},
	{"github.com", "GitHub"},
	{"github.io", "Blog"},
	{"linkedin.com", "LinkedIn"},
	{"twitter.com", "Twitter"},
	{"x.com", "Twitter"},
	{"reddit.com", "Reddit"},
	{"news.ycombinator.com", "HackerNews"},
	{"stackoverflow.com", "StackOverflow"},
	{"youtube.com", "YouTube"},
	{"youtu.be", "YouTube"},
	{"notion.so", "Notion"},
	{"notion.site", "Notion"},
	{"news.hada.io", "News"},
}

// DetectSourceLabel names the kind of site a URL points at.
func DetectSourceLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "Article"
	}
	host := strings.ToLower(u.Hostname())

	for _, entry := range sourceLabels {
		if strings.Contains(host, entry.host) {
			return entry.label
		}
	}
	if strings.Contains(host, "blog") || strings.Contains(rawURL, "/blog/") {
		return "Blog"
	}
	return "Article"
}
