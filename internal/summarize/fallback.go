package summarize

import (
	"net/url"
	"strings"

	"LinkBrief/internal/domain"
)

var hostTags = []struct {
	markers []string
	tag     string
}{
	{[]string{"github.com"}, "github"},
	{[]string{"medium.com"}, "blog"},
	{[]string{"dev.to"}, "blog"},
	{[]string{"youtube.com", "youtu.be"}, "video"},
	{[]string{"linkedin.com"}, "linkedin"},
	{[]string{"news.hada.io"}, "news"},
}

// DefaultSummary builds a summary from the title and URL alone.
func DefaultSummary(title, rawURL string) domain.ArticleSummary {
	host := hostname(rawURL)

	headline, tldr := title, title
	if title == "" {
		headline = "Article from " + host
		tldr = "Content from " + host
	}

	lower := strings.ToLower(rawURL)
	tags := []string{}
	for _, entry := range hostTags {
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}

	return domain.ArticleSummary{
		Headline:     headline,
		TLDR:         tldr,
		KeyPoints:    []string{},
		WhyItMatters: "",
		Tags:         tags,
		Difficulty:   domain.DifficultyIntermediate,
	}
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
