// Package links pulls candidate article URLs out of chat message text.
package links

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"LinkBrief/internal/domain"
)

var (
	wrappedURLExpr  = regexp.MustCompile(`<(https?://[^|>]+)(?:\|[^>]*)?>`)
	bareURLExpr     = regexp.MustCompile(`https?://[^\s<>|]+`)
	trailingPunct   = regexp.MustCompile(`[.,;:!?)]+$`)
	nonArticlePaths = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|webp|svg|ico|pdf|zip|tar|gz)$`),
		regexp.MustCompile(`(?i)^/?(favicon|robots\.txt|sitemap)`),
	}
)

// ignoredDomains are chat-platform CDNs and emoji/gif hosts.
var ignoredDomains = []string{
	"slack.com",
	"slack-edge.com",
	"slack-imgs.com",
	"giphy.com",
	"tenor.com",
	"emoji.slack-edge.com",
}

// articleDomains are hosts known to carry readable content.
var articleDomains = []string{
	"medium.com", "dev.to", "hashnode.dev", "substack.com", "github.com",
	"twitter.com", "x.com", "linkedin.com", "youtube.com", "youtu.be",
	"notion.so", "notion.site", "velog.io", "tistory.com", "brunch.co.kr",
}

// ExtractURLs returns the distinct URLs found in text, in first-seen order,
// minus anything hosted on an ignored domain.
func ExtractURLs(text string) []string {
	seen := map[string]struct{}{}
	var candidates []string
	add := func(u string) {
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		candidates = append(candidates, u)
	}

	for _, m := range wrappedURLExpr.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range bareURLExpr.FindAllString(text, -1) {
		add(trailingPunct.ReplaceAllString(m, ""))
	}

	result := make([]string, 0, len(candidates))
	for _, raw := range candidates {
		host, ok := hostOf(raw)
		if !ok || isIgnoredHost(host) {
			continue
		}
		result = append(result, raw)
	}
	return result
}

// IsArticleURL rejects direct file links and well-known non-content paths.
func IsArticleURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}

	path := strings.ToLower(parsed.Path)
	for _, expr := range nonArticlePaths {
		if expr.MatchString(path) {
			return false
		}
	}

	host := strings.ToLower(parsed.Hostname())
	for _, d := range articleDomains {
		if strings.Contains(host, d) {
			return true
		}
	}
	if len(path) > 10 || strings.Contains(path, "/blog") || strings.Contains(path, "/post") || strings.Contains(path, "/article") {
		return true
	}

	// TODO: decide whether short paths on unknown domains should be rejected.
	return true
}

// ExtractLinksFromMessages walks messages in order and returns one link per
// distinct URL, keeping the first message that mentioned it.
func ExtractLinksFromMessages(messages []domain.ChatMessage) []domain.ExtractedLink {
	seen := map[string]struct{}{}
	var result []domain.ExtractedLink

	for _, msg := range messages {
		if msg.Text == "" {
			continue
		}
		for _, u := range ExtractURLs(msg.Text) {
			if !IsArticleURL(u) {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			result = append(result, domain.ExtractedLink{
				URL:         u,
				MessageText: msg.Text,
				Timestamp:   ParseTS(msg.TS),
			})
		}
	}

	return result
}

// ParseTS converts a chat timestamp such as "1700000000.000100" to UTC time.
// Unparsable input yields the zero time.
func ParseTS(ts string) time.Time {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}
	}
	secPart, fracPart, _ := strings.Cut(ts, ".")
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}
	}
	var nanos int64
	if fracPart != "" {
		if len(fracPart) > 9 {
			fracPart = fracPart[:9]
		}
		fracPart += strings.Repeat("0", 9-len(fracPart))
		nanos, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return time.Time{}
		}
	}
	return time.Unix(sec, nanos).UTC()
}

func hostOf(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Hostname()), true
}

func isIgnoredHost(host string) bool {
	for _, d := range ignoredDomains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}
