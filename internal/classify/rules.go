package classify

import (
	"net/url"
	"strings"

	"LinkBrief/internal/domain"
)

var internalMarkers = []string{
	"docs.google.com", "drive.google.com", "share.google",
	"sheets.google.com", "slides.google.com",
	"notion.so", "figma.com", "canva.com/design",
	"atlassian.net", "jira", "confluence",
	"slack.com/archives",
}

var (
	videoMarkers         = []string{"youtube.com", "youtu.be", "vimeo.com"}
	socialHosts          = []string{"x.com", "twitter.com"}
	transactionalMarkers = []string{"/confirm", "token=", "/verify", "/unsubscribe"}
)

// DefaultClassification decides from the URL alone. Rules apply in
// priority order and anything unmatched is collected.
func DefaultClassification(rawURL string) domain.ContentClassification {
	lower := strings.ToLower(rawURL)

	switch {
	case containsAny(lower, internalMarkers):
		return domain.ContentClassification{
			ContentType:    domain.ContentInternal,
			TechnicalDepth: domain.DepthNone,
			Actionability:  domain.ActionNone,
			ShouldCollect:  false,
			Reasoning:      "Internal workspace tool",
		}
	case containsAny(lower, videoMarkers):
		return domain.ContentClassification{
			ContentType:    domain.ContentMedia,
			TechnicalDepth: domain.DepthModerate,
			Actionability:  domain.ActionAwareness,
			ShouldCollect:  false,
			Reasoning:      "Video content excluded",
		}
	case hostMatches(lower, socialHosts):
		return domain.ContentClassification{
			ContentType:    domain.ContentSocial,
			TechnicalDepth: domain.DepthUnknown,
			Actionability:  domain.ActionAwareness,
			ShouldCollect:  false,
			Reasoning:      "Twitter/X excluded: not scrapable",
		}
	case containsAny(lower, transactionalMarkers):
		return domain.ContentClassification{
			ContentType:    domain.ContentOther,
			TechnicalDepth: domain.DepthNone,
			Actionability:  domain.ActionNone,
			ShouldCollect:  false,
			Reasoning:      "Auth/transactional page",
		}
	}

	return domain.ContentClassification{
		ContentType:    domain.ContentArticle,
		TechnicalDepth: domain.DepthShallow,
		Actionability:  domain.ActionAwareness,
		ShouldCollect:  true,
		Reasoning:      "Default: collect and scrape",
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// hostMatches checks the host itself so that dropbox.com is not taken for x.com.
func hostMatches(rawURL string, hosts []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	for _, h := range hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
