package summarize

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	defaultLanguage = "English"
	koreanNative    = "한국어"
	maxPromptRunes  = 6000
)

const koreanRule = "\n6. KOREAN ONLY: Use formal polite speech (존댓말/합쇼체) consistently. End sentences with -습니다, -입니다, -됩니다. NEVER use casual speech (반말)."

const promptTemplate = `You are a SENIOR TECH JOURNALIST at a prestigious developer magazine.
Your job is to create compelling, newspaper-style briefings that developers actually want to read.

---

INPUT:
- Title: %[1]s
- URL: %[2]s
- Content: %[3]s

---

TASK: Create a briefing in JSON format.

{
  "headline": "Catchy, newspaper-style headline (max 15 words)",
  "tldr": "One-sentence summary for busy readers",
  "keyPoints": [
    "First key point (one sentence)",
    "Second key point (one sentence)",
    "Third key point (one sentence)"
  ],
  "whyItMatters": "Why this matters to developers/readers (1-2 sentences)",
  "keyQuote": "Most impactful quote from the article (if any, otherwise empty string)",
  "tags": ["tag1", "tag2", "tag3"],
  "difficulty": "beginner|intermediate|advanced"
}

---

CRITICAL RULES:
1. WRITE EVERYTHING IN %[4]s. This is NOT optional. The output MUST be in %[4]s.
2. Headline should be ATTENTION-GRABBING but accurate, no clickbait lies.
3. Key points should be ACTIONABLE insights, not just descriptions.
4. Tags: use technical topics (frontend, backend, ai, devops, database, security, career, etc.)
5. Difficulty: beginner (anyone can understand), intermediate (some experience needed), advanced (experts only)%[5]s

OUTPUT: JSON only, no explanation outside JSON.`

// NormalizeLanguage turns BCP 47 tags such as "ko" or "en-US" into their
// English display name. Free-form names pass through untouched.
func NormalizeLanguage(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultLanguage
	}
	tag, err := language.Parse(value)
	if err != nil {
		return value
	}
	base, _ := tag.Base()
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return value
}

func isKorean(lang string) bool {
	return lang == koreanNative || strings.EqualFold(lang, "korean")
}

func buildPrompt(title, content, url, lang string) string {
	rule := ""
	if isKorean(lang) {
		rule = koreanRule
	}
	return fmt.Sprintf(promptTemplate, title, url, truncateRunes(content, maxPromptRunes), lang, rule)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
