package classify

import "fmt"

const promptTemplate = `You filter links for a tech newsletter. DEFAULT ACTION: COLLECT.

INPUT:
- URL: %s
- Context: %s
- Title: %s
- Description: %s

---

EXCLUDE ONLY these specific categories:

1. INTERNAL TOOLS (workspace/productivity apps, not public content):
   - Google Docs/Sheets/Slides/Drive (docs.google.com, drive.google.com, share.google)
   - Notion workspace pages (notion.so with private content)
   - Figma files (figma.com)
   - Jira/Confluence (atlassian.net)
   - Canva designs (canva.com/design)
   - Slack permalinks

2. VIDEO/AUDIO (reading-focused newsletter):
   - YouTube (youtube.com, youtu.be)
   - Vimeo, Twitch, podcasts

3. TWITTER/X ONLY (not scrapable):
   - x.com, twitter.com
   - NOTE: LinkedIn is NOT excluded. LinkedIn posts ARE scrapable.

4. AUTH/TRANSACTIONAL pages:
   - Login pages, confirmation tokens, password resets
   - URLs with "confirm", "token=", "verify", "unsubscribe"

5. OBVIOUS NON-CONTENT:
   - Image files (.png, .jpg, .gif direct links)
   - File downloads (.zip, .pdf direct links)

---

ALWAYS COLLECT (even without metadata):

- GitHub repos/gists (github.com, gist.github.com) - developers share code there
- LinkedIn posts (linkedin.com) - professionals share knowledge, IS scrapable
- Blog platforms (medium.com, dev.to, substack.com, brunch.co.kr, velog.io, tistory.com)
- Tech news (news.hada.io, news.ycombinator.com, techcrunch.com)
- Any unknown domain - might be interesting, we'll scrape and find out
- Product/tool pages - developers share useful tools

---

CRITICAL: Missing metadata (no title/description) is NOT a reason to exclude.
We will scrape the content later. If someone shared it, it's probably worth checking.

OUTPUT (JSON only):
{
  "content_type": "article|social|reference|internal|media|other",
  "technical_depth": "shallow|moderate|deep|unknown",
  "should_collect": true|false,
  "reasoning": "Brief reason"
}

When uncertain, set should_collect: true.`

func buildPrompt(messageText, url, title, description string) string {
	return fmt.Sprintf(promptTemplate, url, orNone(messageText), orNone(title), orNone(description))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
