package domain

import "time"

// SourceType tells where an article entered the system.
type SourceType string

const (
	SourceSlack  SourceType = "slack"
	SourceManual SourceType = "manual"
	SourceImport SourceType = "import"
)

// Article is the persisted snapshot of a collected link.
type Article struct {
	ID                 string
	URL                string
	Title              string
	Description        string
	Content            string
	Summary            string
	Tags               []string
	Difficulty         Difficulty
	ReadingTimeMinutes int
	Image              string
	SourceLabel        string
	SourceType         SourceType
	SourceID           string
	IsOutdated         bool
	OutdatedReason     string
	CreatedAt          time.Time
	ProcessedAt        *time.Time
	PublishedAt        *time.Time
}

// ScrapedContent is the normalized view of a fetched HTML page.
type ScrapedContent struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Content            string `json:"content"`
	SiteName           string `json:"siteName,omitempty"`
	Image              string `json:"image,omitempty"`
	SourceLabel        string `json:"sourceLabel,omitempty"`
	PublishedAt        string `json:"publishedAt,omitempty"`
	IsOutdated         bool   `json:"isOutdated"`
	OutdatedReason     string `json:"outdatedReason,omitempty"`
	Author             string `json:"author,omitempty"`
	Language           string `json:"language,omitempty"`
	ReadingTimeMinutes int    `json:"readingTimeMinutes,omitempty"`
}

// ExtractedLink is a candidate URL found in a chat message.
type ExtractedLink struct {
	URL         string
	MessageText string
	Timestamp   time.Time
}

// ChatMessage mirrors a record exported by the chat platform.
type ChatMessage struct {
	TS   string `json:"ts"`
	Text string `json:"text"`
	User string `json:"user,omitempty"`
	Type string `json:"type"`
}
