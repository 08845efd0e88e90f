package domain

// Difficulty is the reader level an article targets.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

const (
	MaxKeyPoints = 3
	MaxTags      = 5
)

// ArticleSummary is the editorial briefing produced for a collected article.
type ArticleSummary struct {
	Headline     string     `json:"headline"`
	TLDR         string     `json:"tldr"`
	KeyPoints    []string   `json:"keyPoints"`
	WhyItMatters string     `json:"whyItMatters"`
	KeyQuote     string     `json:"keyQuote"`
	Tags         []string   `json:"tags"`
	Difficulty   Difficulty `json:"difficulty"`
}
