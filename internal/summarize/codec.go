package summarize

import (
	"encoding/json"

	"LinkBrief/internal/domain"
)

// Serialize encodes every field; nil slices are written as [].
func Serialize(s domain.ArticleSummary) string {
	if s.KeyPoints == nil {
		s.KeyPoints = []string{}
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		// A struct of strings and string slices always marshals.
		return ""
	}
	return string(raw)
}

// storedSummary accepts both the current field names and the legacy
// hook/summary pair.
type storedSummary struct {
	Headline     *string         `json:"headline"`
	TLDR         *string         `json:"tldr"`
	KeyPoints    []string        `json:"keyPoints"`
	WhyItMatters string          `json:"whyItMatters"`
	KeyQuote     string          `json:"keyQuote"`
	Tags         []string        `json:"tags"`
	Difficulty   json.RawMessage `json:"difficulty"`

	Hook    string `json:"hook"`
	Summary string `json:"summary"`
}

// Deserialize reads a stored summary. It returns nil only for empty input;
// anything unreadable is wrapped as raw text.
func Deserialize(text string) *domain.ArticleSummary {
	if text == "" {
		return nil
	}

	var stored storedSummary
	if err := json.Unmarshal([]byte(text), &stored); err != nil {
		return rawSummary(text)
	}

	// Canonical records carry both keys, even when the model left tldr empty.
	if stored.Headline != nil && stored.TLDR != nil {
		return &domain.ArticleSummary{
			Headline:     *stored.Headline,
			TLDR:         *stored.TLDR,
			KeyPoints:    orEmpty(stored.KeyPoints),
			WhyItMatters: stored.WhyItMatters,
			KeyQuote:     stored.KeyQuote,
			Tags:         orEmpty(stored.Tags),
			Difficulty:   difficultyOf(stored.Difficulty),
		}
	}

	headline := stored.Hook
	if headline == "" {
		headline = text
	}
	tldr := stored.Summary
	if tldr == "" {
		tldr = text
	}
	return &domain.ArticleSummary{
		Headline:   headline,
		TLDR:       tldr,
		KeyPoints:  []string{},
		Tags:       orEmpty(stored.Tags),
		Difficulty: difficultyOf(stored.Difficulty),
	}
}

func rawSummary(text string) *domain.ArticleSummary {
	return &domain.ArticleSummary{
		Headline:   text,
		TLDR:       text,
		KeyPoints:  []string{},
		Tags:       []string{},
		Difficulty: domain.DifficultyIntermediate,
	}
}

func difficultyOf(raw json.RawMessage) domain.Difficulty {
	var d domain.Difficulty
	if err := json.Unmarshal(raw, &d); err != nil || !d.Valid() {
		return domain.DifficultyIntermediate
	}
	return d
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
