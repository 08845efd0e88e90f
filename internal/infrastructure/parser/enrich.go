package parser

import (
	"net/url"
	"strings"
	"sync"

	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

const (
	wordsPerMinute     = 200
	languageSampleSize = 2000
)

// ReadingTime estimates minutes at a steady reading pace.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// extractByline is best effort: readability failures leave the author empty.
func extractByline(html string, base *url.URL) string {
	p := readability.NewParser()
	article, err := p.Parse(strings.NewReader(html), base)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.Byline)
}

var detectableLanguages = []lingua.Language{
	lingua.English,
	lingua.Korean,
	lingua.Japanese,
	lingua.Chinese,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Russian,
	lingua.Italian,
}

// languageDetector builds its lingua model on first use.
type languageDetector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func newLanguageDetector() *languageDetector {
	return &languageDetector{}
}

func (d *languageDetector) detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectableLanguages...).
			Build()
	})

	lang, ok := d.detector.DetectLanguageOf(truncateRunes(text, languageSampleSize))
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
