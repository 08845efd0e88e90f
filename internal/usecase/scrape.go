package usecase

import (
	"context"
	"fmt"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/ports"
)

// Scrape fetches url and extracts its content.
func Scrape(ctx context.Context, fetcher ports.ContentFetcher, extractor ports.HTMLExtractor, url string) (domain.ScrapedContent, error) {
	if fetcher == nil || extractor == nil {
		return domain.ScrapedContent{}, fmt.Errorf("scraper is not configured")
	}

	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return domain.ScrapedContent{}, err
	}

	content, err := extractor.Parse(html, url)
	if err != nil {
		return domain.ScrapedContent{}, fmt.Errorf("parse %s: %w", url, err)
	}
	return content, nil
}
