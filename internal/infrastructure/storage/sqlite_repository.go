package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/ports"
)

// ErrNotFound is returned when no article matches a lookup.
var ErrNotFound = errors.New("article not found")

const articlesTable = "articles"

// Fixed-width UTC timestamps sort correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var articleColumns = []string{
	"id", "url", "title", "description", "content", "summary", "tags",
	"difficulty", "reading_time_minutes", "image", "source_label",
	"source_type", "source_id", "is_outdated", "outdated_reason",
	"created_at", "processed_at", "published_at",
}

const upsertSuffix = `ON CONFLICT(url) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	content = excluded.content,
	summary = excluded.summary,
	tags = excluded.tags,
	difficulty = excluded.difficulty,
	reading_time_minutes = excluded.reading_time_minutes,
	image = excluded.image,
	source_label = excluded.source_label,
	is_outdated = excluded.is_outdated,
	outdated_reason = excluded.outdated_reason,
	processed_at = excluded.processed_at,
	published_at = excluded.published_at`

// SQLiteRepository persists collected articles into a SQLite file.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.ArticleRepository = (*SQLiteRepository)(nil)

// Open opens (or creates) the database at path and migrates it. Use
// ":memory:" for a throwaway store.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewSQLiteRepository wires a migrated sql.DB.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// AlreadyProcessed reports which of urls are already stored.
func (r *SQLiteRepository) AlreadyProcessed(ctx context.Context, urls []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if r.db == nil || len(urls) == 0 {
		return result, nil
	}

	rows, err := sq.Select("url").
		From(articlesTable).
		Where(sq.Eq{"url": urls}).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query processed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		result[url] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}

// SaveProcessed upserts the article keyed by URL. A missing ID or creation
// time is filled in; on conflict the original ID and creation time stay.
func (r *SQLiteRepository) SaveProcessed(ctx context.Context, article domain.Article) error {
	if r.db == nil {
		return nil
	}
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = r.now()
	}
	if article.SourceType == "" {
		article.SourceType = domain.SourceSlack
	}

	tags, err := json.Marshal(nonNil(article.Tags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = sq.Insert(articlesTable).
		Columns(articleColumns...).
		Values(
			article.ID,
			article.URL,
			article.Title,
			article.Description,
			article.Content,
			article.Summary,
			string(tags),
			string(article.Difficulty),
			article.ReadingTimeMinutes,
			article.Image,
			article.SourceLabel,
			string(article.SourceType),
			article.SourceID,
			article.IsOutdated,
			article.OutdatedReason,
			formatTime(article.CreatedAt),
			formatTimePtr(article.ProcessedAt),
			formatTimePtr(article.PublishedAt),
		).
		Suffix(upsertSuffix).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}
	return nil
}

// FindByURL returns the stored article for url or ErrNotFound.
func (r *SQLiteRepository) FindByURL(ctx context.Context, url string) (domain.Article, error) {
	row := sq.Select(articleColumns...).
		From(articlesTable).
		Where(sq.Eq{"url": url}).
		RunWith(r.db).
		QueryRowContext(ctx)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Article{}, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("find article: %w", err)
	}
	return article, nil
}

// Recent lists the newest articles first.
func (r *SQLiteRepository) Recent(ctx context.Context, limit uint64) ([]domain.Article, error) {
	rows, err := sq.Select(articleColumns...).
		From(articlesTable).
		OrderBy("created_at DESC").
		Limit(limit).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return articles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (domain.Article, error) {
	var (
		a           domain.Article
		tags        string
		difficulty  string
		sourceType  string
		createdAt   string
		processedAt sql.NullString
		publishedAt sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.URL, &a.Title, &a.Description, &a.Content, &a.Summary, &tags,
		&difficulty, &a.ReadingTimeMinutes, &a.Image, &a.SourceLabel,
		&sourceType, &a.SourceID, &a.IsOutdated, &a.OutdatedReason,
		&createdAt, &processedAt, &publishedAt,
	)
	if err != nil {
		return domain.Article{}, err
	}

	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return domain.Article{}, fmt.Errorf("decode tags: %w", err)
	}
	a.Difficulty = domain.Difficulty(difficulty)
	a.SourceType = domain.SourceType(sourceType)
	if a.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Article{}, fmt.Errorf("parse created_at: %w", err)
	}
	if a.ProcessedAt, err = parseTimePtr(processedAt); err != nil {
		return domain.Article{}, fmt.Errorf("parse processed_at: %w", err)
	}
	if a.PublishedAt, err = parseTimePtr(publishedAt); err != nil {
		return domain.Article{}, fmt.Errorf("parse published_at: %w", err)
	}
	return a, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTimePtr(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
