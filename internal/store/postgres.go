// Package store is the PostgreSQL storage collaborator. It owns record
// persistence and the grouped aggregation queries the ranking engine
// consumes; it does not interpret scores or summaries.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/deusflow/pulse/internal/model"
)

// ErrDuplicateInteraction is returned when a second non-comment interaction
// of the same type is recorded for the same (user, article) pair.
var ErrDuplicateInteraction = errors.New("interaction already recorded")

// uniqueViolation is the Postgres error code for unique index conflicts.
const uniqueViolation = "23505"

type Postgres struct {
	db *sql.DB
}

// New connects to PostgreSQL and initializes the schema.
func New(connectionString string) (*Postgres, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Postgres{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Postgres) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		author TEXT NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		summary TEXT NOT NULL DEFAULT '',
		content_hash VARCHAR(64) UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(author, created_at DESC);

	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		interests TEXT[] NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS interactions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		article_id BIGINT NOT NULL REFERENCES articles(id),
		type VARCHAR(16) NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		share_platform TEXT NOT NULL DEFAULT '',
		share_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	-- At most one non-comment interaction per (user, article, type);
	-- comments are unbounded.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_interactions_once
		ON interactions(user_id, article_id, type) WHERE type <> 'comment';

	CREATE INDEX IF NOT EXISTS idx_interactions_article ON interactions(article_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Postgres) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const articleColumns = "id, title, body, author, tags, summary, created_at"

func scanArticle(row interface{ Scan(...any) error }) (*model.Article, error) {
	var a model.Article
	err := row.Scan(&a.ID, &a.Title, &a.Body, &a.Author, pq.Array(&a.Tags), &a.Summary, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetArticle returns one article by id, or model.ErrNotFound.
func (s *Postgres) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return a, nil
}

// GetUser returns one user by id, or model.ErrNotFound.
func (s *Postgres) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, interests FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, pq.Array(&u.Interests))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// CreateArticle inserts the article and fills in its id. contentHash may be
// empty; when set it deduplicates ingested stories.
func (s *Postgres) CreateArticle(ctx context.Context, a *model.Article, contentHash string) error {
	var hash sql.NullString
	if contentHash != "" {
		hash = sql.NullString{String: contentHash, Valid: true}
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (title, body, author, tags, summary, content_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		a.Title, a.Body, a.Author, pq.Array(a.Tags), a.Summary, hash, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// HasArticleHash reports whether an article with the given content hash is
// already stored.
func (s *Postgres) HasArticleHash(ctx context.Context, contentHash string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE content_hash = $1`, contentHash).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check article hash: %w", err)
	}
	return count > 0, nil
}

// CreateUser inserts the user and fills in its id.
func (s *Postgres) CreateUser(ctx context.Context, u *model.User) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, interests)
		VALUES ($1, $2)
		RETURNING id`,
		u.Username, pq.Array(u.Interests),
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ListArticlesExcluding returns up to limit of the newest articles the user
// has not interacted with, newest first.
func (s *Postgres) ListArticlesExcluding(ctx context.Context, userID int64, limit int) ([]model.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		WHERE NOT EXISTS (
			SELECT 1 FROM interactions i
			WHERE i.article_id = a.id AND i.user_id = $1
		)
		ORDER BY a.created_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate articles: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

// ListArticlesByAuthor returns the author's newest articles.
func (s *Postgres) ListArticlesByAuthor(ctx context.Context, author string, limit int) ([]model.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE author = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		author, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles by author: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

func collectArticles(rows *sql.Rows) ([]model.Article, error) {
	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// CountInteractionsByType returns all-time interaction counts for one
// article, keyed by type.
func (s *Postgres) CountInteractionsByType(ctx context.Context, articleID int64) (map[model.InteractionType]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COUNT(*)
		FROM interactions
		WHERE article_id = $1
		GROUP BY type`,
		articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.InteractionType]int)
	for rows.Next() {
		var typ model.InteractionType
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, fmt.Errorf("failed to scan interaction count: %w", err)
		}
		counts[typ] = count
	}
	return counts, rows.Err()
}

// CountInteractionsSince returns per-article, per-type interaction counts
// for interactions created at or after the cutoff.
func (s *Postgres) CountInteractionsSince(ctx context.Context, cutoff time.Time) ([]model.TypeCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT article_id, type, COUNT(*)
		FROM interactions
		WHERE created_at >= $1
		GROUP BY article_id, type`,
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to count windowed interactions: %w", err)
	}
	defer rows.Close()

	var out []model.TypeCount
	for rows.Next() {
		var tc model.TypeCount
		if err := rows.Scan(&tc.ArticleID, &tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan windowed count: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// CreateInteraction persists a user action and fills in its id. A repeated
// non-comment interaction for the same (user, article, type) returns
// ErrDuplicateInteraction.
func (s *Postgres) CreateInteraction(ctx context.Context, in *model.Interaction) error {
	if err := in.Validate(); err != nil {
		return err
	}

	var platform, message string
	if in.Share != nil {
		platform = in.Share.Platform
		message = in.Share.Message
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO interactions (user_id, article_id, type, comment, share_platform, share_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		in.UserID, in.ArticleID, in.Type, in.Comment, platform, message, in.CreatedAt,
	).Scan(&in.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateInteraction
	}
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	return nil
}

// UpdateComment edits the text of a comment interaction. Only comment text
// is mutable; other interaction payloads are immutable.
func (s *Postgres) UpdateComment(ctx context.Context, id int64, text string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE interactions SET comment = $2
		WHERE id = $1 AND type = 'comment'`,
		id, text)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteInteraction removes a single interaction by identity.
func (s *Postgres) DeleteInteraction(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFound
	}
	return nil
}
