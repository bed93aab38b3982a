// Package engagement provides the concrete SQL-based implementation of the
// engagement store.
//
// PURPOSE: persist externally fetched engagement listings and locally
// authored content per user. Reconciliation and aggregation happen in the
// domain layer on data read from here.
package engagement

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	domain "github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/internal/infrastructure/persistence/database"
	"github.com/audiencelab/redditpulse/pkg/config"
	"github.com/oklog/ulid/v2"
)

// SQLRepository handles engagement and content persistence.
type SQLRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLRepository creates a new instance of the repository.
func NewSQLRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLRepository {
	return &SQLRepository{db: db, logger: logger}
}

func newRowID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// ListEngagement retrieves all engagement records for a user. Timestamp
// normalization happens here, at the store boundary: rows whose created_raw
// cannot be parsed come back with a zero CreatedAt instead of failing the
// whole listing.
func (r *SQLRepository) ListEngagement(ctx context.Context, userID string) ([]domain.Record, error) {
	const query = `
		SELECT reddit_id, kind, subreddit, score, reply_count, created_raw, permalink, title
		FROM engagement_records
		WHERE user_id = ?
		ORDER BY created_raw DESC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Database().Error("Engagement listing query failed", "error", err.Error(), "userId", userID)
		return nil, fmt.Errorf("failed to list engagement records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		var createdRaw string
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Subreddit, &rec.Score, &rec.ReplyCount, &createdRaw, &rec.Permalink, &rec.Title); err != nil {
			return nil, fmt.Errorf("failed to scan engagement record: %w", err)
		}
		if created, err := domain.ParseTimestamp(createdRaw); err == nil {
			rec.CreatedAt = created
		} else {
			r.logger.Database().Debug("Excluding unparseable engagement timestamp",
				"userId", userID, "redditId", rec.ID, "createdRaw", createdRaw)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate engagement records: %w", err)
	}

	r.trackQuery(query, time.Since(start), userID)
	return records, nil
}

// ReplaceEngagement atomically swaps a user's engagement records for a fresh
// listing.
func (r *SQLRepository) ReplaceEngagement(ctx context.Context, userID string, records []domain.Record) error {
	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin engagement replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM engagement_records WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear engagement records: %w", err)
	}

	const insert = `
		INSERT INTO engagement_records (id, user_id, reddit_id, kind, subreddit, score, reply_count, created_raw, permalink, title, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		createdRaw := ""
		if !rec.CreatedAt.IsZero() {
			createdRaw = rec.CreatedAt.UTC().Format(time.RFC3339)
		}
		if _, err := tx.ExecContext(ctx, insert,
			newRowID(), userID, rec.ID, string(rec.Kind), rec.Subreddit,
			rec.Score, rec.ReplyCount, createdRaw, rec.Permalink, rec.Title, fetchedAt,
		); err != nil {
			return fmt.Errorf("failed to insert engagement record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit engagement replace: %w", err)
	}

	r.logger.Database().Info("Engagement records replaced",
		"userId", userID, "count", len(records), "duration", time.Since(start))
	return nil
}

// ListArchivedComments retrieves a user's archived comments.
func (r *SQLRepository) ListArchivedComments(ctx context.Context, userID string) ([]domain.ArchivedComment, error) {
	const query = `
		SELECT id, user_id, subreddit, title, body, reply, source_url, created_raw, archived_at
		FROM archived_comments
		WHERE user_id = ?
		ORDER BY archived_at DESC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Database().Error("Archived comment listing failed", "error", err.Error(), "userId", userID)
		return nil, fmt.Errorf("failed to list archived comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.ArchivedComment
	for rows.Next() {
		var c domain.ArchivedComment
		var createdRaw, archivedRaw string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Subreddit, &c.Title, &c.Body, &c.Reply, &c.SourceURL, &createdRaw, &archivedRaw); err != nil {
			return nil, fmt.Errorf("failed to scan archived comment: %w", err)
		}
		if created, err := domain.ParseTimestamp(createdRaw); err == nil {
			c.CreatedAt = created
		}
		if archived, err := domain.ParseTimestamp(archivedRaw); err == nil {
			c.ArchivedAt = archived
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate archived comments: %w", err)
	}

	r.trackQuery(query, time.Since(start), userID)
	return comments, nil
}

// ListGeneratedPosts retrieves a user's generated posts.
func (r *SQLRepository) ListGeneratedPosts(ctx context.Context, userID string) ([]domain.GeneratedPost, error) {
	const query = `
		SELECT id, user_id, subreddit, title, body, post_type, target_audience, status, created_raw
		FROM generated_posts
		WHERE user_id = ?
		ORDER BY created_raw DESC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Database().Error("Generated post listing failed", "error", err.Error(), "userId", userID)
		return nil, fmt.Errorf("failed to list generated posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.GeneratedPost
	for rows.Next() {
		var p domain.GeneratedPost
		var createdRaw string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Subreddit, &p.Title, &p.Body, &p.PostType, &p.TargetAudience, &p.Status, &createdRaw); err != nil {
			return nil, fmt.Errorf("failed to scan generated post: %w", err)
		}
		if created, err := domain.ParseTimestamp(createdRaw); err == nil {
			p.CreatedAt = created
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generated posts: %w", err)
	}

	r.trackQuery(query, time.Since(start), userID)
	return posts, nil
}

// SaveArchivedComment persists one archived comment. The generated row ID is
// written back to the comment.
func (r *SQLRepository) SaveArchivedComment(ctx context.Context, comment *domain.ArchivedComment) error {
	if comment.ID == "" {
		comment.ID = newRowID()
	}
	if comment.ArchivedAt.IsZero() {
		comment.ArchivedAt = time.Now().UTC()
	}

	const insert = `
		INSERT INTO archived_comments (id, user_id, subreddit, title, body, reply, source_url, created_raw, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	createdRaw := ""
	if !comment.CreatedAt.IsZero() {
		createdRaw = comment.CreatedAt.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx, insert,
		comment.ID, comment.UserID, comment.Subreddit, comment.Title, comment.Body,
		comment.Reply, comment.SourceURL, createdRaw, comment.ArchivedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save archived comment: %w", err)
	}
	return nil
}

// SaveGeneratedPost persists one generated post.
func (r *SQLRepository) SaveGeneratedPost(ctx context.Context, post *domain.GeneratedPost) error {
	if post.ID == "" {
		post.ID = newRowID()
	}

	const insert = `
		INSERT INTO generated_posts (id, user_id, subreddit, title, body, post_type, target_audience, status, created_raw)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	createdRaw := ""
	if !post.CreatedAt.IsZero() {
		createdRaw = post.CreatedAt.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx, insert,
		post.ID, post.UserID, post.Subreddit, post.Title, post.Body,
		post.PostType, post.TargetAudience, post.Status, createdRaw)
	if err != nil {
		return fmt.Errorf("failed to save generated post: %w", err)
	}
	return nil
}

func (r *SQLRepository) trackQuery(query string, duration time.Duration, userID string) {
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, userID)
	}
}
