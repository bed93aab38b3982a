// Package reddit implements the external profile fetcher against Reddit's
// public listing API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/pkg/config"
)

const commentSnippetLen = 160

// HTTPProfileFetcher pulls a user's recent posts and comments from Reddit's
// overview listing and replaces the stored engagement set. Request timeouts
// are owned by the injected http.Client; the fetcher imposes none of its own.
type HTTPProfileFetcher struct {
	client       *http.Client
	baseURL      string
	userAgent    string
	listingLimit int
	repo         engagement.Repository
	logger       *logging.ChanneledLogger
}

// NewHTTPProfileFetcher creates a fetcher with configuration defaults.
func NewHTTPProfileFetcher(repo engagement.Repository, logger *logging.ChanneledLogger) *HTTPProfileFetcher {
	return &HTTPProfileFetcher{
		client:       &http.Client{Timeout: config.RedditRequestTimeout},
		baseURL:      config.RedditBaseURL,
		userAgent:    config.RedditUserAgent,
		listingLimit: config.RedditListingLimit,
		repo:         repo,
		logger:       logger,
	}
}

// NewHTTPProfileFetcherWithClient creates a fetcher against a specific base
// URL and client.
func NewHTTPProfileFetcherWithClient(client *http.Client, baseURL string, repo engagement.Repository, logger *logging.ChanneledLogger) *HTTPProfileFetcher {
	return &HTTPProfileFetcher{
		client:       client,
		baseURL:      baseURL,
		userAgent:    config.RedditUserAgent,
		listingLimit: config.RedditListingLimit,
		repo:         repo,
		logger:       logger,
	}
}

// listingEnvelope mirrors the subset of Reddit's listing response we consume.
type listingEnvelope struct {
	Data struct {
		Children []struct {
			Kind string    `json:"kind"` // t1 = comment, t3 = post
			Data thingData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type thingData struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
}

// Refresh pulls the user's overview listing and atomically replaces their
// stored engagement records.
func (f *HTTPProfileFetcher) Refresh(ctx context.Context, userID string) error {
	start := time.Now()

	endpoint := fmt.Sprintf("%s/user/%s/overview.json?limit=%d&raw_json=1",
		f.baseURL, url.PathEscape(userID), f.listingLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build reddit request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Reddit().Error("Profile fetch failed", "userId", userID, "error", err.Error())
		return fmt.Errorf("reddit profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Reddit().Error("Profile fetch returned non-OK status",
			"userId", userID, "status", resp.StatusCode)
		return fmt.Errorf("reddit profile fetch returned status %d", resp.StatusCode)
	}

	var envelope listingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode reddit listing: %w", err)
	}

	records := make([]engagement.Record, 0, len(envelope.Data.Children))
	for _, child := range envelope.Data.Children {
		rec, ok := normalizeThing(child.Kind, child.Data)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if err := f.repo.ReplaceEngagement(ctx, userID, records); err != nil {
		return fmt.Errorf("failed to store fetched engagement: %w", err)
	}

	f.logger.Reddit().Info("Profile refresh completed",
		"userId", userID, "records", len(records), "duration", time.Since(start))
	return nil
}

// normalizeThing converts one listing child into an engagement record.
// Unknown kinds are skipped.
func normalizeThing(kind string, data thingData) (engagement.Record, bool) {
	rec := engagement.Record{
		ID:         data.ID,
		Subreddit:  data.Subreddit,
		Score:      data.Score,
		ReplyCount: data.NumComments,
		Permalink:  data.Permalink,
	}

	switch kind {
	case "t3":
		rec.Kind = engagement.KindPost
		rec.Title = data.Title
	case "t1":
		rec.Kind = engagement.KindComment
		rec.Title = snippet(data.Body)
	default:
		return engagement.Record{}, false
	}

	if data.CreatedUTC > 0 {
		if created, err := engagement.ParseTimestampValue(data.CreatedUTC); err == nil {
			rec.CreatedAt = created
		}
	}

	return rec, true
}

func snippet(body string) string {
	if len(body) <= commentSnippetLen {
		return body
	}
	return body[:commentSnippetLen]
}
