// Package engagement holds the domain model and pure computation for
// reconciling locally authored Reddit content against externally observed
// engagement data.
package engagement

import "time"

// RecordKind distinguishes posts from comments in an engagement listing.
type RecordKind string

const (
	KindPost    RecordKind = "post"
	KindComment RecordKind = "comment"
)

// Record is one externally observed Reddit post or comment belonging to a
// user. Records are created by the profile fetcher, persisted, and read-only
// thereafter until the next refresh replaces them.
type Record struct {
	ID         string     `json:"id"`
	Kind       RecordKind `json:"kind"`
	Subreddit  string     `json:"subreddit"`
	Score      int        `json:"score"`
	ReplyCount int        `json:"replyCount"`
	// CreatedAt is zero when the stored timestamp could not be parsed.
	// Such records still count toward totals but are excluded from charting.
	CreatedAt time.Time `json:"createdAt"`
	Permalink string    `json:"permalink"`
	Title     string    `json:"title"` // post title or comment-text snippet
}

// ContentItem is the matcher's view of a locally authored artifact: an
// archived comment or a generated post. Both variants expose the same
// matching surface.
type ContentItem interface {
	ContentSubreddit() string
	ContentTitle() string
	ContentBody() string
	ContentURL() string
	ContentCreatedAt() time.Time
}

// ArchivedComment is a comment the user wrote and archived through the
// dashboard, awaiting reconciliation with live engagement data.
type ArchivedComment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Subreddit  string    `json:"subreddit"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Reply      string    `json:"reply"`
	SourceURL  string    `json:"sourceUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	ArchivedAt time.Time `json:"archivedAt"`
}

func (c ArchivedComment) ContentSubreddit() string    { return c.Subreddit }
func (c ArchivedComment) ContentTitle() string        { return c.Title }
func (c ArchivedComment) ContentBody() string         { return c.Reply }
func (c ArchivedComment) ContentURL() string          { return c.SourceURL }
func (c ArchivedComment) ContentCreatedAt() time.Time { return c.CreatedAt }

// GeneratedPost is a post produced by the content workflow. It has no source
// URL, so it can only match engagement records by the substring rule.
type GeneratedPost struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Subreddit      string    `json:"subreddit"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	PostType       string    `json:"postType"`
	TargetAudience string    `json:"targetAudience"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (p GeneratedPost) ContentSubreddit() string    { return p.Subreddit }
func (p GeneratedPost) ContentTitle() string        { return p.Title }
func (p GeneratedPost) ContentBody() string         { return p.Body }
func (p GeneratedPost) ContentURL() string          { return "" }
func (p GeneratedPost) ContentCreatedAt() time.Time { return p.CreatedAt }

// MatchedContentItem pairs a content item with the engagement record claimed
// for it, if any. The association is recomputed on every reconciliation pass
// and never written back to storage.
type MatchedContentItem struct {
	Item       ContentItem `json:"item"`
	Engagement *Record     `json:"engagement,omitempty"`
}

// AggregateMetrics is a derived, stateless snapshot over a record list.
type AggregateMetrics struct {
	TotalItems     int     `json:"totalItems"`
	TotalScore     int     `json:"totalScore"`
	TotalReplies   int     `json:"totalReplies"`
	AvgScore       float64 `json:"avgScore"`
	EngagementRate float64 `json:"engagementRate"`
	// SubredditPerformance maps subreddit name to the sum of score plus
	// reply count across that subreddit's records. Unsorted; display
	// ordering is a consumer concern (see TopSubreddits).
	SubredditPerformance map[string]int `json:"subredditPerformance"`
}

// SubredditRank is one row of the per-subreddit leaderboard.
type SubredditRank struct {
	Subreddit   string `json:"subreddit"`
	Performance int    `json:"performance"`
}

// ChartBucket aggregates one UTC calendar day of engagement.
type ChartBucket struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Score   int    `json:"score"`
	Count   int    `json:"count"`
	Replies int    `json:"replies"`
}

// Snapshot bundles everything a dashboard view needs for one user.
type Snapshot struct {
	Records     []Record             `json:"engagementRecords"`
	Matched     []MatchedContentItem `json:"matchedContent"`
	Metrics     *AggregateMetrics    `json:"metrics"` // nil when no records
	Chart       []ChartBucket        `json:"chart"`
	LastRefresh time.Time            `json:"lastRefresh"` // zero when never refreshed
}
