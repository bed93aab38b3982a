package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/caching/stores"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/performance"
)

type stubFetcher struct {
	calls    int
	failWith error
}

func (f *stubFetcher) Refresh(_ context.Context, _ string) error {
	f.calls++
	return f.failWith
}

type stubRepo struct {
	records    []engagement.Record
	comments   []engagement.ArchivedComment
	posts      []engagement.GeneratedPost
	listErr    error
	contentErr error
}

func (r *stubRepo) ListEngagement(_ context.Context, _ string) ([]engagement.Record, error) {
	return r.records, r.listErr
}

func (r *stubRepo) ReplaceEngagement(_ context.Context, _ string, records []engagement.Record) error {
	r.records = records
	return nil
}

func (r *stubRepo) ListArchivedComments(_ context.Context, _ string) ([]engagement.ArchivedComment, error) {
	return r.comments, r.contentErr
}

func (r *stubRepo) ListGeneratedPosts(_ context.Context, _ string) ([]engagement.GeneratedPost, error) {
	return r.posts, r.contentErr
}

func (r *stubRepo) SaveArchivedComment(_ context.Context, _ *engagement.ArchivedComment) error {
	return nil
}

func (r *stubRepo) SaveGeneratedPost(_ context.Context, _ *engagement.GeneratedPost) error {
	return nil
}

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		DefaultLevel:  slog.LevelError,
		ChannelLevels: map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)
	return logger
}

func newService(t *testing.T, fetcher *stubFetcher, repo *stubRepo, marks *stores.RefreshMarkStore) *AnalyticsService {
	t.Helper()
	return NewAnalyticsService(
		fetcher,
		repo,
		marks,
		engagement.NewStalenessPolicy(5*time.Minute),
		30,
		newTestLogger(t),
		performance.NewTracker(),
	)
}

func TestLoadAnalytics_RefreshesWhenNoMark(t *testing.T) {
	fetcher := &stubFetcher{}
	repo := &stubRepo{}
	marks := stores.NewRefreshMarkStore()
	svc := newService(t, fetcher, repo, marks)

	snapshot, err := svc.LoadAnalytics(context.Background(), "alice", ContentComments, false)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.False(t, snapshot.LastRefresh.IsZero())
}

func TestLoadAnalytics_SkipsFreshRefresh(t *testing.T) {
	fetcher := &stubFetcher{}
	repo := &stubRepo{}
	marks := stores.NewRefreshMarkStore()
	marks.Set("alice", time.Now().Add(-time.Minute))
	svc := newService(t, fetcher, repo, marks)

	_, err := svc.LoadAnalytics(context.Background(), "alice", ContentComments, false)
	require.NoError(t, err)
	assert.Equal(t, 0, fetcher.calls)
}

func TestLoadAnalytics_ForceOverridesFreshness(t *testing.T) {
	fetcher := &stubFetcher{}
	repo := &stubRepo{}
	marks := stores.NewRefreshMarkStore()
	marks.Set("alice", time.Now())
	svc := newService(t, fetcher, repo, marks)

	_, err := svc.LoadAnalytics(context.Background(), "alice", ContentComments, true)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestLoadAnalytics_RefreshFailureDegrades(t *testing.T) {
	fetcher := &stubFetcher{failWith: fmt.Errorf("rate limited")}
	repo := &stubRepo{
		records: []engagement.Record{
			{ID: "r1", Kind: engagement.KindComment, Subreddit: "golang", Score: 10, ReplyCount: 2},
		},
	}
	marks := stores.NewRefreshMarkStore()
	staleMark := time.Now().Add(-time.Hour)
	marks.Set("alice", staleMark)
	svc := newService(t, fetcher, repo, marks)

	snapshot, err := svc.LoadAnalytics(context.Background(), "alice", ContentComments, false)
	require.NoError(t, err, "a failed refresh must not fail the pass")
	assert.Equal(t, 1, fetcher.calls)
	require.Len(t, snapshot.Records, 1)
	require.NotNil(t, snapshot.Metrics)
	assert.Equal(t, 10, snapshot.Metrics.TotalScore)
	assert.True(t, staleMark.Equal(snapshot.LastRefresh), "failed refresh must not advance the mark")
}

func TestLoadAnalytics_StoreFailurePropagates(t *testing.T) {
	fetcher := &stubFetcher{}
	repo := &stubRepo{listErr: fmt.Errorf("database locked")}
	marks := stores.NewRefreshMarkStore()
	marks.Set("alice", time.Now())
	svc := newService(t, fetcher, repo, marks)

	_, err := svc.LoadAnalytics(context.Background(), "alice", ContentComments, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database locked")
}

func TestLoadAnalytics_ContentFailurePropagates(t *testing.T) {
	fetcher := &stubFetcher{}
	repo := &stubRepo{contentErr: fmt.Errorf("table missing")}
	marks := stores.NewRefreshMarkStore()
	marks.Set("alice", time.Now())
	svc := newService(t, fetcher, repo, marks)

	_, err := svc.LoadAnalytics(context.Background(), "alice", ContentPosts, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table missing")
}

func TestLoadAnalytics_MatchesSelectedKind(t *testing.T) {
	fetcher := &stubFetcher{}
	repo := &stubRepo{
		records: []engagement.Record{
			{
				ID:        "c1",
				Kind:      engagement.KindComment,
				Subreddit: "golang",
				Score:     7,
				Title:     "use context for cancellation",
				CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
			},
		},
		comments: []engagement.ArchivedComment{
			{ID: "a1", Subreddit: "golang", Reply: "Use context for cancellation"},
		},
		posts: []engagement.GeneratedPost{
			{ID: "p1", Subreddit: "startups", Title: "unrelated launch recap"},
		},
	}
	marks := stores.NewRefreshMarkStore()
	marks.Set("alice", time.Now())
	svc := newService(t, fetcher, repo, marks)

	snapshot, err := svc.LoadAnalytics(context.Background(), "alice", ContentComments, false)
	require.NoError(t, err)
	require.Len(t, snapshot.Matched, 1)
	require.NotNil(t, snapshot.Matched[0].Engagement)
	assert.Equal(t, "c1", snapshot.Matched[0].Engagement.ID)
	require.Len(t, snapshot.Chart, 1)

	snapshot, err = svc.LoadAnalytics(context.Background(), "alice", ContentPosts, false)
	require.NoError(t, err)
	require.Len(t, snapshot.Matched, 1)
	assert.Nil(t, snapshot.Matched[0].Engagement)
}

func TestLoadAnalytics_EmptyStore(t *testing.T) {
	fetcher := &stubFetcher{}
	repo := &stubRepo{}
	marks := stores.NewRefreshMarkStore()
	marks.Set("alice", time.Now())
	svc := newService(t, fetcher, repo, marks)

	snapshot, err := svc.LoadAnalytics(context.Background(), "alice", ContentComments, false)
	require.NoError(t, err)
	assert.Nil(t, snapshot.Metrics)
	assert.Empty(t, snapshot.Matched)
	assert.Empty(t, snapshot.Chart)
}
