package reddit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	engagement.Repository
	replaced map[string][]engagement.Record
	failWith error
}

func (f *fakeRepo) ReplaceEngagement(_ context.Context, userID string, records []engagement.Record) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.replaced == nil {
		f.replaced = make(map[string][]engagement.Record)
	}
	f.replaced[userID] = records
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

const overviewFixture = `{
	"data": {
		"children": [
			{"kind": "t3", "data": {
				"id": "abc123", "subreddit": "saas", "score": 15, "num_comments": 2,
				"created_utc": 1714557600, "permalink": "/r/saas/comments/abc123/how_to_grow/",
				"title": "How to grow a startup"
			}},
			{"kind": "t1", "data": {
				"id": "def456", "subreddit": "golang", "score": 3,
				"created_utc": 1714561200.5, "permalink": "/r/golang/comments/xyz/slug/def456/",
				"body": "Profile with pprof before guessing."
			}},
			{"kind": "t5", "data": {"id": "ignored"}}
		]
	}
}`

func TestRefresh_NormalizesListing(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, overviewFixture)
	}))
	defer srv.Close()

	repo := &fakeRepo{}
	fetcher := NewHTTPProfileFetcherWithClient(srv.Client(), srv.URL, repo, newTestLogger(t))

	require.NoError(t, fetcher.Refresh(context.Background(), "alice"))

	assert.Equal(t, "/user/alice/overview.json", gotPath)
	assert.NotEmpty(t, gotUA)

	records := repo.replaced["alice"]
	require.Len(t, records, 2, "unknown listing kinds are skipped")

	post := records[0]
	assert.Equal(t, engagement.KindPost, post.Kind)
	assert.Equal(t, "abc123", post.ID)
	assert.Equal(t, 15, post.Score)
	assert.Equal(t, 2, post.ReplyCount)
	assert.Equal(t, "How to grow a startup", post.Title)
	assert.True(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Equal(post.CreatedAt))

	comment := records[1]
	assert.Equal(t, engagement.KindComment, comment.Kind)
	assert.Equal(t, "Profile with pprof before guessing.", comment.Title)
}

func TestRefresh_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := &fakeRepo{}
	fetcher := NewHTTPProfileFetcherWithClient(srv.Client(), srv.URL, repo, newTestLogger(t))

	err := fetcher.Refresh(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Empty(t, repo.replaced)
}

func TestRefresh_StoreFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, overviewFixture)
	}))
	defer srv.Close()

	repo := &fakeRepo{failWith: fmt.Errorf("disk full")}
	fetcher := NewHTTPProfileFetcherWithClient(srv.Client(), srv.URL, repo, newTestLogger(t))

	err := fetcher.Refresh(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSnippet(t *testing.T) {
	long := make([]byte, commentSnippetLen*2)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, snippet(string(long)), commentSnippetLen)
	assert.Equal(t, "short", snippet("short"))
}
