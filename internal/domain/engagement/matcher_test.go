package engagement

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comment(subreddit, title, reply, sourceURL string) ArchivedComment {
	return ArchivedComment{
		Subreddit: subreddit,
		Title:     title,
		Reply:     reply,
		SourceURL: sourceURL,
		CreatedAt: time.Now(),
	}
}

func TestMatchContent_PermalinkIdentity(t *testing.T) {
	items := []ContentItem{
		comment("saas", "Some title", "reply text", "https://www.reddit.com/r/saas/comments/abc123/some_title/"),
	}
	records := []Record{
		{ID: "1", Subreddit: "golang", Title: "unrelated", Permalink: "/r/golang/comments/zzz999/unrelated/"},
		{ID: "2", Subreddit: "other", Title: "different title entirely", Permalink: "/r/saas/comments/ABC123/some_title/", Score: 42},
	}

	matched := MatchContent(items, records)
	require.Len(t, matched, 1)
	require.NotNil(t, matched[0].Engagement)
	assert.Equal(t, "2", matched[0].Engagement.ID)
	assert.Equal(t, 42, matched[0].Engagement.Score)
}

func TestMatchContent_SubstringOverlap(t *testing.T) {
	t.Run("item title inside record title", func(t *testing.T) {
		items := []ContentItem{comment("saas", "How to grow", "Try X", "")}
		records := []Record{{ID: "1", Subreddit: "saas", Title: "How to grow a startup", Score: 15, ReplyCount: 2}}

		matched := MatchContent(items, records)
		require.NotNil(t, matched[0].Engagement)
		assert.Equal(t, 15, matched[0].Engagement.Score)
	})

	t.Run("record title inside item title", func(t *testing.T) {
		items := []ContentItem{comment("saas", "How to grow a startup fast", "", "")}
		records := []Record{{ID: "1", Subreddit: "saas", Title: "how to grow a startup"}}

		matched := MatchContent(items, records)
		assert.NotNil(t, matched[0].Engagement)
	})

	t.Run("body prefix inside record text", func(t *testing.T) {
		items := []ContentItem{comment("saas", "", "You should really look into cohort retention analysis before scaling spend", "")}
		records := []Record{{ID: "1", Subreddit: "saas", Title: "you should really look into cohort retention analysis before scaling spend and more"}}

		matched := MatchContent(items, records)
		assert.NotNil(t, matched[0].Engagement)
	})

	t.Run("different subreddit never matches", func(t *testing.T) {
		items := []ContentItem{comment("saas", "How to grow", "", "")}
		records := []Record{{ID: "1", Subreddit: "startups", Title: "How to grow a startup"}}

		matched := MatchContent(items, records)
		assert.Nil(t, matched[0].Engagement)
	})
}

func TestMatchContent_Totality(t *testing.T) {
	var items []ContentItem
	for i := 0; i < 7; i++ {
		items = append(items, comment("saas", fmt.Sprintf("title %d", i), "", ""))
	}

	t.Run("empty engagement list", func(t *testing.T) {
		matched := MatchContent(items, nil)
		require.Len(t, matched, len(items))
		for i, m := range matched {
			assert.Nil(t, m.Engagement)
			assert.Equal(t, fmt.Sprintf("title %d", i), m.Item.ContentTitle())
		}
	})

	t.Run("order preserved with partial matches", func(t *testing.T) {
		records := []Record{{ID: "1", Subreddit: "saas", Title: "title 3"}}
		matched := MatchContent(items, records)
		require.Len(t, matched, len(items))
		for i, m := range matched {
			assert.Equal(t, fmt.Sprintf("title %d", i), m.Item.ContentTitle())
		}
		assert.NotNil(t, matched[3].Engagement)
	})
}

func TestMatchContent_Exclusivity(t *testing.T) {
	// Two items that could both match the single record; the first in input
	// order wins and the second goes unmatched.
	items := []ContentItem{
		comment("saas", "How to grow", "", ""),
		comment("saas", "How to grow", "", ""),
	}
	records := []Record{{ID: "1", Subreddit: "saas", Title: "How to grow a startup"}}

	matched := MatchContent(items, records)
	require.Len(t, matched, 2)
	assert.NotNil(t, matched[0].Engagement)
	assert.Nil(t, matched[1].Engagement)
}

func TestMatchContent_DuplicatePermalinks(t *testing.T) {
	items := []ContentItem{
		comment("saas", "t", "", "/r/saas/comments/abc123/t/"),
	}
	records := []Record{
		{ID: "first", Permalink: "/r/saas/comments/abc123/t/"},
		{ID: "second", Permalink: "/r/saas/comments/abc123/t/"},
	}

	matched := MatchContent(items, records)
	require.NotNil(t, matched[0].Engagement)
	assert.Equal(t, "first", matched[0].Engagement.ID)
}

func TestSubmissionID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.reddit.com/r/saas/comments/abc123/slug/", "abc123"},
		{"/r/saas/comments/abc123", "abc123"},
		{"/r/saas/comments/ABC123/slug/?context=3", "abc123"},
		{"https://www.reddit.com/r/saas/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, submissionID(tt.raw), "input %q", tt.raw)
	}
}
