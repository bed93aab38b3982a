package engagement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketDaily_WindowFilter(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{Score: 1, CreatedAt: now.AddDate(0, 0, -31)}, // outside window
		{Score: 2, CreatedAt: now.AddDate(0, 0, -29)}, // inside
		{Score: 3, CreatedAt: now.AddDate(0, 0, -1)},  // inside
	}

	buckets := BucketDaily(records, 30, now)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-05-17", buckets[0].Date)
	assert.Equal(t, 2, buckets[0].Score)
	assert.Equal(t, "2024-06-14", buckets[1].Date)
	assert.Equal(t, 3, buckets[1].Score)
}

func TestBucketDaily_GroupsByUTCDate(t *testing.T) {
	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	// Same instant expressed with and without an explicit zone lands in the
	// same UTC calendar-date bucket after boundary normalization.
	withZone, err := ParseTimestamp("2024-05-01T10:00:00Z")
	require.NoError(t, err)
	withoutZone, err := ParseTimestamp("2024-05-01T10:00:00")
	require.NoError(t, err)

	records := []Record{
		{Score: 1, ReplyCount: 1, CreatedAt: withZone},
		{Score: 2, ReplyCount: 2, CreatedAt: withoutZone},
	}

	buckets := BucketDaily(records, 30, now)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-05-01", buckets[0].Date)
	assert.Equal(t, 3, buckets[0].Score)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 3, buckets[0].Replies)
}

func TestBucketDaily_ExcludesZeroTimestamps(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Score: 10}, // unparseable at store boundary, CreatedAt zero
		{Score: 5, CreatedAt: now.AddDate(0, 0, -2)},
	}

	buckets := BucketDaily(records, 30, now)
	require.Len(t, buckets, 1)
	assert.Equal(t, 5, buckets[0].Score)
}

func TestBucketDaily_Idempotent(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Score: 3, ReplyCount: 1, CreatedAt: now.AddDate(0, 0, -3)},
		{Score: 1, ReplyCount: 0, CreatedAt: now.AddDate(0, 0, -3)},
		{Score: 7, ReplyCount: 2, CreatedAt: now.AddDate(0, 0, -10)},
		{Score: -2, ReplyCount: 5, CreatedAt: now.AddDate(0, 0, -20)},
	}

	first := BucketDaily(records, 30, now)
	second := BucketDaily(records, 30, now)
	assert.Equal(t, first, second)

	// Ascending by date.
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Date, first[i].Date)
	}
}

func TestBucketDaily_EmptyInput(t *testing.T) {
	buckets := BucketDaily(nil, 30, time.Now())
	assert.Empty(t, buckets)
}
