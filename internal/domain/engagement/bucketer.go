package engagement

import (
	"sort"
	"time"
)

// DefaultChartWindowDays is the trailing window for time-series charting.
const DefaultChartWindowDays = 30

const bucketDateLayout = "2006-01-02"

// BucketDaily folds an engagement listing into UTC calendar-day buckets for
// charting, restricted to the trailing window ending at now. Records with a
// zero CreatedAt (unparseable at the store boundary) are silently excluded.
// Days with no records are omitted; gap filling is a chart-rendering concern.
//
// The function is pure: the same inputs always yield the same ascending
// bucket list.
func BucketDaily(records []Record, windowDays int, now time.Time) []ChartBucket {
	if windowDays <= 0 {
		windowDays = DefaultChartWindowDays
	}
	cutoff := now.UTC().AddDate(0, 0, -windowDays)

	byDate := make(map[string]*ChartBucket)
	for _, rec := range records {
		if rec.CreatedAt.IsZero() || rec.CreatedAt.Before(cutoff) {
			continue
		}
		date := rec.CreatedAt.UTC().Format(bucketDateLayout)
		bucket, ok := byDate[date]
		if !ok {
			bucket = &ChartBucket{Date: date}
			byDate[date] = bucket
		}
		bucket.Score += rec.Score
		bucket.Count++
		bucket.Replies += rec.ReplyCount
	}

	buckets := make([]ChartBucket, 0, len(byDate))
	for _, bucket := range byDate {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })

	return buckets
}
