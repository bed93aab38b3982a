package engagement

import (
	"math"
	"sort"
)

// DefaultTopSubreddits is the documented consumer-side truncation for the
// per-subreddit leaderboard.
const DefaultTopSubreddits = 8

// Summarize reduces an engagement listing to aggregate counters. It returns
// nil for an empty listing: "no metrics" is a distinct state from "zero
// metrics" and callers must not render zeros for it.
func Summarize(records []Record) *AggregateMetrics {
	if len(records) == 0 {
		return nil
	}

	metrics := &AggregateMetrics{
		TotalItems:           len(records),
		SubredditPerformance: make(map[string]int),
	}

	for _, rec := range records {
		metrics.TotalScore += rec.Score
		metrics.TotalReplies += rec.ReplyCount
		if rec.Subreddit != "" {
			metrics.SubredditPerformance[rec.Subreddit] += rec.Score + rec.ReplyCount
		}
	}

	total := float64(metrics.TotalItems)
	metrics.AvgScore = round2(float64(metrics.TotalScore) / total)
	metrics.EngagementRate = round2(float64(metrics.TotalScore+metrics.TotalReplies) / total)

	return metrics
}

// TopSubreddits sorts the performance map descending by value (name ascending
// on ties, for stable output) and truncates to limit entries.
func TopSubreddits(performance map[string]int, limit int) []SubredditRank {
	if limit <= 0 {
		limit = DefaultTopSubreddits
	}

	ranks := make([]SubredditRank, 0, len(performance))
	for name, value := range performance {
		ranks = append(ranks, SubredditRank{Subreddit: name, Performance: value})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Performance != ranks[j].Performance {
			return ranks[i].Performance > ranks[j].Performance
		}
		return ranks[i].Subreddit < ranks[j].Subreddit
	})

	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
