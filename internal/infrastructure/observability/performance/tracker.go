package performance

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Tracker manages performance markers and flags slow operations.
type Tracker struct {
	markers    map[string]*Marker
	thresholds *Thresholds
	mu         sync.RWMutex
	started    time.Time
	maxMarkers int
}

// Thresholds defines per-operation-family slow thresholds.
type Thresholds struct {
	AnalyticsLoad time.Duration `json:"analyticsLoad"`
	RedditFetch   time.Duration `json:"redditFetch"`
	DatabaseQuery time.Duration `json:"databaseQuery"`
	Default       time.Duration `json:"default"`
}

// DefaultThresholds returns sensible slow-operation thresholds.
func DefaultThresholds() *Thresholds {
	return &Thresholds{
		AnalyticsLoad: time.Second,
		RedditFetch:   5 * time.Second,
		DatabaseQuery: 50 * time.Millisecond,
		Default:       2 * time.Second,
	}
}

// NewTracker creates a new performance tracker.
func NewTracker() *Tracker {
	return &Tracker{
		markers:    make(map[string]*Marker),
		thresholds: DefaultThresholds(),
		started:    time.Now(),
		maxMarkers: 10000,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation, userID string) *Marker {
	marker := &Marker{
		Operation: operation,
		UserID:    userID,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true,
	}

	markerID := fmt.Sprintf("%s_%s_%d", userID, operation, time.Now().UnixNano())

	t.mu.Lock()
	t.markers[markerID] = marker
	t.mu.Unlock()

	return marker
}

// IsSlow reports whether a completed marker exceeded its family threshold.
func (t *Tracker) IsSlow(marker *Marker) bool {
	if marker == nil || !marker.Completed {
		return false
	}
	threshold := t.thresholds.Default
	switch {
	case strings.Contains(marker.Operation, "analytics"):
		threshold = t.thresholds.AnalyticsLoad
	case strings.Contains(marker.Operation, "reddit"):
		threshold = t.thresholds.RedditFetch
	case strings.Contains(marker.Operation, "db"):
		threshold = t.thresholds.DatabaseQuery
	}
	return marker.Duration > threshold
}

// GetRecentMetrics returns markers completed within the specified duration.
func (t *Tracker) GetRecentMetrics(userID string, within time.Duration) []Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cutoff := time.Now().Add(-within)
	var metrics []Marker
	for _, marker := range t.markers {
		if marker.UserID == userID && marker.Completed && marker.EndTime.After(cutoff) {
			metrics = append(metrics, *marker)
		}
	}
	return metrics
}

// Cleanup removes old completed markers to prevent unbounded growth.
func (t *Tracker) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour)
	for id, marker := range t.markers {
		if marker.Completed && marker.EndTime.Before(cutoff) {
			delete(t.markers, id)
		}
	}

	if len(t.markers) > t.maxMarkers {
		count := 0
		for id := range t.markers {
			if count > t.maxMarkers/2 {
				delete(t.markers, id)
			}
			count++
		}
	}
}

// Stats returns overall tracker statistics.
func (t *Tracker) Stats() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	active, completed := 0, 0
	for _, marker := range t.markers {
		if marker.Completed {
			completed++
		} else {
			active++
		}
	}

	return map[string]any{
		"trackerUptime":       time.Since(t.started).String(),
		"totalMarkers":        len(t.markers),
		"activeOperations":    active,
		"completedOperations": completed,
	}
}
