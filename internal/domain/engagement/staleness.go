package engagement

import "time"

// DefaultStalenessWindow is how long fetched engagement data stays fresh
// before a dashboard load triggers a re-fetch.
const DefaultStalenessWindow = 5 * time.Minute

// StalenessPolicy decides whether cached engagement data for a user is fresh
// enough to skip a network refresh.
type StalenessPolicy struct {
	Window time.Duration
}

// NewStalenessPolicy returns a policy with the given window, falling back to
// DefaultStalenessWindow when window is not positive.
func NewStalenessPolicy(window time.Duration) StalenessPolicy {
	if window <= 0 {
		window = DefaultStalenessWindow
	}
	return StalenessPolicy{Window: window}
}

// IsStale reports whether data last refreshed at lastRefresh needs
// re-fetching. A nil lastRefresh means the user was never refreshed.
func (p StalenessPolicy) IsStale(lastRefresh *time.Time) bool {
	if lastRefresh == nil {
		return true
	}
	return time.Since(*lastRefresh) > p.Window
}
