package engagement

import "context"

// Repository defines the contract for the per-user engagement and content
// store. Implementations live in the persistence layer.
type Repository interface {
	// ListEngagement retrieves all engagement records for a user.
	ListEngagement(ctx context.Context, userID string) ([]Record, error)

	// ReplaceEngagement atomically swaps a user's engagement records for a
	// freshly fetched listing.
	ReplaceEngagement(ctx context.Context, userID string, records []Record) error

	// ListArchivedComments retrieves a user's archived comments.
	ListArchivedComments(ctx context.Context, userID string) ([]ArchivedComment, error)

	// ListGeneratedPosts retrieves a user's generated posts.
	ListGeneratedPosts(ctx context.Context, userID string) ([]GeneratedPost, error)

	// SaveArchivedComment persists one archived comment.
	SaveArchivedComment(ctx context.Context, comment *ArchivedComment) error

	// SaveGeneratedPost persists one generated post.
	SaveGeneratedPost(ctx context.Context, post *GeneratedPost) error
}

// ProfileFetcher triggers a pull of a user's live Reddit activity into the
// engagement store. Failures are reported but never abort an analytics pass;
// callers fall back to whatever the store already holds.
type ProfileFetcher interface {
	Refresh(ctx context.Context, userID string) error
}
