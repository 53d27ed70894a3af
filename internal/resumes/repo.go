package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	// CreateVersion inserts rec. When prevID is non-empty it clears the
	// predecessor's latest flag in the same atomic unit; if the predecessor
	// is no longer latest, ErrVersionConflict is returned and nothing is
	// written.
	CreateVersion(ctx context.Context, rec Resume, prevID string) error
	GetByID(ctx context.Context, id string) (Resume, error)
	// GetLatest returns the record with is_latest set for (userID, name).
	GetLatest(ctx context.Context, userID, name string) (Resume, error)
	// GetChild returns the record whose ParentID is id.
	GetChild(ctx context.Context, id string) (Resume, error)
	// ListByUser returns a user's records matching f, newest first.
	ListByUser(ctx context.Context, userID string, f Filter) ([]Resume, error)
	// List returns records matching f across all users with the total count.
	List(ctx context.Context, f Filter, limit, offset int) ([]Resume, int, error)
}
