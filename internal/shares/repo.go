package shares

import "context"

// Repo defines persistence operations for share links.
type Repo interface {
	Create(ctx context.Context, link ShareLink) error
	GetByToken(ctx context.Context, token string) (ShareLink, error)
	// ListByOwner returns an owner's links, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]ShareLink, error)
	// Delete removes a link by token. ErrNotFound if absent.
	Delete(ctx context.Context, token string) error
	// DeleteOwned removes a link iff it is owned by ownerID. ErrNotFound
	// both for missing tokens and foreign tokens.
	DeleteOwned(ctx context.Context, ownerID, token string) error
}
