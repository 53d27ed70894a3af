package shares

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]ShareLink // token -> link
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]ShareLink)}
}

// Create stores a new link.
func (r *MemoryRepo) Create(ctx context.Context, link ShareLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[link.Token] = link
	return nil
}

// GetByToken returns a link by token.
func (r *MemoryRepo) GetByToken(ctx context.Context, token string) (ShareLink, error) {
	if err := ctx.Err(); err != nil {
		return ShareLink{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	link, ok := r.data[token]
	if !ok {
		return ShareLink{}, ErrNotFound
	}
	return link, nil
}

// ListByOwner returns an owner's links, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]ShareLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []ShareLink
	for _, link := range r.data {
		if link.OwnerID == ownerID {
			out = append(out, link)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a link by token.
func (r *MemoryRepo) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[token]; !ok {
		return ErrNotFound
	}
	delete(r.data, token)
	return nil
}

// DeleteOwned removes a link iff owned by ownerID.
func (r *MemoryRepo) DeleteOwned(ctx context.Context, ownerID, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.data[token]
	if !ok || link.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.data, token)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
