package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. The single mutex
// serializes version flips, so the latest-flag invariant holds without a
// transaction.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume // id -> record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Resume)}
}

// CreateVersion inserts a record, demoting its predecessor atomically.
func (r *MemoryRepo) CreateVersion(ctx context.Context, rec Resume, prevID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if prevID != "" {
		prev, ok := r.data[prevID]
		if !ok || !prev.IsLatest {
			return ErrVersionConflict
		}
		prev.IsLatest = false
		r.data[prevID] = prev
	}
	r.data[rec.ID] = rec
	return nil
}

// GetByID returns a record by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return rec, nil
}

// GetLatest returns the latest record for a (user, name) pair.
func (r *MemoryRepo) GetLatest(ctx context.Context, userID, name string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.data {
		if rec.UserID == userID && rec.Name == name && rec.IsLatest {
			return rec, nil
		}
	}
	return Resume{}, ErrNotFound
}

// GetChild returns the record whose parent is id.
func (r *MemoryRepo) GetChild(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.data {
		if rec.ParentID != nil && *rec.ParentID == id {
			return rec, nil
		}
	}
	return Resume{}, ErrNotFound
}

// ListByUser returns a user's records matching f, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, f Filter) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.UserID = userID
	out, _ := r.collect(f, 0, 0)
	return out, nil
}

// List returns records matching f across all users with the total count.
func (r *MemoryRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Resume, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	out, total := r.collect(f, limit, offset)
	return out, total, nil
}

func (r *MemoryRepo) collect(f Filter, limit, offset int) ([]Resume, int) {
	r.mu.RLock()
	var matched []Resume
	for _, rec := range r.data {
		if f.Matches(rec) {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].Version > matched[j].Version
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []Resume{}, total
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total
}

var _ Repo = (*MemoryRepo)(nil)
