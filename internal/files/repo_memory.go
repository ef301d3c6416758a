package files

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of FilesRepo.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]File
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[int64]File),
	}
}

// Create assigns the next ID and stores a copy of the file.
func (r *MemoryRepo) Create(ctx context.Context, f File) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	f.ID = r.nextID
	f.Data = append([]byte(nil), f.Data...)
	f.Size = int64(len(f.Data))
	r.data[f.ID] = f
	return f, nil
}

// GetByID returns a file with its payload.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.data[id]
	if !ok {
		return File{}, ErrNotFound
	}
	f.Data = append([]byte(nil), f.Data...)
	return f, nil
}

// ListByOwner returns the owner's files newest first, without payloads.
func (r *MemoryRepo) ListByOwner(ctx context.Context, owner string) ([]File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]File, 0)
	for _, f := range r.data {
		if f.Owner == owner {
			f.Data = nil
			out = append(out, f)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a file.
func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var _ FilesRepo = (*MemoryRepo)(nil)
