package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

var _ domain.BlobStore = (*InMemoryBlobStore)(nil)

// InMemoryBlobStore keeps blobs in a map. Data is lost when the process exits.
type InMemoryBlobStore struct {
	store map[string]string

	mu sync.RWMutex
}

func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{
		store: make(map[string]string),
	}
}

func (r *InMemoryBlobStore) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.store[key]
	if !ok {
		return "", domain.ErrBlobNotFound
	}
	return v, nil
}

func (r *InMemoryBlobStore) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[key] = value
	return nil
}

func (r *InMemoryBlobStore) Ping(ctx context.Context) error {
	return nil
}
