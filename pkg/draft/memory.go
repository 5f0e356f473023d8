package draft

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps drafts in a map.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]*Draft

	// beforeEvict runs between the read and write locks of Get. Tests only.
	beforeEvict func()
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]*Draft)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Draft, error) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if d.IsExpired() {
		if s.beforeEvict != nil {
			s.beforeEvict()
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		// A concurrent Set may have replaced the entry.
		d, ok = s.drafts[id]
		if !ok {
			return nil, nil
		}
		if d.IsExpired() {
			delete(s.drafts, id)
			return nil, nil
		}
	}
	return d.Clone(), nil
}

func (s *MemoryStore) Set(ctx context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		if !d.IsExpired() {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
