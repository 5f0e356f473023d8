package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
)

// Memory is an in-process Repository.
type Memory struct {
	mu       sync.RWMutex
	masters  map[string]document.Master
	versions map[string][]document.Version
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		masters:  make(map[string]document.Master),
		versions: make(map[string][]document.Version),
	}
}

func (s *Memory) CreateMaster(ctx context.Context, m document.Master) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.masters[m.ID]; ok {
		return errors.New(errors.ErrCodeConflict, "document %q already exists", m.ID)
	}
	s.masters[m.ID] = m
	return nil
}

func (s *Memory) GetMaster(ctx context.Context, id string) (document.Master, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.masters[id]
	if !ok {
		return document.Master{}, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
	}
	return m, nil
}

func (s *Memory) ListMasters(ctx context.Context, kind document.Kind) ([]document.Master, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]document.Master, 0, len(s.masters))
	for _, m := range s.masters {
		if kind == "" || m.Kind == kind {
			out = append(out, m)
		}
	}
	sortMasters(out)
	return out, nil
}

// sortMasters orders newest first, breaking ties by ID.
func sortMasters(ms []document.Master) {
	sort.Slice(ms, func(i, j int) bool {
		if !ms[i].CreatedAt.Equal(ms[j].CreatedAt) {
			return ms[i].CreatedAt.After(ms[j].CreatedAt)
		}
		return ms[i].ID < ms[j].ID
	})
}

func (s *Memory) UpdateMaster(ctx context.Context, m document.Master) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.masters[m.ID]
	if !ok {
		return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", m.ID)
	}
	cur.Name = m.Name
	cur.Description = m.Description
	cur.TemplateID = m.TemplateID
	cur.UpdatedAt = time.Now().UTC()
	s.masters[m.ID] = cur
	return nil
}

func (s *Memory) SetStatus(ctx context.Context, id string, status document.Status) (document.Master, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.masters[id]
	if !ok {
		return document.Master{}, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
	}
	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	s.masters[id] = m
	return m, nil
}

func (s *Memory) AddVersion(ctx context.Context, v document.Version, publish bool) (document.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.masters[v.MasterID]
	if !ok {
		return document.Version{}, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", v.MasterID)
	}
	if publish && m.Status == document.StatusArchived {
		return document.Version{}, errors.New(errors.ErrCodeConflict, "document %q is archived", v.MasterID)
	}
	v.Number = m.CurrentVersion + 1
	v.Content = v.Content.Clone()
	s.versions[v.MasterID] = append(s.versions[v.MasterID], v)

	m.CurrentVersion = v.Number
	if publish {
		m.Status = document.StatusPublished
	}
	m.UpdatedAt = time.Now().UTC()
	s.masters[m.ID] = m
	return v, nil
}

func (s *Memory) GetVersion(ctx context.Context, masterID string, n int) (document.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.versions[masterID] {
		if v.Number == n {
			v.Content = v.Content.Clone()
			return v, nil
		}
	}
	return document.Version{}, errors.New(errors.ErrCodeVersionNotFound, "version %d of document %q not found", n, masterID)
}

func (s *Memory) ListVersions(ctx context.Context, masterID string) ([]document.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.masters[masterID]; !ok {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", masterID)
	}
	vs := s.versions[masterID]
	out := make([]document.Version, len(vs))
	for i, v := range vs {
		v.Content = v.Content.Clone()
		out[i] = v
	}
	return out, nil
}

func (s *Memory) Close(ctx context.Context) error { return nil }

var _ Repository = (*Memory)(nil)
