package draft

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/bulletins/pkg/errors"
)

const fileExt = ".draft"

// FileStore is a file-based draft store.
// Drafts are stored as msgpack files in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based draft store.
// If baseDir is empty, defaults to ~/.config/bulletins/drafts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "bulletins", "drafts")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) draftPath(id string) (string, error) {
	if err := errors.ValidateID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, id+fileExt), nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Draft, error) {
	path, err := s.draftPath(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	d, err := readDraft(path)
	s.mu.RUnlock()
	if err != nil || d == nil {
		return nil, err
	}

	if d.IsExpired() {
		s.mu.Lock()
		os.Remove(path)
		s.mu.Unlock()
		return nil, nil
	}
	return d, nil
}

func readDraft(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read draft file")
	}
	d, err := decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse draft %s", filepath.Base(path))
	}
	return d, nil
}

func (s *FileStore) Set(ctx context.Context, d *Draft) error {
	path, err := s.draftPath(d.ID)
	if err != nil {
		return err
	}
	data, err := encode(d)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "marshal draft")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write draft file")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStorage, err, "replace draft file")
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.draftPath(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove draft file")
	}
	return nil
}

// List returns the live drafts in the directory. Unreadable files are
// skipped and expired ones are removed.
func (s *FileStore) List(ctx context.Context) ([]*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read draft dir")
	}

	var out []*Draft
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		d, err := readDraft(path)
		if err != nil || d == nil {
			continue
		}
		if d.IsExpired() {
			os.Remove(path)
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for draft files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
