// Package cas stores build records in a JSON file inside each workspace.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildInfoStore = (*Store)(nil)

// Store implements ports.BuildInfoStore using one flat JSON file per workspace.
// Files are loaded on first use and cached for the lifetime of the Store.
type Store struct {
	mu    sync.RWMutex
	files map[string]map[string]domain.BuildInfo
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{files: make(map[string]map[string]domain.BuildInfo)}
}

// Get retrieves the build record stored under key.
func (s *Store) Get(root, key string) (*domain.BuildInfo, error) {
	records, err := s.records(domain.DefaultStatePath(root))
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := records[key]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the build record and persists the workspace file.
func (s *Store) Put(root string, info domain.BuildInfo) error {
	path := domain.DefaultStatePath(root)
	records, err := s.records(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records[info.Key()] = info
	return save(path, records)
}

func (s *Store) records(path string) (map[string]domain.BuildInfo, error) {
	path = filepath.Clean(path)

	s.mu.RLock()
	records, ok := s.files[path]
	s.mu.RUnlock()
	if ok {
		return records, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if records, ok := s.files[path]; ok {
		return records, nil
	}

	records, err := load(path)
	if err != nil {
		return nil, err
	}
	s.files[path] = records
	return records, nil
}

func load(path string) (map[string]domain.BuildInfo, error) {
	records := make(map[string]domain.BuildInfo)

	//nolint:gosec // Path is derived from the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return records, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}

	if len(data) == 0 {
		return records, nil
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", path)
	}

	return records, nil
}

func save(path string, records map[string]domain.BuildInfo) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}

	//nolint:gosec // Path is derived from the workspace root
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}

	return nil
}
