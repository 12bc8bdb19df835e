// Package prefs persists user preferences (volume, playback rate) across restarts.
package prefs

import (
	"fmt"
	"sync"

	"github.com/metafates/gache"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/where"
)

// Store is a disk-backed float64 map. The zero value is not usable, use New or Default.
type Store struct {
	mu     sync.Mutex
	path   string
	cacher *gache.Cache[map[string]float64]
}

// New opens the store at path on the active filesystem backend.
func New(path string) *Store {
	return &Store{
		path: path,
		cacher: gache.New[map[string]float64](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Default opens the store at where.Preferences().
func Default() *Store {
	return New(where.Preferences())
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (map[string]float64, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]float64), nil
	}
	return cached, nil
}

// Get returns the stored value for key, or def when it is absent or unreadable.
func (s *Store) Get(key string, def float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return def
	}

	if v, ok := saved[key]; ok {
		return v
	}
	return def
}

// Set writes value under key.
func (s *Store) Set(key string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}

	if old, ok := saved[key]; ok && old == value {
		return nil
	}

	saved[key] = value
	if err := s.cacher.Set(saved); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// All returns a copy of every stored preference.
func (s *Store) All() (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(saved))
	for k, v := range saved {
		out[k] = v
	}
	return out, nil
}

// Clear forgets every stored preference.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacher.Set(make(map[string]float64))
}
