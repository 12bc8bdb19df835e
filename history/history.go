// Package history remembers the media opened with playdeck so the shell can suggest it back.
package history

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Entry is one remembered media target.
type Entry struct {
	Target     string    `json:"target"`
	Title      string    `json:"title,omitempty"`
	Rank       int       `json:"rank"`
	LastOpened time.Time `json:"lastOpened"`
}

type Store struct {
	mu     sync.Mutex
	cacher *gache.Cache[map[string]*Entry]
	now    func() time.Time
}

func New(path string) *Store {
	return &Store{
		cacher: gache.New[map[string]*Entry](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
		now: time.Now,
	}
}

// Default opens the store at where.History().
func Default() *Store {
	return New(where.History())
}

func (s *Store) load() (map[string]*Entry, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Remember records target, or bumps its rank when it was opened before.
func (s *Store) Remember(target, title string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	entry, ok := saved[target]
	if !ok {
		entry = &Entry{Target: target}
		saved[target] = entry
	}

	entry.Rank++
	entry.LastOpened = s.now()
	if title != "" {
		entry.Title = title
	}

	if err := s.cacher.Set(saved); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Entries returns every remembered target, most opened first.
func (s *Store) Entries() ([]*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sortEntries(entries)
	return entries, nil
}

// Suggest returns the targets fuzzily matching q, by rank then recency.
func (s *Store) Suggest(q string) []string {
	entries, err := s.Entries()
	if err != nil {
		return nil
	}

	q = strings.ToLower(strings.TrimSpace(q))
	matched := lo.Filter(entries, func(e *Entry, _ int) bool {
		return fuzzy.MatchFold(q, e.Target) || (e.Title != "" && fuzzy.MatchFold(q, e.Title))
	})

	return lo.Map(matched, func(e *Entry, _ int) string {
		return e.Target
	})
}

// Forget removes target.
func (s *Store) Forget(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.load()
	if err != nil {
		return err
	}

	delete(saved, target)
	return s.cacher.Set(saved)
}

func sortEntries(entries []*Entry) {
	slices.SortFunc(entries, func(a, b *Entry) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return b.LastOpened.Compare(a.LastOpened)
	})
}
