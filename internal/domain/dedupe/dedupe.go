// Package dedupe collapses repeated publication rows by exact title.
package dedupe

import "github.com/okian/facultyhub/internal/domain/model"

// Deduper remembers keys it has already seen.
type Deduper interface {
	// SeenAndRecord reports whether key was seen before and records it if not.
	SeenAndRecord(key string) bool

	Size() int
}

// titleSet implements Deduper with a plain map. It is not safe for
// concurrent use; every request builds its own.
type titleSet struct {
	seen map[string]struct{}
}

// NewTitleSet creates an empty Deduper.
func NewTitleSet(opts ...Option) Deduper {
	s := &titleSet{}
	cfg := settings{}
	for _, opt := range opts {
		opt(&cfg)
	}
	s.seen = make(map[string]struct{}, cfg.capacity)
	return s
}

func (s *titleSet) SeenAndRecord(key string) bool {
	if _, ok := s.seen[key]; ok {
		return true
	}
	s.seen[key] = struct{}{}
	return false
}

func (s *titleSet) Size() int {
	return len(s.seen)
}

// ByKey keeps the first element for every distinct key, preserving order.
// Keys compare exactly: no case folding and no trimming.
func ByKey[T any](items []T, key func(T) string) []T {
	set := NewTitleSet(WithCapacity(len(items)))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if set.SeenAndRecord(key(it)) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// ByTitle removes publications whose title already appeared earlier in pubs.
func ByTitle(pubs []model.Publication) []model.Publication {
	return ByKey(pubs, func(p model.Publication) string { return p.Title })
}
