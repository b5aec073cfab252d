// Package memory provides mutex-guarded in-memory repositories. They back
// every repository when no database is configured and always back the
// hospital administration records.
package memory

import (
	"fmt"
	"sync"

	apperrors "github.com/mediqueue/backend/pkg/errors"
)

// store keeps records in insertion order and hands out copies so callers
// never share memory with the repository.
type store[T any] struct {
	mu    sync.RWMutex
	kind  string
	items []*T
	index map[string]int
	id    func(*T) string
	clone func(*T) *T
}

func newStore[T any](kind string, id func(*T) string, clone func(*T) *T, seed []*T) *store[T] {
	s := &store[T]{
		kind:  kind,
		index: make(map[string]int, len(seed)),
		id:    id,
		clone: clone,
	}
	for _, item := range seed {
		s.index[id(item)] = len(s.items)
		s.items = append(s.items, clone(item))
	}
	return s
}

func shallowClone[T any](item *T) *T {
	c := *item
	return &c
}

func (s *store[T]) notFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", s.kind, id))
}

func (s *store[T]) get(id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, s.notFound(id)
	}
	return s.clone(s.items[i]), nil
}

func (s *store[T]) insert(item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(item)
}

func (s *store[T]) insertLocked(item *T) error {
	id := s.id(item)
	if _, ok := s.index[id]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("%s with id %s already exists", s.kind, id))
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, s.clone(item))
	return nil
}

func (s *store[T]) update(item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(item)
	i, ok := s.index[id]
	if !ok {
		return s.notFound(id)
	}
	s.items[i] = s.clone(item)
	return nil
}

// list returns copies of the records accepted by keep, in insertion order
func (s *store[T]) list(keep func(*T) bool) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*T, 0, len(s.items))
	for _, item := range s.items {
		if keep == nil || keep(item) {
			out = append(out, s.clone(item))
		}
	}
	return out
}
