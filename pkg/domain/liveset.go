package domain

// LiveSet is a snapshot of the items that currently exist.
// It remembers the order in which the window manager enumerated them so that
// rebuilding history from it is deterministic for a given query.
type LiveSet[T comparable] struct {
	order []T
	index map[T]struct{}
}

// NewLiveSet builds a LiveSet, dropping duplicates.
func NewLiveSet[T comparable](items ...T) LiveSet[T] {
	s := LiveSet[T]{
		order: make([]T, 0, len(items)),
		index: make(map[T]struct{}, len(items)),
	}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts an item if it is not already present.
func (s *LiveSet[T]) Add(item T) {
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	if _, ok := s.index[item]; ok {
		return
	}
	s.index[item] = struct{}{}
	s.order = append(s.order, item)
}

// Has reports whether the item is live.
func (s LiveSet[T]) Has(item T) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of live items.
func (s LiveSet[T]) Len() int {
	return len(s.order)
}

// Items returns the live items in enumeration order.
func (s LiveSet[T]) Items() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}
