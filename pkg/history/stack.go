package history

// DefaultCapacity is the history bound used when none is configured.
const DefaultCapacity = 512

// Stack is a bounded, deduplicated, recency-ordered list of items.
type Stack[T comparable] struct {
	items    []T
	capacity int
}

// NewStack creates an empty stack. A non-positive capacity selects DefaultCapacity.
func NewStack[T comparable](capacity int) *Stack[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack[T]{
		items:    make([]T, 0, min(capacity, 64)),
		capacity: capacity,
	}
}

// Push moves item to rank 0, inserting it if absent, and trims the tail to capacity.
// It returns how many entries were evicted from the tail.
func (s *Stack[T]) Push(item T) int {
	if i := s.Index(item); i >= 0 {
		s.remove(i)
	}
	s.items = append(s.items, item)
	copy(s.items[1:], s.items[:len(s.items)-1])
	s.items[0] = item
	return s.truncate()
}

// Commit reinserts the item a cycle session settled on at the front.
func (s *Stack[T]) Commit(item T) int {
	return s.Push(item)
}

// PruneAt removes the entry at rank; later entries shift down by one.
func (s *Stack[T]) PruneAt(rank int) (T, bool) {
	var zero T
	if rank < 0 || rank >= len(s.items) {
		return zero, false
	}
	item := s.items[rank]
	s.remove(rank)
	return item, true
}

// Reset replaces the contents with items, keeping their order, dropping duplicates
// and trimming to capacity.
func (s *Stack[T]) Reset(items []T) {
	seen := make(map[T]struct{}, len(items))
	s.items = s.items[:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		s.items = append(s.items, item)
	}
	s.truncate()
}

// At returns the item at rank. It panics if rank is out of range, like a slice index.
func (s *Stack[T]) At(rank int) T {
	return s.items[rank]
}

// Index returns the rank of item, or -1.
func (s *Stack[T]) Index(item T) int {
	for i, v := range s.items {
		if v == item {
			return i
		}
	}
	return -1
}

// Len returns the number of tracked items.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Capacity returns the configured bound.
func (s *Stack[T]) Capacity() int {
	return s.capacity
}

// Items returns a copy of the stack, most recent first.
func (s *Stack[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Stack[T]) remove(i int) {
	var zero T
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
}

func (s *Stack[T]) truncate() int {
	over := len(s.items) - s.capacity
	if over <= 0 {
		return 0
	}
	var zero T
	for i := s.capacity; i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.items = s.items[:s.capacity]
	return over
}
