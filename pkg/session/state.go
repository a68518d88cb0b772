package session

import (
	"time"

	"github.com/google/uuid"
)

// State is the ephemeral traversal state owned by the cycle engine.
// The zero value is an Idle session.
type State[T comparable] struct {
	ID         string
	Active     bool
	Anchor     T
	AnchorRank int
	HasAnchor  bool
	Forward    bool
	StartedAt  time.Time
	Steps      int
}

// Begin transitions Idle -> Active and assigns a fresh correlation id.
func (s *State[T]) Begin(now time.Time) {
	*s = State[T]{
		ID:        uuid.NewString(),
		Active:    true,
		StartedAt: now,
	}
}

// Step records the item a traversal step selected.
func (s *State[T]) Step(item T, rank int, forward bool) {
	s.Anchor = item
	s.AnchorRank = rank
	s.HasAnchor = true
	s.Forward = forward
	s.Steps++
}

// Finish transitions Active -> Idle and returns the anchor to commit, if any.
func (s *State[T]) Finish() (T, bool) {
	anchor, ok := s.Anchor, s.HasAnchor
	*s = State[T]{}
	return anchor, ok
}

// NextRank returns where the next step of an ongoing session starts scanning in a
// history of length n. The previous rank is clamped into range first, then moved one
// rank in the requested direction with wraparound. Repeating a direction walks outward;
// reversing it walks back toward the item the session started from.
func (s *State[T]) NextRank(forward bool, n int) int {
	if n <= 0 {
		return 0
	}
	r := min(max(s.AnchorRank, 0), n-1)
	if forward {
		r++
		if r >= n {
			r = 0
		}
		return r
	}
	r--
	if r < 0 {
		r = n - 1
	}
	return r
}
