package cycle_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/aretw0/alttab/pkg/cycle"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seeded returns an idle engine whose history equals items (front first).
func seeded(t *testing.T, capacity int, items ...string) *cycle.Engine[string] {
	t.Helper()
	e := cycle.New[string](cycle.WithCapacity(capacity))
	ctx := context.Background()
	for i := len(items) - 1; i >= 0; i-- {
		e.RecordFocus(ctx, items[i])
	}
	require.Equal(t, items, e.Snapshot().Items)
	return e
}

func live(items ...string) domain.LiveSet[string] {
	return domain.NewLiveSet(items...)
}

func step(t *testing.T, e *cycle.Engine[string], set domain.LiveSet[string], forward bool) string {
	t.Helper()
	item, ok := e.Advance(context.Background(), set, forward)
	require.True(t, ok, "expected a candidate")
	return item
}

func TestEngine_ForwardBackwardCommit(t *testing.T) {
	ctx := context.Background()
	e := seeded(t, 3, "A", "B", "C")
	all := live("A", "B", "C")

	assert.Equal(t, "B", step(t, e, all, true), "first forward step skips the focused item")
	assert.Equal(t, "C", step(t, e, all, true), "continuing visits the next older item")
	assert.Equal(t, "B", step(t, e, all, false), "flipping direction walks back toward the anchor")

	snap := e.Snapshot()
	assert.True(t, snap.Active)
	assert.Equal(t, "B", snap.Anchor)
	assert.Equal(t, 1, snap.AnchorRank)
	assert.False(t, snap.Forward)

	e.End(ctx)
	assert.Equal(t, []string{"B", "A", "C"}, e.Snapshot().Items)
	assert.False(t, e.Active())
}

func TestEngine_PrunesStaleFront(t *testing.T) {
	e := seeded(t, 512, "A", "B")

	assert.Equal(t, "B", step(t, e, live("B"), true))
	assert.Equal(t, []string{"B"}, e.Snapshot().Items)
}

func TestEngine_SessionContinuity(t *testing.T) {
	e := seeded(t, 512, "A", "B", "C", "D", "E")
	all := live("A", "B", "C", "D", "E")

	visited := []string{
		step(t, e, all, true),
		step(t, e, all, true),
		step(t, e, all, true),
	}
	assert.Equal(t, []string{"B", "C", "D"}, visited)
}

func TestEngine_DirectionReversalReturnsToOrigin(t *testing.T) {
	e := seeded(t, 512, "A", "B", "C")
	all := live("A", "B", "C")

	assert.Equal(t, "B", step(t, e, all, true))
	assert.Equal(t, "A", step(t, e, all, false))
}

func TestEngine_ForwardWraps(t *testing.T) {
	e := seeded(t, 512, "A", "B", "C")
	all := live("A", "B", "C")

	var got []string
	for i := 0; i < 4; i++ {
		got = append(got, step(t, e, all, true))
	}
	assert.Equal(t, []string{"B", "C", "A", "B"}, got)
}

func TestEngine_BackwardStartsAtTail(t *testing.T) {
	e := seeded(t, 512, "A", "B", "C")
	all := live("A", "B", "C")

	var got []string
	for i := 0; i < 4; i++ {
		got = append(got, step(t, e, all, false))
	}
	assert.Equal(t, []string{"C", "B", "A", "C"}, got)
}

func TestEngine_PrunedItemsStayGone(t *testing.T) {
	ctx := context.Background()
	e := seeded(t, 512, "A", "B", "C", "D")

	withoutC := live("A", "B", "D")
	assert.Equal(t, "B", step(t, e, withoutC, true))
	assert.Equal(t, "D", step(t, e, withoutC, true), "C is stale and skipped")
	assert.Equal(t, []string{"A", "B", "D"}, e.Snapshot().Items)

	e.End(ctx)
	assert.Equal(t, []string{"D", "A", "B"}, e.Snapshot().Items)

	// C exists again but was never re-focused: it must not come back.
	all := live("A", "B", "C", "D")
	var got []string
	for i := 0; i < 4; i++ {
		got = append(got, step(t, e, all, true))
	}
	assert.Equal(t, []string{"A", "B", "D", "A"}, got)
	assert.NotContains(t, e.Snapshot().Items, "C")
	e.End(ctx)

	e.RecordFocus(ctx, "C")
	assert.Equal(t, "C", e.Snapshot().Items[0])
}

func TestEngine_WrapFindsCandidateBeforeStart(t *testing.T) {
	e := seeded(t, 512, "A", "B", "C", "D")

	// Everything past the front is stale; the wrapped pass lands on rank 0.
	assert.Equal(t, "A", step(t, e, live("A"), true))
	assert.Equal(t, []string{"A"}, e.Snapshot().Items)
}

func TestEngine_FallbackOnTotalStaleness(t *testing.T) {
	e := seeded(t, 512, "X", "Y", "Z")

	item := step(t, e, live("P", "Q"), true)
	assert.Contains(t, []string{"P", "Q"}, item)
	assert.ElementsMatch(t, []string{"P", "Q"}, e.Snapshot().Items)
}

func TestEngine_EmptyHistoryUsesLiveSet(t *testing.T) {
	e := cycle.New[string]()

	assert.Equal(t, "P", step(t, e, live("P", "Q"), true), "live set order is kept by the rebuild")
	assert.Equal(t, []string{"P", "Q"}, e.Snapshot().Items)
}

func TestEngine_NothingLive(t *testing.T) {
	ctx := context.Background()
	e := seeded(t, 512, "A", "B")

	_, ok := e.Advance(ctx, live(), true)
	assert.False(t, ok)
	assert.Empty(t, e.Snapshot().Items, "stale entries are still pruned")
	assert.True(t, e.Active())

	e.End(ctx)
	assert.False(t, e.Active())
	assert.Empty(t, e.Snapshot().Items, "nothing was selected, nothing is committed")
}

func TestEngine_SingleItem(t *testing.T) {
	ctx := context.Background()
	e := seeded(t, 512, "A")
	only := live("A")

	assert.Equal(t, "A", step(t, e, only, true))
	assert.Equal(t, "A", step(t, e, only, false))
	assert.Equal(t, "A", step(t, e, only, true))
	e.End(ctx)
	assert.Equal(t, []string{"A"}, e.Snapshot().Items)
}

func TestEngine_RecordFocusIgnoredDuringSession(t *testing.T) {
	ctx := context.Background()
	e := seeded(t, 512, "A", "B", "C")

	step(t, e, live("A", "B", "C"), true)
	e.RecordFocus(ctx, "B") // the focus change the engine itself caused
	e.RecordFocus(ctx, "N")
	assert.Equal(t, []string{"A", "B", "C"}, e.Snapshot().Items)

	e.End(ctx)
	assert.Equal(t, []string{"B", "A", "C"}, e.Snapshot().Items)

	e.RecordFocus(ctx, "N")
	assert.Equal(t, []string{"N", "B", "A", "C"}, e.Snapshot().Items)
}

func TestEngine_EndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := seeded(t, 512, "A", "B")

	e.End(ctx)
	assert.Equal(t, []string{"A", "B"}, e.Snapshot().Items)

	step(t, e, live("A", "B"), true)
	e.End(ctx)
	e.End(ctx)
	assert.Equal(t, []string{"B", "A"}, e.Snapshot().Items)
}

func TestEngine_NewSessionRestartsFromFront(t *testing.T) {
	ctx := context.Background()
	e := seeded(t, 512, "A", "B", "C")
	all := live("A", "B", "C")

	step(t, e, all, true)
	step(t, e, all, true)
	e.End(ctx) // [C, A, B]

	assert.Equal(t, "A", step(t, e, all, true), "alt-tab twice toggles between the two most recent items")
	e.End(ctx)
	assert.Equal(t, []string{"A", "C", "B"}, e.Snapshot().Items)
}

func TestEngine_CapacityInvariant(t *testing.T) {
	ctx := context.Background()
	e := cycle.New[int](cycle.WithCapacity(4))

	for i := 0; i < 20; i++ {
		e.RecordFocus(ctx, i)
	}
	snap := e.Snapshot()
	assert.Equal(t, []int{19, 18, 17, 16}, snap.Items)
	assert.Equal(t, 4, snap.Capacity)

	// The fallback rebuild is bounded too.
	_, ok := e.Advance(ctx, domain.NewLiveSet(100, 101, 102, 103, 104, 105), true)
	require.True(t, ok)
	assert.Len(t, e.Snapshot().Items, 4)
}

func TestEngine_View(t *testing.T) {
	e := seeded(t, 8, "A", "B")

	v := e.View()
	assert.Equal(t, []any{"A", "B"}, v.Items)
	assert.Equal(t, 8, v.Capacity)
	assert.False(t, v.Session.Active)
	assert.Nil(t, v.Session.AnchorRank)

	step(t, e, live("A", "B"), true)
	v = e.View()
	assert.True(t, v.Session.Active)
	assert.Equal(t, "B", v.Session.Anchor)
	require.NotNil(t, v.Session.AnchorRank)
	assert.Equal(t, 1, *v.Session.AnchorRank)
	assert.Equal(t, "forward", v.Session.Direction)
	assert.Equal(t, 1, v.Session.Steps)
}

// TestEngine_RandomOperations checks the structural invariants under arbitrary
// interleavings of focus events, steps and releases.
func TestEngine_RandomOperations(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	const capacity = 6
	e := cycle.New[int](cycle.WithCapacity(capacity))

	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0, 1:
			e.RecordFocus(ctx, rng.Intn(10))
		case 2:
			set := domain.NewLiveSet[int]()
			for j := 0; j < 10; j++ {
				if rng.Intn(3) > 0 {
					set.Add(j)
				}
			}
			item, ok := e.Advance(ctx, set, rng.Intn(2) == 0)
			if set.Len() > 0 {
				require.True(t, ok)
				require.True(t, set.Has(item), "returned %d which is not live", item)
			} else {
				require.False(t, ok)
			}
		case 3:
			e.End(ctx)
		}

		items := e.Snapshot().Items
		require.LessOrEqual(t, len(items), capacity)
		seen := map[int]bool{}
		for _, v := range items {
			require.False(t, seen[v], "duplicate %d in %v", v, items)
			seen[v] = true
		}
	}
}

func TestEngine_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	e := cycle.New[int](cycle.WithCapacity(32))
	set := domain.NewLiveSet(0, 1, 2, 3, 4, 5, 6, 7)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				e.RecordFocus(ctx, i%8)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_, _ = e.Advance(ctx, set, i%3 != 0)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				e.End(ctx)
			}
		}()
	}
	wg.Wait()
	e.End(ctx)

	assert.False(t, e.Active())
	assert.LessOrEqual(t, len(e.Snapshot().Items), 8)
}
