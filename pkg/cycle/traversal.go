package cycle

import (
	"context"

	"github.com/aretw0/alttab/pkg/domain"
)

// advanceLocked runs one traversal step. The caller holds e.mu.
func (e *Engine[T]) advanceLocked(live domain.LiveSet[T], forward bool, ev *events) (T, int, bool) {
	var zero T

	fresh := !e.session.Active || !e.session.HasAnchor
	if !e.session.Active {
		e.session.Begin(e.now())
		if e.hooks.OnSessionStart != nil {
			se := &domain.SessionEvent{EventBase: e.base(domain.EventSessionStart)}
			ev.add(func(ctx context.Context) { e.hooks.OnSessionStart(ctx, se) })
		}
		// The front entry is skipped by a forward scan, so it must be a live item.
		for e.stack.Len() > 0 && !live.Has(e.stack.At(0)) {
			e.pruneLocked(0, ev)
		}
	}

	var start int
	switch {
	case fresh && forward:
		start = 1
	case fresh:
		start = e.stack.Len() - 1
	default:
		start = e.session.NextRank(forward, e.stack.Len())
	}

	rank, ok := e.scanLocked(live, start, forward, ev)
	if !ok {
		// Wrap once: candidates before the start rank are still eligible.
		rank, ok = e.scanLocked(live, e.boundary(forward), forward, ev)
	}
	if !ok && live.Len() > 0 {
		e.stack.Reset(live.Items())
		rank, ok = 0, true
		if e.hooks.OnReset != nil {
			re := &domain.ResetEvent{EventBase: e.base(domain.EventReset), HistoryLen: e.stack.Len()}
			ev.add(func(ctx context.Context) { e.hooks.OnReset(ctx, re) })
		}
		id, size := e.session.ID, e.stack.Len()
		ev.add(func(context.Context) {
			e.logger.Debug("History rebuilt from live set", "session_id", id, "size", size)
		})
	}

	item := zero
	if ok {
		item = e.stack.At(rank)
		e.session.Step(item, rank, forward)
	}

	if e.hooks.OnStep != nil {
		se := &domain.StepEvent{
			EventBase:  e.base(domain.EventStep),
			Rank:       rank,
			Forward:    forward,
			Found:      ok,
			HistoryLen: e.stack.Len(),
		}
		if ok {
			se.Item = item
		} else {
			se.Rank = -1
		}
		ev.add(func(ctx context.Context) { e.hooks.OnStep(ctx, se) })
	}
	return item, rank, ok
}

// scanLocked walks from start toward the boundary in the given direction and returns
// the first live rank. Stale entries are pruned as they are met: moving forward the scan
// stays put because the next entry slides into the pruned rank, moving backward it
// continues at the rank below.
func (e *Engine[T]) scanLocked(live domain.LiveSet[T], start int, forward bool, ev *events) (int, bool) {
	if forward {
		for r := max(start, 0); r < e.stack.Len(); {
			if live.Has(e.stack.At(r)) {
				return r, true
			}
			e.pruneLocked(r, ev)
		}
		return 0, false
	}

	for r := min(start, e.stack.Len()-1); r >= 0; r-- {
		if live.Has(e.stack.At(r)) {
			return r, true
		}
		e.pruneLocked(r, ev)
	}
	return 0, false
}

// boundary is where a wrapped scan resumes: the front going forward, the tail going backward.
func (e *Engine[T]) boundary(forward bool) int {
	if forward {
		return 0
	}
	return e.stack.Len() - 1
}

func (e *Engine[T]) pruneLocked(rank int, ev *events) {
	item, ok := e.stack.PruneAt(rank)
	if !ok {
		return
	}
	id := e.session.ID
	ev.add(func(context.Context) {
		e.logger.Debug("Pruned stale history entry", "session_id", id, "item", item, "rank", rank)
	})
	if e.hooks.OnPrune != nil {
		pe := &domain.PruneEvent{EventBase: e.base(domain.EventPrune), Item: item, Rank: rank}
		ev.add(func(ctx context.Context) { e.hooks.OnPrune(ctx, pe) })
	}
}
