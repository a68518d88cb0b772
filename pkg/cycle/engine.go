package cycle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/alttab/pkg/domain"
	"github.com/aretw0/alttab/pkg/history"
	"github.com/aretw0/alttab/pkg/session"
)

// Engine tracks focus history for one class of items and answers switch commands.
// All methods are safe for concurrent use.
type Engine[T comparable] struct {
	mu      sync.Mutex
	stack   *history.Stack[T]
	session session.State[T]

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Snapshot is a point-in-time copy of the engine state.
type Snapshot[T comparable] struct {
	Items      []T
	Capacity   int
	Active     bool
	SessionID  string
	Anchor     T
	HasAnchor  bool
	AnchorRank int
	Forward    bool
	Steps      int
}

// New creates an engine with empty history.
func New[T comparable](opts ...Option) *Engine[T] {
	c := newConfig(opts)
	return &Engine[T]{
		stack:  history.NewStack[T](c.capacity),
		hooks:  c.hooks,
		logger: c.logger,
		now:    c.now,
	}
}

// RecordFocus moves item to the front of history. It is ignored while a cycle session is
// active: focus changes during a session are the ones the engine itself requested.
func (e *Engine[T]) RecordFocus(ctx context.Context, item T) {
	var ev events
	e.mu.Lock()
	dropped := e.session.Active
	if !dropped {
		e.stack.Push(item)
	}
	if e.hooks.OnFocus != nil {
		fe := &domain.FocusEvent{
			EventBase:  e.base(domain.EventFocus),
			Item:       item,
			Dropped:    dropped,
			HistoryLen: e.stack.Len(),
		}
		ev.add(func(ctx context.Context) { e.hooks.OnFocus(ctx, fe) })
	}
	e.mu.Unlock()

	if dropped {
		e.logger.Debug("Focus change ignored during session", "item", item)
	}
	ev.fire(ctx)
}

// Advance performs one traversal step and returns the item that should receive focus.
// It returns false when no item exists at all; that is a normal outcome, not an error.
func (e *Engine[T]) Advance(ctx context.Context, live domain.LiveSet[T], forward bool) (T, bool) {
	var ev events
	e.mu.Lock()
	item, rank, ok := e.advanceLocked(live, forward, &ev)
	sessionID := e.session.ID
	e.mu.Unlock()

	if ok {
		e.logger.Debug("Cycle step", "session_id", sessionID, "direction", domain.DirectionLabel(forward), "item", item, "rank", rank)
	} else {
		e.logger.Debug("Cycle step found nothing", "session_id", sessionID, "direction", domain.DirectionLabel(forward))
	}
	ev.fire(ctx)
	return item, ok
}

// End terminates the current session, committing the selected item to the front of
// history. It is a no-op when no session is active.
func (e *Engine[T]) End(ctx context.Context) {
	var ev events
	e.mu.Lock()
	if !e.session.Active {
		e.mu.Unlock()
		return
	}
	id, steps, started := e.session.ID, e.session.Steps, e.session.StartedAt
	anchor, ok := e.session.Finish()
	if ok {
		e.stack.Commit(anchor)
	}
	if e.hooks.OnSessionEnd != nil {
		se := &domain.SessionEvent{
			EventBase: e.base(domain.EventSessionEnd),
			Committed: ok,
			Steps:     steps,
			Duration:  e.now().Sub(started),
		}
		se.SessionID = id
		if ok {
			se.Item = anchor
		}
		ev.add(func(ctx context.Context) { e.hooks.OnSessionEnd(ctx, se) })
	}
	e.mu.Unlock()

	e.logger.Debug("Cycle session ended", "session_id", id, "steps", steps, "committed", ok)
	ev.fire(ctx)
}

// Active reports whether a cycle session is in progress.
func (e *Engine[T]) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Active
}

// Snapshot returns a copy of history and session state.
func (e *Engine[T]) Snapshot() Snapshot[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot[T]{
		Items:      e.stack.Items(),
		Capacity:   e.stack.Capacity(),
		Active:     e.session.Active,
		SessionID:  e.session.ID,
		Anchor:     e.session.Anchor,
		HasAnchor:  e.session.HasAnchor,
		AnchorRank: e.session.AnchorRank,
		Forward:    e.session.Forward,
		Steps:      e.session.Steps,
	}
}

// View returns the snapshot with items boxed, for adapters that are not generic.
func (e *Engine[T]) View() domain.HistoryView {
	s := e.Snapshot()
	items := make([]any, len(s.Items))
	for i, item := range s.Items {
		items[i] = item
	}
	v := domain.HistoryView{
		Items:    items,
		Capacity: s.Capacity,
		Session: domain.SessionView{
			Active: s.Active,
			ID:     s.SessionID,
			Steps:  s.Steps,
		},
	}
	if s.HasAnchor {
		v.Session.Anchor = s.Anchor
		v.Session.AnchorRank = &s.AnchorRank
		v.Session.Direction = domain.DirectionLabel(s.Forward)
	}
	return v
}

func (e *Engine[T]) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now(),
		Type:      t,
		SessionID: e.session.ID,
	}
}

// events defers hook invocations until the engine lock is released.
type events struct {
	fns []func(context.Context)
}

func (ev *events) add(fn func(context.Context)) {
	ev.fns = append(ev.fns, fn)
}

func (ev *events) fire(ctx context.Context) {
	for _, fn := range ev.fns {
		fn(ctx)
	}
}
