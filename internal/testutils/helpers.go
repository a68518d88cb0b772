package testutils

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/alttab/pkg/domain"
	"github.com/stretchr/testify/require"
)

// SocketPath returns a control socket path inside a fresh temporary directory.
// t.TempDir is avoided because long test names overflow the unix socket path limit.
// The directory is removed when the test ends.
func SocketPath(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "alttab")
	require.NoError(t, err, "Failed to create socket dir")
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	return filepath.Join(dir, "ctl.sock")
}

// FakeGateway is an in-memory window manager implementing ports.Gateway.
// Like a real window manager it reports a focus change for every item it is asked to focus.
type FakeGateway[T comparable] struct {
	mu       sync.Mutex
	live     []T
	focused  []T
	queryErr error

	focusFns   []func(T)
	releaseFns []func()

	events chan func()
}

// NewFakeGateway creates a gateway whose window manager reports live as existing.
func NewFakeGateway[T comparable](live ...T) *FakeGateway[T] {
	return &FakeGateway[T]{
		live:   live,
		events: make(chan func(), 64),
	}
}

// SetLive replaces the set of existing items.
func (g *FakeGateway[T]) SetLive(items ...T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.live = items
}

// FailQueries makes QueryLiveItems return err (nil restores normal behaviour).
func (g *FakeGateway[T]) FailQueries(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queryErr = err
}

// EmitFocus queues a focus-change event for delivery by Run.
func (g *FakeGateway[T]) EmitFocus(item T) {
	g.events <- func() {
		for _, fn := range g.focusCallbacks() {
			fn(item)
		}
	}
}

// EmitRelease queues a modifier-release event for delivery by Run.
func (g *FakeGateway[T]) EmitRelease() {
	g.events <- func() {
		g.mu.Lock()
		fns := append([]func(){}, g.releaseFns...)
		g.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
	}
}

// Focused returns every item Focus was called with, in order.
func (g *FakeGateway[T]) Focused() []T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]T(nil), g.focused...)
}

func (g *FakeGateway[T]) OnFocusChanged(fn func(T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.focusFns = append(g.focusFns, fn)
}

func (g *FakeGateway[T]) OnModifierReleased(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.releaseFns = append(g.releaseFns, fn)
}

func (g *FakeGateway[T]) QueryLiveItems(ctx context.Context) (domain.LiveSet[T], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.queryErr != nil {
		return domain.LiveSet[T]{}, g.queryErr
	}
	return domain.NewLiveSet(g.live...), nil
}

func (g *FakeGateway[T]) Focus(ctx context.Context, item T) error {
	g.mu.Lock()
	g.focused = append(g.focused, item)
	g.mu.Unlock()
	g.EmitFocus(item)
	return nil
}

func (g *FakeGateway[T]) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-g.events:
			fn()
		}
	}
}

func (g *FakeGateway[T]) focusCallbacks() []func(T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]func(T){}, g.focusFns...)
}
