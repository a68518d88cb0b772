package i3

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/alttab/internal/logging"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/aretw0/alttab/pkg/ports"
	backend "go.i3wm.org/i3/v4"
)

// itemClass holds what differs between window and workspace cycling.
type itemClass[T comparable] struct {
	name string
	// event is the subscription carrying focus changes.
	event backend.EventType
	// focusOf extracts the newly focused item from an event of that subscription.
	focusOf func(backend.Event) (T, bool)
	// live enumerates existing items.
	live func(IPC) ([]T, error)
	// current returns the focused item, if any, used to seed history at startup.
	current func(IPC) (T, bool, error)
	command func(T) string
}

// Gateway implements ports.Gateway over i3 IPC.
type Gateway[T comparable] struct {
	ipc         IPC
	class       itemClass[T]
	releaseKeys map[string]struct{}
	logger      *slog.Logger

	mu         sync.Mutex
	focusFns   []func(T)
	releaseFns []func()
}

var (
	_ ports.Gateway[backend.NodeID] = (*Gateway[backend.NodeID])(nil)
	_ ports.Gateway[string]         = (*Gateway[string])(nil)
)

type Option func(*options)

type options struct {
	releaseKeys []string
	logger      *slog.Logger
}

// WithReleaseKeys sets the key symbols or keycodes whose release binding ends a session.
func WithReleaseKeys(keys ...string) Option {
	return func(o *options) {
		o.releaseKeys = keys
	}
}

// WithLogger configures a logger for event handling.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newGateway[T comparable](ipc IPC, class itemClass[T], defaultKeys []string, opts []Option) *Gateway[T] {
	o := options{releaseKeys: defaultKeys, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	keys := make(map[string]struct{}, len(o.releaseKeys))
	for _, k := range o.releaseKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = struct{}{}
		}
	}
	return &Gateway[T]{
		ipc:         ipc,
		class:       class,
		releaseKeys: keys,
		logger:      o.logger,
	}
}

func (g *Gateway[T]) OnFocusChanged(fn func(T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.focusFns = append(g.focusFns, fn)
}

func (g *Gateway[T]) OnModifierReleased(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.releaseFns = append(g.releaseFns, fn)
}

func (g *Gateway[T]) QueryLiveItems(ctx context.Context) (domain.LiveSet[T], error) {
	items, err := g.class.live(g.ipc)
	if err != nil {
		return domain.LiveSet[T]{}, fmt.Errorf("query %s: %w", g.class.name, err)
	}
	return domain.NewLiveSet(items...), nil
}

func (g *Gateway[T]) Focus(ctx context.Context, item T) error {
	cmd := g.class.command(item)
	results, err := g.ipc.RunCommand(cmd)
	if err != nil {
		return fmt.Errorf("run %q: %w", cmd, err)
	}
	for _, r := range results {
		if !r.Success {
			return fmt.Errorf("run %q: %s", cmd, r.Error)
		}
	}
	return nil
}

// Run seeds the focused item, then delivers i3 events until ctx is cancelled.
// A stream that ends for any other reason yields domain.ErrGatewayClosed.
func (g *Gateway[T]) Run(ctx context.Context) error {
	stream := g.ipc.Subscribe(g.class.event, backend.BindingEventType)

	var once sync.Once
	var closeErr error
	closeStream := func() {
		once.Do(func() { closeErr = stream.Close() })
	}
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			closeStream()
		case <-stopped:
		}
	}()

	if item, ok, err := g.class.current(g.ipc); err != nil {
		g.logger.Warn("Could not read focused item", "class", g.class.name, "err", err)
	} else if ok {
		g.emitFocus(item)
	}

	for stream.Next() {
		g.handle(stream.Event())
	}
	if ctx.Err() != nil {
		return nil
	}
	closeStream()
	if closeErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayClosed, closeErr)
	}
	return domain.ErrGatewayClosed
}

func (g *Gateway[T]) handle(ev backend.Event) {
	if b, ok := ev.(*backend.BindingEvent); ok {
		if g.isRelease(b) {
			g.logger.Debug("Modifier released", "symbol", b.Binding.Symbol, "code", b.Binding.InputCode)
			g.emitRelease()
		}
		return
	}
	if item, ok := g.class.focusOf(ev); ok {
		g.emitFocus(item)
	}
}

func (g *Gateway[T]) isRelease(b *backend.BindingEvent) bool {
	if b.Change != "run" {
		return false
	}
	if _, ok := g.releaseKeys[b.Binding.Symbol]; ok && b.Binding.Symbol != "" {
		return true
	}
	if b.Binding.InputCode != 0 {
		_, ok := g.releaseKeys[strconv.FormatInt(b.Binding.InputCode, 10)]
		return ok
	}
	return false
}

func (g *Gateway[T]) emitFocus(item T) {
	g.mu.Lock()
	fns := append([]func(T){}, g.focusFns...)
	g.mu.Unlock()
	for _, fn := range fns {
		fn(item)
	}
}

func (g *Gateway[T]) emitRelease() {
	g.mu.Lock()
	fns := append([]func(){}, g.releaseFns...)
	g.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
