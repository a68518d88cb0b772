package alttab

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/alttab/internal/logging"
	"github.com/aretw0/alttab/pkg/control"
	"github.com/aretw0/alttab/pkg/cycle"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/aretw0/alttab/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// Daemon wires a cycle engine to a window manager gateway and a control socket.
type Daemon[T comparable] struct {
	gateway  ports.Gateway[T]
	engine   *cycle.Engine[T]
	server   *control.Server
	services []func(context.Context) error
	logger   *slog.Logger
}

type options struct {
	socketPath string
	capacity   int
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	services   []func(context.Context) error
}

// Option defines a functional option for configuring the Daemon.
type Option func(*options)

// WithSocketPath sets the control socket path.
func WithSocketPath(path string) Option {
	return func(o *options) {
		o.socketPath = path
	}
}

// WithCapacity bounds the focus history.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithLifecycleHooks registers observability hooks on the engine and the control server.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithService runs fn alongside the gateway and the control server. The daemon stops
// when any of them fails; fn must return when its context is cancelled.
func WithService(fn func(ctx context.Context) error) Option {
	return func(o *options) {
		o.services = append(o.services, fn)
	}
}

// New creates a daemon for the items delivered by gateway.
func New[T comparable](gateway ports.Gateway[T], opts ...Option) *Daemon[T] {
	o := options{
		socketPath: DefaultSocketPath,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Daemon[T]{
		gateway:  gateway,
		services: o.services,
		logger:   o.logger,
		engine: cycle.New[T](
			cycle.WithCapacity(o.capacity),
			cycle.WithLifecycleHooks(o.hooks),
			cycle.WithLogger(o.logger),
		),
	}
	d.server = control.NewServer(o.socketPath, d,
		control.WithLogger(o.logger),
		control.WithLifecycleHooks(o.hooks),
	)
	return d
}

// DefaultSocketPath is the well-known window-cycling socket.
const DefaultSocketPath = "/tmp/i3_cycle_windows"

// Engine exposes the underlying engine for introspection.
func (d *Daemon[T]) Engine() *cycle.Engine[T] {
	return d.engine
}

// SocketPath returns the control socket path.
func (d *Daemon[T]) SocketPath() string {
	return d.server.Addr()
}

// Dispatch performs one traversal step for cmd and focuses the selected item.
// Finding nothing to focus is not an error.
func (d *Daemon[T]) Dispatch(ctx context.Context, cmd domain.Command) error {
	live, err := d.gateway.QueryLiveItems(ctx)
	if err != nil {
		return fmt.Errorf("query live items: %w", err)
	}

	item, ok := d.engine.Advance(ctx, live, cmd.Forward())
	if !ok {
		d.logger.Debug("Nothing to focus", "command", cmd)
		return nil
	}

	if err := d.gateway.Focus(ctx, item); err != nil {
		return fmt.Errorf("focus %v: %w", item, err)
	}
	return nil
}

// Run listens on the control socket and processes window manager events until ctx is
// cancelled or a component fails. It returns nil on cancellation. Run must be called once.
func (d *Daemon[T]) Run(ctx context.Context) error {
	if err := d.server.Listen(); err != nil {
		return err
	}

	d.gateway.OnFocusChanged(func(item T) {
		d.engine.RecordFocus(ctx, item)
	})
	d.gateway.OnModifierReleased(func() {
		d.engine.End(ctx)
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := d.gateway.Run(gctx); err != nil {
			return fmt.Errorf("gateway: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return d.server.Serve(gctx)
	})
	for _, svc := range d.services {
		g.Go(func() error {
			return svc(gctx)
		})
	}

	d.logger.Info("Daemon started", "socket", d.server.Addr())
	err := g.Wait()
	d.logger.Info("Daemon stopped")
	return err
}
