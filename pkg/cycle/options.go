package cycle

import (
	"log/slog"
	"time"

	"github.com/aretw0/alttab/internal/logging"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/aretw0/alttab/pkg/history"
)

type config struct {
	capacity int
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures the Engine.
type Option func(*config)

// WithCapacity bounds the focus history. Non-positive values select history.DefaultCapacity.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		c.capacity = capacity
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithLogger configures a logger for engine internals.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithClock overrides the time source used for event timestamps and session durations.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

func newConfig(opts []Option) config {
	c := config{
		capacity: history.DefaultCapacity,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
