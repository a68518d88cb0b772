package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/alttab/internal/logging"
	"github.com/aretw0/alttab/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultQueueSize bounds events waiting to be published.
const DefaultQueueSize = 256

// Publisher publishes lifecycle events as JSON on a Redis channel, for status bars and
// other observers. Hooks only enqueue; Run does the network I/O, and events are dropped
// when the queue is full so the engine never waits on Redis.
type Publisher struct {
	client     *backend.Client
	ownsClient bool
	channel    string
	queue      chan []byte
	logger     *slog.Logger
	dropped    atomic.Uint64
}

type Option func(*Publisher)

// WithChannel sets the pub/sub channel.
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		if channel != "" {
			p.channel = channel
		}
	}
}

// WithQueueSize sets the number of events buffered ahead of Run.
func WithQueueSize(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.queue = make(chan []byte, n)
		}
	}
}

// WithLogger configures a logger for publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a publisher with its own client.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	p := NewFromClient(rdb, opts...)
	p.ownsClient = true
	return p
}

// NewFromClient creates a publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		channel: "alttab:events",
		queue:   make(chan []byte, DefaultQueueSize),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel returns the channel events are published on.
func (p *Publisher) Channel() string {
	return p.channel
}

// Dropped returns how many events were discarded because the queue was full.
func (p *Publisher) Dropped() uint64 {
	return p.dropped.Load()
}

// Ping checks connectivity.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Run publishes queued events until ctx is cancelled. Publish failures are logged, not fatal.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-p.queue:
			if err := p.client.Publish(ctx, p.channel, msg).Err(); err != nil && ctx.Err() == nil {
				p.logger.Warn("Event publish failed", "channel", p.channel, "err", err)
			}
		}
	}
}

// Close closes the client if the publisher created it.
func (p *Publisher) Close() error {
	if !p.ownsClient {
		return nil
	}
	return p.client.Close()
}

// Hooks returns lifecycle hooks that enqueue every event except prunes.
func (p *Publisher) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFocus:        func(ctx context.Context, e *domain.FocusEvent) { p.enqueue(e) },
		OnSessionStart: func(ctx context.Context, e *domain.SessionEvent) { p.enqueue(e) },
		OnStep:         func(ctx context.Context, e *domain.StepEvent) { p.enqueue(e) },
		OnReset:        func(ctx context.Context, e *domain.ResetEvent) { p.enqueue(e) },
		OnSessionEnd:   func(ctx context.Context, e *domain.SessionEvent) { p.enqueue(e) },
	}
}

func (p *Publisher) enqueue(event any) {
	msg, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("Event encode failed", "err", err)
		return
	}
	select {
	case p.queue <- msg:
	default:
		p.dropped.Add(1)
	}
}
