package ports

import (
	"context"

	"github.com/aretw0/alttab/pkg/domain"
)

// Dispatcher executes control commands received by the control server.
// Implementations must be safe to call from a single dispatch goroutine while the
// gateway delivers events concurrently.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd domain.Command) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, cmd domain.Command) error

// Dispatch calls f(ctx, cmd).
func (f DispatcherFunc) Dispatch(ctx context.Context, cmd domain.Command) error {
	return f(ctx, cmd)
}
