package ports

import (
	"context"

	"github.com/aretw0/alttab/pkg/domain"
)

// Gateway is the window manager as seen by the cycle engine, for one class of items
// (windows or workspaces).
type Gateway[T comparable] interface {
	// OnFocusChanged registers a callback for focus-change notifications.
	// Callbacks run on the gateway's event delivery goroutine.
	OnFocusChanged(fn func(item T))

	// OnModifierReleased registers a callback for the modifier release that ends a cycle session.
	OnModifierReleased(fn func())

	// QueryLiveItems returns a synchronous snapshot of the items that currently exist.
	QueryLiveItems(ctx context.Context) (domain.LiveSet[T], error)

	// Focus asks the window manager to give the item input focus.
	Focus(ctx context.Context, item T) error

	// Run delivers events to the registered callbacks until ctx is cancelled or the
	// event stream fails. It returns nil on cancellation.
	Run(ctx context.Context) error
}
