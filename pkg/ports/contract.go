package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GatewayHarness drives the window manager behind a Gateway under test.
type GatewayHarness[T comparable] struct {
	// Gateway is the implementation under test. It must not be running yet.
	Gateway Gateway[T]
	// Live lists the items the fake window manager reports as existing.
	Live []T
	// EmitFocus makes the window manager report a focus change.
	EmitFocus func(item T)
	// EmitRelease makes the window manager report the session-ending modifier release.
	EmitRelease func()
	// Focused returns the items the gateway asked the window manager to focus, in order.
	Focused func() []T
}

// RunGatewayContract runs a suite of tests to verify that a Gateway implementation
// adheres to the defined interface contract. It requires at least one live item.
func RunGatewayContract[T comparable](t *testing.T, h GatewayHarness[T]) {
	t.Helper()
	require.NotEmpty(t, h.Live, "contract needs live items")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	focus := make(chan T, 8)
	release := make(chan struct{}, 8)
	h.Gateway.OnFocusChanged(func(item T) { focus <- item })
	h.Gateway.OnModifierReleased(func() { release <- struct{}{} })

	done := make(chan error, 1)
	go func() { done <- h.Gateway.Run(ctx) }()

	t.Run("Query Live Items", func(t *testing.T) {
		set, err := h.Gateway.QueryLiveItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(h.Live), set.Len())
		for _, item := range h.Live {
			assert.True(t, set.Has(item), "item %v should be live", item)
		}
	})

	t.Run("Focus Changed", func(t *testing.T) {
		h.EmitFocus(h.Live[0])
		select {
		case got := <-focus:
			assert.Equal(t, h.Live[0], got)
		case <-time.After(2 * time.Second):
			t.Fatal("focus callback not invoked")
		}
	})

	t.Run("Modifier Released", func(t *testing.T) {
		h.EmitRelease()
		select {
		case <-release:
		case <-time.After(2 * time.Second):
			t.Fatal("release callback not invoked")
		}
	})

	t.Run("Focus Command", func(t *testing.T) {
		target := h.Live[len(h.Live)-1]
		require.NoError(t, h.Gateway.Focus(ctx, target))
		assert.Contains(t, h.Focused(), target)
	})

	t.Run("Run Stops On Cancel", func(t *testing.T) {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err, "cancellation is a clean stop")
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after cancellation")
		}
	})
}
