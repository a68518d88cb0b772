package alttab_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aretw0/alttab"
	"github.com/aretw0/alttab/internal/testutils"
	"github.com/aretw0/alttab/pkg/control"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

// runDaemon starts d in the background and waits until its socket is up.
func runDaemon[T comparable](t *testing.T, d *alttab.Daemon[T]) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	t.Cleanup(cancel)

	require.Eventually(t, func() bool {
		_, err := os.Stat(d.SocketPath())
		return err == nil
	}, waitFor, tick, "control socket never appeared")
	return cancel, done
}

func TestDaemon_EndToEnd(t *testing.T) {
	gw := testutils.NewFakeGateway("A", "B", "C")
	d := alttab.New[string](gw, alttab.WithSocketPath(testutils.SocketPath(t)))
	cancel, done := runDaemon(t, d)
	ctx := context.Background()

	gw.EmitFocus("C")
	gw.EmitFocus("B")
	gw.EmitFocus("A")
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"A", "B", "C"}, d.Engine().Snapshot().Items)
	}, waitFor, tick)

	require.NoError(t, control.Send(ctx, d.SocketPath(), domain.CommandSwitch))
	require.Eventually(t, func() bool { return len(gw.Focused()) == 1 }, waitFor, tick)

	require.NoError(t, control.Send(ctx, d.SocketPath(), domain.CommandSwitch))
	require.Eventually(t, func() bool { return len(gw.Focused()) == 2 }, waitFor, tick)
	assert.Equal(t, []string{"B", "C"}, gw.Focused())

	// The echoed focus events were dropped: history is untouched until release.
	assert.Equal(t, []string{"A", "B", "C"}, d.Engine().Snapshot().Items)
	assert.True(t, d.Engine().Active())

	gw.EmitRelease()
	require.Eventually(t, func() bool { return !d.Engine().Active() }, waitFor, tick)
	assert.Equal(t, []string{"C", "A", "B"}, d.Engine().Snapshot().Items)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("daemon did not stop")
	}
	_, err := os.Stat(d.SocketPath())
	assert.True(t, os.IsNotExist(err), "socket is removed on shutdown")
}

func TestDaemon_ReverseSwitchStartsAtOldest(t *testing.T) {
	gw := testutils.NewFakeGateway("A", "B", "C")
	d := alttab.New[string](gw, alttab.WithSocketPath(testutils.SocketPath(t)))
	runDaemon(t, d)

	gw.EmitFocus("C")
	gw.EmitFocus("B")
	gw.EmitFocus("A")
	require.Eventually(t, func() bool { return len(d.Engine().Snapshot().Items) == 3 }, waitFor, tick)

	require.NoError(t, control.Send(context.Background(), d.SocketPath(), domain.CommandReverseSwitch))
	require.Eventually(t, func() bool { return len(gw.Focused()) == 1 }, waitFor, tick)
	assert.Equal(t, []string{"C"}, gw.Focused())
}

func TestDaemon_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Query Failure", func(t *testing.T) {
		gw := testutils.NewFakeGateway("A")
		gw.FailQueries(assert.AnError)
		d := alttab.New[string](gw)

		err := d.Dispatch(ctx, domain.CommandSwitch)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, gw.Focused())
	})

	t.Run("Nothing Live", func(t *testing.T) {
		gw := testutils.NewFakeGateway[string]()
		d := alttab.New[string](gw)

		assert.NoError(t, d.Dispatch(ctx, domain.CommandSwitch))
		assert.Empty(t, gw.Focused())
	})

	t.Run("Empty History Falls Back To Live Set", func(t *testing.T) {
		gw := testutils.NewFakeGateway("P", "Q")
		d := alttab.New[string](gw)

		require.NoError(t, d.Dispatch(ctx, domain.CommandSwitch))
		assert.Equal(t, []string{"P"}, gw.Focused())
	})
}

func TestDaemon_SecondInstanceRefused(t *testing.T) {
	path := testutils.SocketPath(t)
	first := alttab.New[string](testutils.NewFakeGateway("A"), alttab.WithSocketPath(path))
	runDaemon(t, first)

	second := alttab.New[string](testutils.NewFakeGateway("A"), alttab.WithSocketPath(path))
	err := second.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlreadyRunning)
}

func TestDaemon_ServiceFailureStopsDaemon(t *testing.T) {
	gw := testutils.NewFakeGateway("A")
	d := alttab.New[string](gw,
		alttab.WithSocketPath(testutils.SocketPath(t)),
		alttab.WithService(func(ctx context.Context) error {
			return assert.AnError
		}),
	)

	err := d.Run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)

	_, statErr := os.Stat(d.SocketPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestDaemon_LifecycleHooks(t *testing.T) {
	commands := make(chan *domain.CommandEvent, 4)
	ends := make(chan *domain.SessionEvent, 4)

	gw := testutils.NewFakeGateway("A", "B")
	d := alttab.New[string](gw,
		alttab.WithSocketPath(testutils.SocketPath(t)),
		alttab.WithLifecycleHooks(domain.LifecycleHooks{
			OnCommand:    func(ctx context.Context, e *domain.CommandEvent) { commands <- e },
			OnSessionEnd: func(ctx context.Context, e *domain.SessionEvent) { ends <- e },
		}),
	)
	runDaemon(t, d)

	gw.EmitFocus("B")
	gw.EmitFocus("A")
	require.Eventually(t, func() bool { return len(d.Engine().Snapshot().Items) == 2 }, waitFor, tick)

	require.NoError(t, control.Send(context.Background(), d.SocketPath(), domain.CommandSwitch))
	select {
	case e := <-commands:
		assert.Equal(t, "switch", e.Command)
		assert.True(t, e.Recognized)
	case <-time.After(waitFor):
		t.Fatal("command hook not invoked")
	}

	require.Eventually(t, func() bool { return len(gw.Focused()) == 1 }, waitFor, tick)
	gw.EmitRelease()
	select {
	case e := <-ends:
		assert.True(t, e.Committed)
		assert.Equal(t, "B", e.Item)
	case <-time.After(waitFor):
		t.Fatal("session end hook not invoked")
	}
}
