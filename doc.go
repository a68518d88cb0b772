/*
Package alttab is an alt-tab style focus cycling daemon for tiling window managers.

It keeps a most-recently-used history of focused items (windows or workspaces) and answers
"switch" and "rev-switch" commands received on a unix socket by focusing the next live item
in that history. A cycle session starts with the first command and ends when the window
manager reports that the modifier key was released; only then is the selected item moved to
the front of the history.

# Architecture

The package composes three parts:

  - pkg/cycle: the history engine (HistoryStack plus CycleSession), safe for concurrent use.
  - pkg/control: the control socket server and the one-shot client.
  - a ports.Gateway: the window manager (see internal/adapters/i3 for the i3 implementation).

# Usage

	gw := i3.NewWindowGateway(ipc, i3.WithReleaseKeys("Alt_L", "Alt_R"))

	d := alttab.New[i3.NodeID](gw,
		alttab.WithSocketPath("/tmp/i3_cycle_windows"),
		alttab.WithLogger(logger),
	)
	if err := d.Run(ctx); err != nil {
		log.Fatal(err)
	}

A key binding then runs the one-shot client:

	bindsym Mod1+Tab exec --no-startup-id alttab --switch
	bindsym --release Alt_L nop
*/
package alttab
