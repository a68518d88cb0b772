/*
Package cycle implements the focus-history engine behind alt-tab style switching.

An Engine owns a history.Stack and a session.State behind a single mutex. Focus events
from the window manager reorder history while no cycle session is active; switch
commands advance a session that walks history in recency order, pruning items that no
longer exist; the modifier release ends the session and commits the selected item to
the front.

# Traversal

The first step of a session scans from rank 1 when moving forward (rank 0 is the item
that currently has focus) or from the tail when moving backward. Later steps start one
rank away from the previous selection in the requested direction, so alternating
directions walks back toward the origin. A scan runs to the boundary, then wraps once to
the other end. Stale entries met on the way are removed permanently. If history holds no
live item at all, it is rebuilt from the live set.

# Hooks

Lifecycle hooks are collected while the lock is held and fired after it is released, so
observers may block or call out to the network without stalling focus handling.
*/
package cycle
