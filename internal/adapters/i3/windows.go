package i3

import (
	"fmt"

	backend "go.i3wm.org/i3/v4"
)

// DefaultWindowReleaseKeys end a window cycle session.
var DefaultWindowReleaseKeys = []string{"Alt_L", "Alt_R"}

// NodeID identifies a window container.
type NodeID = backend.NodeID

// NewWindowGateway cycles through window containers, identified by con_id.
func NewWindowGateway(ipc IPC, opts ...Option) *Gateway[NodeID] {
	return newGateway(ipc, itemClass[NodeID]{
		name:  "windows",
		event: backend.WindowEventType,
		focusOf: func(ev backend.Event) (NodeID, bool) {
			w, ok := ev.(*backend.WindowEvent)
			if !ok || w.Change != "focus" {
				return 0, false
			}
			return w.Container.ID, true
		},
		live: func(ipc IPC) ([]NodeID, error) {
			tree, err := ipc.GetTree()
			if err != nil {
				return nil, err
			}
			var ids []NodeID
			walkLeaves(tree.Root, func(n *backend.Node) {
				ids = append(ids, n.ID)
			})
			return ids, nil
		},
		current: func(ipc IPC) (NodeID, bool, error) {
			tree, err := ipc.GetTree()
			if err != nil {
				return 0, false, err
			}
			var id NodeID
			var found bool
			walkLeaves(tree.Root, func(n *backend.Node) {
				if n.Focused {
					id, found = n.ID, true
				}
			})
			return id, found, nil
		},
		command: func(id NodeID) string {
			return fmt.Sprintf("[con_id=%d] focus", id)
		},
	}, DefaultWindowReleaseKeys, opts)
}

// walkLeaves visits window containers: childless con and floating_con nodes outside dock areas.
func walkLeaves(n *backend.Node, visit func(*backend.Node)) {
	if n == nil || n.Type == backend.DockareaNode {
		return
	}
	if len(n.Nodes) == 0 && len(n.FloatingNodes) == 0 {
		if n.Type == backend.Con || n.Type == backend.FloatingCon {
			visit(n)
		}
		return
	}
	for _, c := range n.Nodes {
		walkLeaves(c, visit)
	}
	for _, c := range n.FloatingNodes {
		walkLeaves(c, visit)
	}
}
