package i3

import (
	"strings"

	backend "go.i3wm.org/i3/v4"
)

// DefaultWorkspaceReleaseKeys end a workspace cycle session: both Super keys by keycode and symbol.
var DefaultWorkspaceReleaseKeys = []string{"133", "134", "Super_L", "Super_R"}

var workspaceQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// NewWorkspaceGateway cycles through workspaces, identified by name.
func NewWorkspaceGateway(ipc IPC, opts ...Option) *Gateway[string] {
	return newGateway(ipc, itemClass[string]{
		name:  "workspaces",
		event: backend.WorkspaceEventType,
		focusOf: func(ev backend.Event) (string, bool) {
			w, ok := ev.(*backend.WorkspaceEvent)
			if !ok || (w.Change != "focus" && w.Change != "init") || w.Current.Name == "" {
				return "", false
			}
			return w.Current.Name, true
		},
		live: func(ipc IPC) ([]string, error) {
			workspaces, err := ipc.GetWorkspaces()
			if err != nil {
				return nil, err
			}
			names := make([]string, 0, len(workspaces))
			for _, ws := range workspaces {
				names = append(names, ws.Name)
			}
			return names, nil
		},
		current: func(ipc IPC) (string, bool, error) {
			workspaces, err := ipc.GetWorkspaces()
			if err != nil {
				return "", false, err
			}
			for _, ws := range workspaces {
				if ws.Focused {
					return ws.Name, true, nil
				}
			}
			return "", false, nil
		},
		command: func(name string) string {
			return `workspace "` + workspaceQuoter.Replace(name) + `"`
		},
	}, DefaultWorkspaceReleaseKeys, opts)
}
