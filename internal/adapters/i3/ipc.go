// Package i3 adapts the i3 window manager IPC to ports.Gateway, for windows and workspaces.
package i3

import (
	backend "go.i3wm.org/i3/v4"
)

// EventStream is a subscription to i3 events.
type EventStream interface {
	Next() bool
	Event() backend.Event
	Close() error
}

// IPC is the subset of the i3 IPC protocol the gateways use.
type IPC interface {
	Subscribe(types ...backend.EventType) EventStream
	GetTree() (backend.Tree, error)
	GetWorkspaces() ([]backend.Workspace, error)
	RunCommand(command string) ([]backend.CommandResult, error)
}

// Conn talks to the running i3 instance over its IPC socket.
type Conn struct{}

// NewIPC returns the IPC connection to the running i3.
func NewIPC() IPC {
	return Conn{}
}

func (Conn) Subscribe(types ...backend.EventType) EventStream {
	return backend.Subscribe(types...)
}

func (Conn) GetTree() (backend.Tree, error) {
	return backend.GetTree()
}

func (Conn) GetWorkspaces() ([]backend.Workspace, error) {
	return backend.GetWorkspaces()
}

func (Conn) RunCommand(command string) ([]backend.CommandResult, error) {
	return backend.RunCommand(command)
}
