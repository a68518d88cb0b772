package domain

import "errors"

// ErrGatewayClosed is returned when the window manager event stream ends unexpectedly.
var ErrGatewayClosed = errors.New("gateway event stream closed")

// ErrAlreadyRunning is returned when another daemon owns the control socket path.
var ErrAlreadyRunning = errors.New("daemon already running")

// ErrNotSocket is returned when the control socket path is occupied by something other than a socket.
var ErrNotSocket = errors.New("path exists and is not a unix socket")

// ErrUnknownMode is returned when the configured item class is neither windows nor workspaces.
var ErrUnknownMode = errors.New("unknown mode")
