package domain

import "bytes"

// Command is a control token sent by a one-shot client.
type Command string

const (
	// CommandSwitch steps toward older items.
	CommandSwitch Command = "switch"
	// CommandReverseSwitch steps toward newer items (or the tail, on a fresh session).
	CommandReverseSwitch Command = "rev-switch"
)

// MaxCommandSize bounds a single read from a control connection.
const MaxCommandSize = 1024

// ParseCommand matches a raw payload against the known tokens.
// The payload must equal a token exactly; anything else is protocol noise.
func ParseCommand(payload []byte) (Command, bool) {
	switch {
	case bytes.Equal(payload, []byte(CommandSwitch)):
		return CommandSwitch, true
	case bytes.Equal(payload, []byte(CommandReverseSwitch)):
		return CommandReverseSwitch, true
	}
	return "", false
}

// Forward reports whether the command walks toward older items.
func (c Command) Forward() bool {
	return c == CommandSwitch
}

// Direction returns a label for logs and metrics.
func (c Command) Direction() string {
	return DirectionLabel(c.Forward())
}

// DirectionLabel names a traversal direction.
func DirectionLabel(forward bool) string {
	if forward {
		return "forward"
	}
	return "backward"
}
