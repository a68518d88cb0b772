package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventFocus        EventType = "focus"
	EventSessionStart EventType = "session_start"
	EventStep         EventType = "step"
	EventPrune        EventType = "prune"
	EventReset        EventType = "reset"
	EventSessionEnd   EventType = "session_end"
	EventCommand      EventType = "command"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// FocusEvent reports a focus change delivered by the window manager.
// Dropped is set when the change arrived during a cycle session and was ignored.
type FocusEvent struct {
	EventBase
	Item       any  `json:"item"`
	Dropped    bool `json:"dropped,omitempty"`
	HistoryLen int  `json:"history_len"`
}

// StepEvent reports the outcome of one traversal step.
type StepEvent struct {
	EventBase
	Item       any  `json:"item,omitempty"`
	Rank       int  `json:"rank"`
	Forward    bool `json:"forward"`
	Found      bool `json:"found"`
	HistoryLen int  `json:"history_len"`
}

// PruneEvent reports a stale entry removed during a scan.
type PruneEvent struct {
	EventBase
	Item any `json:"item"`
	Rank int `json:"rank"`
}

// ResetEvent reports that history was rebuilt from the live set.
type ResetEvent struct {
	EventBase
	HistoryLen int `json:"history_len"`
}

// SessionEvent reports the start or end of a cycle session.
type SessionEvent struct {
	EventBase
	Item      any           `json:"item,omitempty"`
	Committed bool          `json:"committed,omitempty"`
	Steps     int           `json:"steps"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// CommandEvent reports a payload received on the control socket.
type CommandEvent struct {
	EventBase
	Command    string `json:"command"`
	Recognized bool   `json:"recognized"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run outside the engine lock and must not call back into the engine.
type LifecycleHooks struct {
	OnFocus        func(context.Context, *FocusEvent)
	OnSessionStart func(context.Context, *SessionEvent)
	OnStep         func(context.Context, *StepEvent)
	OnPrune        func(context.Context, *PruneEvent)
	OnReset        func(context.Context, *ResetEvent)
	OnSessionEnd   func(context.Context, *SessionEvent)
	OnCommand      func(context.Context, *CommandEvent)
}

// ComposeHooks fans every callback out to all non-nil hooks, in order.
func ComposeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range hooks {
		out.OnFocus = chain(out.OnFocus, h.OnFocus)
		out.OnSessionStart = chain(out.OnSessionStart, h.OnSessionStart)
		out.OnStep = chain(out.OnStep, h.OnStep)
		out.OnPrune = chain(out.OnPrune, h.OnPrune)
		out.OnReset = chain(out.OnReset, h.OnReset)
		out.OnSessionEnd = chain(out.OnSessionEnd, h.OnSessionEnd)
		out.OnCommand = chain(out.OnCommand, h.OnCommand)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
