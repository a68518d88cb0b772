package domain

// HistoryView is a serializable snapshot of an engine, with items boxed.
type HistoryView struct {
	Items    []any       `json:"items"`
	Capacity int         `json:"capacity"`
	Session  SessionView `json:"session"`
}

// SessionView describes the cycle session part of a HistoryView.
type SessionView struct {
	Active     bool   `json:"active"`
	ID         string `json:"id,omitempty"`
	Anchor     any    `json:"anchor,omitempty"`
	AnchorRank *int   `json:"anchor_rank,omitempty"`
	Direction  string `json:"direction,omitempty"`
	Steps      int    `json:"steps"`
}
