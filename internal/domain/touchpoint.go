package domain

// Touchpoint is one recorded customer interaction within a session. Rows are
// append-only: never mutated or deleted. Metadata is an opaque mapping the
// core never inspects; it is serialized as JSON by the store.
type Touchpoint struct {
	ID         string         `json:"id"`
	SessionID  string         `json:"sessionId"`
	CustomerID string         `json:"customerId"`
	Channel    string         `json:"channel"`
	Page       string         `json:"page"`
	EventType  string         `json:"eventType"`
	Timestamp  string         `json:"timestamp"`
	DurationMS int            `json:"durationMs"`
	Metadata   map[string]any `json:"metadata"`
}
