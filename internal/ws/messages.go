package ws

import "encoding/json"

// Envelope wraps every WS frame in both directions.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "buttonClick"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// ──────────────────────────── Request / Response DTOs ─────────────────────────

// ClickBody is the body for "buttonClick". ButtonID may be empty in the
// single-button variant.
type ClickBody struct {
	ButtonID string `json:"buttonId"`
}

// CreateButtonBody is the body for "createButton".
type CreateButtonBody struct {
	Title       string `json:"title"       validate:"max=64"`
	Description string `json:"description" validate:"max=256"`
	MaxUsers    int    `json:"maxUsers"    validate:"gte=0,lte=64"`
}

// JoinButtonBody is the body for "joinButton" and "leaveButton".
type JoinButtonBody struct {
	ButtonID string `json:"buttonId" validate:"required"`
}

// SendMessageBody is the body for "sendMessage" / "sendPrivateMessage".
type SendMessageBody struct {
	Text string `json:"text" validate:"required,max=500"`
}

// Empty ACK body (useful for many handlers).
type AckBody struct{}

// ErrorBody is returned for failures.
type ErrorBody struct {
	Error string `json:"error"`
}
