package game

import "time"

// Phase is the current stage of a game round.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseCountdown Phase = "countdown"
	PhaseActive    Phase = "active"
	PhaseFinished  Phase = "finished"
	PhaseChat      Phase = "chat"
)

// Session is the server-side identity bound to one live connection.
type Session struct {
	ConnID      string `json:"-"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// Winner records who pressed the button first in the current round.
type Winner struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Timestamp   time.Time `json:"timestamp"`
}

// RoundButton is one of the buttons generated for a round. Whether it is
// the correct one is never serialized to clients.
type RoundButton struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Visible   bool   `json:"visible"`
	isCorrect bool
}

// ChatMessage is append-only; it is never mutated after creation.
type ChatMessage struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}

// StateSnapshot is the read-only view of the round state sent to newly
// connected clients and returned by GET /api/state.
type StateSnapshot struct {
	Phase          Phase         `json:"phase"`
	CountdownValue int           `json:"countdownValue"`
	Winner         *Winner       `json:"winner,omitempty"`
	Buttons        []RoundButton `json:"buttons"`
	Messages       []ChatMessage `json:"messages"`
}

// ButtonConfig is the client-supplied configuration for CreateButton.
type ButtonConfig struct {
	Title       string
	Description string
	MaxUsers    int
}

// UserButton is a user-created button with its paired private chat room.
// Members is the room membership; the two are kept in lockstep by storing
// membership once, on the room.
type UserButton struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	MaxUsers    int      `json:"maxUsers"`
	CreatorID   string   `json:"creatorId"`
	Members     []string `json:"members"`
	MemberNames []string `json:"memberNames"`
}

// MembershipDelta is the payload of userJoined / userLeft room events.
type MembershipDelta struct {
	ButtonID    string `json:"buttonId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}
