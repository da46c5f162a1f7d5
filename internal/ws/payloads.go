package ws

import (
	"encoding/json"

	"fair_rps/internal/session"
)

// inbound is a client message before its payload is decoded.
type inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// client → server
type MovePayload struct {
	Index int `json:"index"` // 1-based, as shown in the menu
}

// server → client
type CommitPayload struct {
	Round int      `json:"round"`
	HMAC  string   `json:"hmac"`
	Moves []string `json:"moves"`
}

type ResultPayload struct {
	Round        int    `json:"round"`
	UserMove     string `json:"user_move"`
	ComputerMove string `json:"computer_move"`
	Outcome      string `json:"outcome"`
	HMAC         string `json:"hmac"`
	Key          string `json:"key"`
}

// TablePayload rows are the computer's moves and columns the user's; each
// cell is the user's outcome for that pairing.
type TablePayload struct {
	Moves []string   `json:"moves"`
	Table [][]string `json:"table"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type ByePayload struct {
	Stats session.Stats `json:"stats"`
}
