package ws

import (
	"encoding/json"

	"github.com/boardkit/reversi/internal/othello"
)

// Incoming is the envelope for client messages. ID is echoed back so the
// client can correlate responses.
type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is the envelope for server messages. Game-level failures such as
// an illegal move are reported in Error while the connection stays open.
type Outgoing struct {
	ID    int    `json:"id"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// GameRequest addresses an existing game, used by state, pass, undo, greedy
// and reset events.
type GameRequest struct {
	GameID string `json:"game_id"`
}

// MoveRequest is the payload for the move event.
type MoveRequest struct {
	GameID string         `json:"game_id"`
	Square othello.Square `json:"square"`
}
