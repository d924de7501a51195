package models

import (
	"time"

	"github.com/boardkit/reversi/internal/othello"
	"github.com/lib/pq"
)

// GameState is the serialized form of a game, used for Redis storage.
type GameState struct {
	Board   string         `json:"board"`
	Turn    othello.Disk   `json:"turn"`
	History []othello.Move `json:"history"`
}

// NewGameState captures the full state of a game.
func NewGameState(game *othello.Game) GameState {
	return GameState{
		Board:   game.BoardString(),
		Turn:    game.CurrentPlayer(),
		History: game.History(),
	}
}

// Game rebuilds the engine state from its serialized form.
func (s GameState) Game() (*othello.Game, error) {
	board, err := othello.ParseBoard(s.Board)
	if err != nil {
		return nil, err
	}

	return othello.NewGameFromState(board, s.Turn, s.History)
}

// MoveRequest is the payload for playing a move, e.g. {"square": "d3"}.
type MoveRequest struct {
	Square othello.Square `json:"square"`
}

// LegalMovesResponse lists the legal squares for a player.
type LegalMovesResponse struct {
	Player othello.Disk     `json:"player"`
	Moves  []othello.Square `json:"moves"`
}

// GameResponse is the read-only snapshot returned by every game endpoint.
type GameResponse struct {
	ID         string           `json:"id"`
	Board      string           `json:"board"`
	Turn       othello.Disk     `json:"turn"`
	LegalMoves []othello.Square `json:"legal_moves"`
	LastMove   *othello.Square  `json:"last_move,omitempty"`
	BlackScore int              `json:"black_score"`
	WhiteScore int              `json:"white_score"`
	EmptyCount int              `json:"empty_count"`
	MoveCount  int              `json:"move_count"`
	GameOver   bool             `json:"game_over"`
	Winner     *othello.Disk    `json:"winner,omitempty"`
}

// NewGameResponse builds a snapshot of the given game.
func NewGameResponse(id string, game *othello.Game) GameResponse {
	history := game.History()

	resp := GameResponse{
		ID:         id,
		Board:      game.BoardString(),
		Turn:       game.CurrentPlayer(),
		LegalMoves: game.LegalMoves(game.CurrentPlayer()),
		BlackScore: game.Score(othello.Black),
		WhiteScore: game.Score(othello.White),
		EmptyCount: game.EmptyCount(),
		MoveCount:  len(history),
		GameOver:   game.IsGameOver(),
	}

	if len(history) > 0 {
		square := history[len(history)-1].Square
		resp.LastMove = &square
	}

	if winner, ok := game.Winner(); ok {
		resp.Winner = &winner
	}

	return resp
}

// ArchivedGame is a finished game as stored in Postgres. Moves holds the
// played squares in field notation, in game order.
type ArchivedGame struct {
	ID         string         `json:"id"          db:"id"`
	Winner     string         `json:"winner"      db:"winner"`
	BlackScore int            `json:"black_score" db:"black_score"`
	WhiteScore int            `json:"white_score" db:"white_score"`
	Moves      pq.StringArray `json:"moves"       db:"moves"`
	FinishedAt time.Time      `json:"finished_at" db:"finished_at"`
}

// ArchiveResponse is the response for the archive listing.
type ArchiveResponse struct {
	Count int            `json:"count"`
	Games []ArchivedGame `json:"games"`
}
