package models

import (
	"encoding/json"
	"testing"

	"github.com/boardkit/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

func TestGameState_RoundTrip(t *testing.T) {
	game := othello.NewGame()
	require.True(t, game.ApplyMove(2, 3))
	require.True(t, game.ApplyMove(2, 2))

	state := NewGameState(game)

	// Through JSON, as the Redis repository stores it
	data, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded GameState
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored, err := decoded.Game()
	require.NoError(t, err)

	require.Equal(t, game.BoardCopy(), restored.BoardCopy())
	require.Equal(t, game.CurrentPlayer(), restored.CurrentPlayer())
	require.Equal(t, game.History(), restored.History())

	// Undo must still work on the restored game
	restored.UndoMove()
	restored.UndoMove()
	require.Equal(t, othello.NewGame().BoardCopy(), restored.BoardCopy())
}

func TestGameState_Invalid(t *testing.T) {
	_, err := GameState{Board: "bogus", Turn: othello.Black}.Game()
	require.Error(t, err)

	game := othello.NewGame()
	_, err = GameState{Board: game.BoardString(), Turn: othello.Empty}.Game()
	require.Error(t, err)
}

func TestNewGameResponse(t *testing.T) {
	game := othello.NewGame()
	resp := NewGameResponse("game-id", game)

	require.Equal(t, "game-id", resp.ID)
	require.Equal(t, othello.Black, resp.Turn)
	require.Len(t, resp.LegalMoves, 4)
	require.Equal(t, 2, resp.BlackScore)
	require.Equal(t, 2, resp.WhiteScore)
	require.Equal(t, 60, resp.EmptyCount)
	require.Zero(t, resp.MoveCount)
	require.False(t, resp.GameOver)
	require.Nil(t, resp.Winner)
	require.Nil(t, resp.LastMove)
}

func TestNewGameResponse_AfterMove(t *testing.T) {
	game := othello.NewGame()
	require.True(t, game.ApplyMove(2, 3))

	resp := NewGameResponse("game-id", game)

	require.Equal(t, othello.White, resp.Turn)
	require.Equal(t, 1, resp.MoveCount)
	require.NotNil(t, resp.LastMove)
	require.Equal(t, othello.Square{Row: 2, Col: 3}, *resp.LastMove)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	require.Contains(t, string(data), `"last_move":"d3"`)
	require.Contains(t, string(data), `"turn":"white"`)
}

func TestMoveRequest_JSON(t *testing.T) {
	var req MoveRequest
	require.NoError(t, json.Unmarshal([]byte(`{"square":"d3"}`), &req))
	require.Equal(t, othello.Square{Row: 2, Col: 3}, req.Square)

	require.Error(t, json.Unmarshal([]byte(`{"square":"x0"}`), &req))
}
