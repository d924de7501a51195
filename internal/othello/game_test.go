package othello

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	game := NewGame()

	// Standard opening: white on the main diagonal, black on the other
	require.Equal(t, White, game.Disk(3, 3))
	require.Equal(t, White, game.Disk(4, 4))
	require.Equal(t, Black, game.Disk(3, 4))
	require.Equal(t, Black, game.Disk(4, 3))

	require.Equal(t, Black, game.CurrentPlayer())
	require.Equal(t, 2, game.Score(Black))
	require.Equal(t, 2, game.Score(White))
	require.Equal(t, 60, game.EmptyCount())
	require.Empty(t, game.History())
}

func TestGame_LegalMoves_Opening(t *testing.T) {
	game := NewGame()

	moves := game.LegalMoves(Black)
	require.Len(t, moves, 4)
	require.Contains(t, moves, Square{Row: 2, Col: 3})
	require.Contains(t, moves, Square{Row: 3, Col: 2})
	require.Contains(t, moves, Square{Row: 4, Col: 5})
	require.Contains(t, moves, Square{Row: 5, Col: 4})

	// White has the mirrored set of four moves
	require.Len(t, game.LegalMoves(White), 4)
}

func TestGame_IsLegal(t *testing.T) {
	game := NewGame()

	require.True(t, game.IsLegal(2, 3, Black))
	require.True(t, game.IsLegalMove(2, 3))

	// Occupied square
	require.False(t, game.IsLegal(3, 3, Black))

	// Empty square that flips nothing
	require.False(t, game.IsLegal(0, 0, Black))

	// Out-of-range coordinates are treated as illegal
	require.False(t, game.IsLegal(-1, 0, Black))
	require.False(t, game.IsLegal(0, 8, Black))
}

func TestGame_ApplyMove(t *testing.T) {
	game := NewGame()

	ok := game.ApplyMove(2, 3)
	require.True(t, ok)

	require.Equal(t, Black, game.Disk(2, 3))
	require.Equal(t, Black, game.Disk(3, 3), "d4 should have been flipped")
	require.Equal(t, White, game.CurrentPlayer())

	// One placed disk plus one flip
	require.Equal(t, 4, game.Score(Black))
	require.Equal(t, 1, game.Score(White))
	require.Len(t, game.History(), 1)
}

func TestGame_ApplyMove_DiskCountGrowth(t *testing.T) {
	game := NewGame()

	for !game.IsGameOver() {
		if !game.HasLegalMoves(game.CurrentPlayer()) {
			game.Pass()
			continue
		}

		before := game.Score(Black) + game.Score(White)
		history := game.History()

		square, ok := game.GreedyMove()
		require.True(t, ok)

		flips := len(game.History()[len(history)].Flips)
		require.Positive(t, flips)

		after := game.Score(Black) + game.Score(White)
		require.Equal(t, before+1, after, "move at %s must add exactly one disk", square)
	}

	// Score invariant holds at the end of a full game as well
	require.Equal(t, 64, game.Score(Black)+game.Score(White)+game.EmptyCount())
}

func TestGame_ApplyMove_Illegal(t *testing.T) {
	game := NewGame()

	boardBefore := game.BoardCopy()

	require.False(t, game.ApplyMove(0, 0))
	require.False(t, game.ApplyMove(3, 3))
	require.False(t, game.ApplyMove(-1, 5))
	require.False(t, game.ApplyMove(8, 8))

	require.Equal(t, boardBefore, game.BoardCopy())
	require.Equal(t, Black, game.CurrentPlayer())
	require.Empty(t, game.History())
}

func TestGame_SwitchTurn(t *testing.T) {
	game := NewGame()

	first := game.CurrentPlayer()
	game.SwitchTurn()
	require.Equal(t, first.Opponent(), game.CurrentPlayer())

	game.Pass()
	require.Equal(t, first, game.CurrentPlayer())
}

func TestGame_UndoMove(t *testing.T) {
	game := NewGame()

	boardBefore := game.BoardCopy()
	turnBefore := game.CurrentPlayer()

	require.True(t, game.ApplyMove(2, 3))
	game.UndoMove()

	require.Equal(t, boardBefore, game.BoardCopy())
	require.Equal(t, turnBefore, game.CurrentPlayer())
	require.Empty(t, game.History())
}

func TestGame_UndoMove_EmptyHistory(t *testing.T) {
	game := NewGame()

	boardBefore := game.BoardCopy()
	game.UndoMove()

	require.Equal(t, boardBefore, game.BoardCopy())
	require.Equal(t, Black, game.CurrentPlayer())
}

func TestGame_UndoMove_MultiStep(t *testing.T) {
	game := NewGame()

	type snapshot struct {
		board [BoardSize][BoardSize]Disk
		turn  Disk
	}

	var snapshots []snapshot

	// Play five greedy moves, remembering the state before each
	for i := 0; i < 5; i++ {
		snapshots = append(snapshots, snapshot{board: game.BoardCopy(), turn: game.CurrentPlayer()})
		_, ok := game.GreedyMove()
		require.True(t, ok)
	}

	// Undo them in reverse order
	for i := len(snapshots) - 1; i >= 0; i-- {
		game.UndoMove()
		require.Equal(t, snapshots[i].board, game.BoardCopy())
		require.Equal(t, snapshots[i].turn, game.CurrentPlayer())
	}

	require.Empty(t, game.History())
}

func TestGame_Reset(t *testing.T) {
	game := NewGame()

	require.True(t, game.ApplyMove(2, 3))
	game.Reset()

	require.Equal(t, NewGame().BoardCopy(), game.BoardCopy())
	require.Equal(t, Black, game.CurrentPlayer())
	require.Empty(t, game.History())
}

func gameFromBoardString(t *testing.T, boardString string, turn Disk) *Game {
	t.Helper()

	board, err := ParseBoard(boardString)
	require.NoError(t, err)

	game, err := NewGameFromState(board, turn, nil)
	require.NoError(t, err)

	return game
}

func TestGame_IsGameOver(t *testing.T) {
	game := NewGame()
	require.False(t, game.IsGameOver())

	// A board fully covered by one color has no legal moves for either player
	full := gameFromBoardString(t, strings.Repeat("B", 64), Black)
	require.True(t, full.IsGameOver())

	// Game over with empty squares left: a lone black disk cannot be flipped
	// and black has nothing to flip either
	lone := gameFromBoardString(t, "B"+strings.Repeat(".", 63), White)
	require.True(t, lone.IsGameOver())
	require.Equal(t, 63, lone.EmptyCount())
}

func TestGame_Winner(t *testing.T) {
	game := NewGame()

	// Winner is undefined while the game is in progress
	_, ok := game.Winner()
	require.False(t, ok)

	full := gameFromBoardString(t, strings.Repeat("B", 64), Black)
	winner, ok := full.Winner()
	require.True(t, ok)
	require.Equal(t, Black, winner)

	// Equal scores yield no winner
	tie := gameFromBoardString(t, strings.Repeat("B", 32)+strings.Repeat("W", 32), Black)
	require.True(t, tie.IsGameOver())
	_, ok = tie.Winner()
	require.False(t, ok)
}

func TestGame_ScoreInvariant(t *testing.T) {
	game := NewGame()

	require.Equal(t, 64, game.Score(Black)+game.Score(White)+game.EmptyCount())

	require.True(t, game.ApplyMove(2, 3))
	require.Equal(t, 64, game.Score(Black)+game.Score(White)+game.EmptyCount())

	game.UndoMove()
	require.Equal(t, 64, game.Score(Black)+game.Score(White)+game.EmptyCount())
}

func TestGame_Evaluate(t *testing.T) {
	game := NewGame()

	require.Equal(t, 0, game.Evaluate(Black))

	require.True(t, game.ApplyMove(2, 3))
	require.Equal(t, 3, game.Evaluate(Black))
	require.Equal(t, -3, game.Evaluate(White))
}

func TestGame_GreedyMove_Opening(t *testing.T) {
	game := NewGame()

	// All four opening moves flip exactly one disk; the applied move must
	// match that maximum
	maxFlips := 0
	for _, move := range game.LegalMoves(Black) {
		if flips := len(game.allFlips(move.Row, move.Col, Black)); flips > maxFlips {
			maxFlips = flips
		}
	}
	require.Equal(t, 1, maxFlips)

	square, ok := game.GreedyMove()
	require.True(t, ok)
	require.Contains(t, []Square{{2, 3}, {3, 2}, {4, 5}, {5, 4}}, square)
	require.Len(t, game.History()[0].Flips, maxFlips)
	require.Equal(t, White, game.CurrentPlayer())
}

func TestGame_GreedyMove_NoMoves(t *testing.T) {
	full := gameFromBoardString(t, strings.Repeat("B", 64), Black)

	_, ok := full.GreedyMove()
	require.False(t, ok)
	require.Empty(t, full.History())
}

func TestGame_GreedyMove_PicksMaximum(t *testing.T) {
	game := NewGame()

	// Play a fixed sequence, then check greedy always matches the best
	// immediate flip count over all legal moves
	require.True(t, game.ApplyMove(2, 3))
	require.True(t, game.ApplyMove(2, 2))

	for i := 0; i < 10; i++ {
		player := game.CurrentPlayer()
		maxFlips := 0
		for _, move := range game.LegalMoves(player) {
			if flips := len(game.allFlips(move.Row, move.Col, player)); flips > maxFlips {
				maxFlips = flips
			}
		}

		if maxFlips == 0 {
			game.Pass()
			continue
		}

		_, ok := game.GreedyMove()
		require.True(t, ok)

		history := game.History()
		require.Len(t, history[len(history)-1].Flips, maxFlips)
	}
}

func TestGame_Clone(t *testing.T) {
	game := NewGame()
	require.True(t, game.ApplyMove(2, 3))

	clone := game.Clone()
	require.Equal(t, game.BoardCopy(), clone.BoardCopy())
	require.Equal(t, game.CurrentPlayer(), clone.CurrentPlayer())
	require.Equal(t, game.History(), clone.History())

	// Mutating the clone must not touch the original
	require.True(t, clone.ApplyMove(2, 2))
	require.Equal(t, Empty, game.Disk(2, 2))
	require.Len(t, game.History(), 1)

	clone.UndoMove()
	clone.UndoMove()
	clone.Reset()
	require.Equal(t, Black, game.Disk(2, 3))
	require.Equal(t, White, game.CurrentPlayer())
	require.Len(t, game.History(), 1)

	// And the other way around
	game.UndoMove()
	require.Equal(t, NewGame().BoardCopy(), clone.BoardCopy())
}

func TestGame_BoardCopy_IsSnapshot(t *testing.T) {
	game := NewGame()

	board := game.BoardCopy()
	board[0][0] = Black

	require.Equal(t, Empty, game.Disk(0, 0))
}

func TestGame_Disk_OutOfRange(t *testing.T) {
	game := NewGame()

	require.Panics(t, func() { game.Disk(-1, 0) })
	require.Panics(t, func() { game.Disk(0, 8) })
}

func TestGame_BoardString_RoundTrip(t *testing.T) {
	game := NewGame()
	require.True(t, game.ApplyMove(2, 3))

	board, err := ParseBoard(game.BoardString())
	require.NoError(t, err)
	require.Equal(t, game.BoardCopy(), board)

	_, err = ParseBoard("too short")
	require.Error(t, err)

	_, err = ParseBoard(strings.Repeat("x", 64))
	require.Error(t, err)
}

func TestNewGameFromState(t *testing.T) {
	game := NewGame()
	require.True(t, game.ApplyMove(2, 3))

	restored, err := NewGameFromState(game.BoardCopy(), game.CurrentPlayer(), game.History())
	require.NoError(t, err)
	require.Equal(t, game.BoardCopy(), restored.BoardCopy())
	require.Equal(t, game.CurrentPlayer(), restored.CurrentPlayer())

	// The restored history must support undo
	restored.UndoMove()
	require.Equal(t, NewGame().BoardCopy(), restored.BoardCopy())
	require.Equal(t, Black, restored.CurrentPlayer())

	_, err = NewGameFromState(game.BoardCopy(), Empty, nil)
	require.Error(t, err)

	_, err = NewGameFromState(game.BoardCopy(), Black, []Move{{Player: Empty}})
	require.Error(t, err)
}

func TestIsCorner(t *testing.T) {
	require.True(t, IsCorner(0, 0))
	require.True(t, IsCorner(0, 7))
	require.True(t, IsCorner(7, 0))
	require.True(t, IsCorner(7, 7))

	require.False(t, IsCorner(0, 3))
	require.False(t, IsCorner(3, 3))
}

func TestGame_ASCIIArtLines(t *testing.T) {
	game := NewGame()

	lines := game.ASCIIArtLines()
	require.Len(t, lines, 10)
	require.Equal(t, "+-a-b-c-d-e-f-g-h-+", lines[0])
	require.Contains(t, lines[4], "○")
	require.Contains(t, lines[4], "●")
}

func TestGame_FullGame_GreedyVsGreedy(t *testing.T) {
	game := NewGame()

	// A greedy-vs-greedy game must terminate and keep all invariants
	for moves := 0; !game.IsGameOver(); moves++ {
		require.Less(t, moves, 200, "game did not terminate")

		if !game.HasLegalMoves(game.CurrentPlayer()) {
			game.Pass()
			continue
		}

		_, ok := game.GreedyMove()
		require.True(t, ok)
		require.Equal(t, 64, game.Score(Black)+game.Score(White)+game.EmptyCount())
	}

	require.False(t, game.HasLegalMoves(Black))
	require.False(t, game.HasLegalMoves(White))
}
