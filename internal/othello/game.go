package othello

import (
	"fmt"
	"strings"
)

// BoardSize is the width and height of the board.
const BoardSize = 8

// Move records an applied move for undo: the square played, the player who
// moved and the disks that were flipped as a result.
type Move struct {
	Square Square   `json:"square"`
	Player Disk     `json:"player"`
	Flips  []Square `json:"flips"`
}

// Game holds the full state of a Reversi game: the board, the player to move
// and the undo history. It is not safe for concurrent use; callers hosting
// multiple games must synchronize access per instance.
type Game struct {
	board   [BoardSize][BoardSize]Disk
	turn    Disk
	history []Move
}

// NewGame creates a game with the standard opening position and Black to move.
func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// Reset restores the standard opening position, sets Black to move and clears
// the undo history.
func (g *Game) Reset() {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			g.board[r][c] = Empty
		}
	}
	g.board[3][3] = White
	g.board[4][4] = White
	g.board[3][4] = Black
	g.board[4][3] = Black
	g.turn = Black
	g.history = g.history[:0]
}

// Disk returns the disk at the given square. Out-of-range coordinates are a
// programmer error and panic.
func (g *Game) Disk(row, col int) Disk {
	if !(Square{Row: row, Col: col}).InBounds() {
		panic(fmt.Sprintf("square out of bounds: (%d,%d)", row, col))
	}
	return g.board[row][col]
}

// CurrentPlayer returns the player to move.
func (g *Game) CurrentPlayer() Disk {
	return g.turn
}

// directionFlips walks from (row,col) in direction (dr,dc) and returns the
// opponent disks that would be flipped. The walk collects consecutive
// opponent disks; hitting one of player's own disks validates the path,
// while hitting the board edge or an empty square discards it.
func (g *Game) directionFlips(row, col, dr, dc int, player Disk) []Square {
	var path []Square

	opponent := player.Opponent()

	r, c := row+dr, col+dc
	for r >= 0 && r < BoardSize && c >= 0 && c < BoardSize {
		switch g.board[r][c] {
		case opponent:
			path = append(path, Square{Row: r, Col: c})
		case player:
			return path
		default:
			return nil
		}
		r += dr
		c += dc
	}

	return nil
}

// allFlips returns every disk flipped by playing (row,col) as player, over
// all 8 directions. The result is empty when the move is illegal.
func (g *Game) allFlips(row, col int, player Disk) []Square {
	var flips []Square

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			flips = append(flips, g.directionFlips(row, col, dr, dc, player)...)
		}
	}

	return flips
}

// IsLegal checks whether player may play at (row,col): the square must be on
// the board, empty, and flip at least one opponent disk.
func (g *Game) IsLegal(row, col int, player Disk) bool {
	if !(Square{Row: row, Col: col}).InBounds() {
		return false
	}
	return g.board[row][col] == Empty && len(g.allFlips(row, col, player)) > 0
}

// IsLegalMove checks whether the current player may play at (row,col).
func (g *Game) IsLegalMove(row, col int) bool {
	return g.IsLegal(row, col, g.turn)
}

// LegalMoves returns all legal squares for the given player in row-major
// order. Callers must not depend on the order.
func (g *Game) LegalMoves(player Disk) []Square {
	moves := make([]Square, 0)

	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if g.IsLegal(r, c, player) {
				moves = append(moves, Square{Row: r, Col: c})
			}
		}
	}

	return moves
}

// HasLegalMoves returns whether the given player has at least one legal move.
func (g *Game) HasLegalMoves(player Disk) bool {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if g.IsLegal(r, c, player) {
				return true
			}
		}
	}
	return false
}

// ApplyMove plays (row,col) for the current player. It returns false without
// changing any state when the move is illegal or out of range. On success the
// move is recorded for undo, the flipped disks change color and the turn
// passes to the opponent.
func (g *Game) ApplyMove(row, col int) bool {
	if !(Square{Row: row, Col: col}).InBounds() || g.board[row][col] != Empty {
		return false
	}

	flips := g.allFlips(row, col, g.turn)
	if len(flips) == 0 {
		return false
	}

	g.history = append(g.history, Move{
		Square: Square{Row: row, Col: col},
		Player: g.turn,
		Flips:  flips,
	})

	g.board[row][col] = g.turn
	for _, f := range flips {
		g.board[f.Row][f.Col] = g.turn
	}

	g.SwitchTurn()
	return true
}

// SwitchTurn unconditionally gives the turn to the opponent.
func (g *Game) SwitchTurn() {
	g.turn = g.turn.Opponent()
}

// Pass gives the turn to the opponent without placing a disk. It is the same
// operation as SwitchTurn; callers decide when a pass is warranted by first
// checking HasLegalMoves.
func (g *Game) Pass() {
	g.SwitchTurn()
}

// UndoMove reverses the most recent move: the played square becomes empty
// again, its flips revert to the mover's opponent and the mover gets the
// turn back. Undoing with an empty history is a no-op.
func (g *Game) UndoMove() {
	if len(g.history) == 0 {
		return
	}

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.board[last.Square.Row][last.Square.Col] = Empty
	for _, f := range last.Flips {
		g.board[f.Row][f.Col] = last.Player.Opponent()
	}
	g.turn = last.Player
}

// IsGameOver returns true when neither player has a legal move. This can
// happen with empty squares still on the board.
func (g *Game) IsGameOver() bool {
	return !g.HasLegalMoves(Black) && !g.HasLegalMoves(White)
}

// Winner returns the player with strictly more disks. The second return
// value is false when the game is not over yet or when the game is a tie.
func (g *Game) Winner() (Disk, bool) {
	if !g.IsGameOver() {
		return Empty, false
	}

	black := g.Score(Black)
	white := g.Score(White)

	switch {
	case black > white:
		return Black, true
	case white > black:
		return White, true
	default:
		return Empty, false
	}
}

// Score counts the disks of the given player on the board.
func (g *Game) Score(player Disk) int {
	count := 0
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if g.board[r][c] == player {
				count++
			}
		}
	}
	return count
}

// EmptyCount counts the empty squares on the board.
func (g *Game) EmptyCount() int {
	return g.Score(Empty)
}

// Evaluate returns the material balance for the given player: own disk count
// minus the opponent's. This is an immediate heuristic, not a search value.
func (g *Game) Evaluate(player Disk) int {
	return g.Score(player) - g.Score(player.Opponent())
}

// GreedyMove selects and applies the legal move for the current player that
// flips the most disks immediately. Ties are broken deterministically in
// row-major board order: the first maximum wins. It returns the applied
// square, or false when the current player has no legal moves.
func (g *Game) GreedyMove() (Square, bool) {
	var best Square
	maxFlips := 0

	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if g.board[r][c] != Empty {
				continue
			}
			if flips := len(g.allFlips(r, c, g.turn)); flips > maxFlips {
				maxFlips = flips
				best = Square{Row: r, Col: c}
			}
		}
	}

	if maxFlips == 0 {
		return Square{}, false
	}

	g.ApplyMove(best.Row, best.Col)
	return best, true
}

// Clone returns a fully independent copy of the game. Mutating the clone
// never affects the original.
func (g *Game) Clone() *Game {
	clone := &Game{
		board:   g.board,
		turn:    g.turn,
		history: make([]Move, len(g.history)),
	}

	for i, move := range g.history {
		clone.history[i] = Move{
			Square: move.Square,
			Player: move.Player,
			Flips:  append([]Square(nil), move.Flips...),
		}
	}

	return clone
}

// BoardCopy returns a deep copy of the board for rendering.
func (g *Game) BoardCopy() [BoardSize][BoardSize]Disk {
	return g.board
}

// History returns a deep copy of the undo history, oldest move first.
func (g *Game) History() []Move {
	history := make([]Move, len(g.history))
	for i, move := range g.history {
		history[i] = Move{
			Square: move.Square,
			Player: move.Player,
			Flips:  append([]Square(nil), move.Flips...),
		}
	}
	return history
}

// IsCorner returns whether (row,col) is one of the four corners.
func IsCorner(row, col int) bool {
	return (row == 0 || row == BoardSize-1) && (col == 0 || col == BoardSize-1)
}

// BoardString returns the compact 64-character board representation in
// row-major order: 'B' for black, 'W' for white, '.' for empty.
func (g *Game) BoardString() string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			switch g.board[r][c] {
			case Black:
				sb.WriteByte('B')
			case White:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseBoard converts a compact 64-character board representation back to a
// board.
func ParseBoard(s string) ([BoardSize][BoardSize]Disk, error) {
	var board [BoardSize][BoardSize]Disk

	if len(s) != BoardSize*BoardSize {
		return board, fmt.Errorf("board string must be %d characters long, got %d", BoardSize*BoardSize, len(s))
	}

	for i := 0; i < len(s); i++ {
		var disk Disk
		switch s[i] {
		case 'B':
			disk = Black
		case 'W':
			disk = White
		case '.':
			disk = Empty
		default:
			return board, fmt.Errorf("invalid board character %q at offset %d", s[i], i)
		}
		board[i/BoardSize][i%BoardSize] = disk
	}

	return board, nil
}

// NewGameFromState rebuilds a game from a previously captured board, turn and
// history. The inputs are deep-copied.
func NewGameFromState(board [BoardSize][BoardSize]Disk, turn Disk, history []Move) (*Game, error) {
	if turn != Black && turn != White {
		return nil, fmt.Errorf("invalid turn: %s", turn)
	}

	g := &Game{
		board:   board,
		turn:    turn,
		history: make([]Move, len(history)),
	}

	for i, move := range history {
		if move.Player != Black && move.Player != White {
			return nil, fmt.Errorf("invalid player in history move %d: %s", i, move.Player)
		}
		if !move.Square.InBounds() {
			return nil, fmt.Errorf("invalid square in history move %d: (%d,%d)", i, move.Square.Row, move.Square.Col)
		}
		g.history[i] = Move{
			Square: move.Square,
			Player: move.Player,
			Flips:  append([]Square(nil), move.Flips...),
		}
	}

	return g, nil
}

// ASCIIArtLines returns the ascii art lines for the board. Legal moves for
// the current player are marked with a dot.
func (g *Game) ASCIIArtLines() []string {
	lines := make([]string, BoardSize+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for r := 0; r < BoardSize; r++ {
		line := fmt.Sprintf("%d ", r+1)

		for c := 0; c < BoardSize; c++ {
			switch {
			case g.board[r][c] == White:
				line += "○ "
			case g.board[r][c] == Black:
				line += "● "
			case g.IsLegal(r, c, g.turn):
				line += "· "
			default:
				line += "  "
			}
		}

		lines[r+1] = line + "|"
	}

	lines[BoardSize+1] = "+-----------------+"

	return lines
}

// String returns the ascii art representation of the board.
func (g *Game) String() string {
	return strings.Join(g.ASCIIArtLines(), "\n")
}
