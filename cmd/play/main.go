// Command play runs a human-vs-greedy game in the terminal.
//
// The human enters moves in field notation (e.g. "d3"). Other commands:
// "undo" takes back the last move, "quit" stops the game.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/boardkit/reversi/internal/othello"
)

func printBoard(game *othello.Game) {
	fmt.Println()
	for _, line := range game.ASCIIArtLines() {
		fmt.Println(line)
	}
	fmt.Printf("black %d - white %d\n", game.Score(othello.Black), game.Score(othello.White))
}

func humanTurn(game *othello.Game, scanner *bufio.Scanner) bool {
	for {
		fmt.Printf("%s to move> ", game.CurrentPlayer())

		if !scanner.Scan() {
			return false
		}

		input := strings.TrimSpace(strings.ToLower(scanner.Text()))

		switch input {
		case "quit", "exit":
			return false
		case "undo":
			// Take back the AI reply and the human move
			game.UndoMove()
			game.UndoMove()
			printBoard(game)
			continue
		case "":
			continue
		}

		square, err := othello.SquareFromField(input)
		if err != nil {
			fmt.Println("enter a field like d3, or undo/quit")
			continue
		}

		if !game.ApplyMove(square.Row, square.Col) {
			fmt.Printf("illegal move: %s\n", square)
			continue
		}

		return true
	}
}

func main() {
	humanColor := flag.String("color", "black", "color played by the human: black or white")
	aiDelay := flag.Duration("delay", 500*time.Millisecond, "pause before each AI move")
	flag.Parse()

	human, err := othello.ParseDisk(*humanColor)
	if err != nil || human == othello.Empty {
		fmt.Println("color must be black or white")
		os.Exit(1)
	}

	game := othello.NewGame()
	scanner := bufio.NewScanner(os.Stdin)

	printBoard(game)

	for !game.IsGameOver() {
		player := game.CurrentPlayer()

		if !game.HasLegalMoves(player) {
			fmt.Printf("%s has no moves, passing\n", player)
			game.Pass()
			continue
		}

		if player == human {
			if !humanTurn(game, scanner) {
				return
			}
		} else {
			time.Sleep(*aiDelay)
			square, ok := game.GreedyMove()
			if !ok {
				game.Pass()
				continue
			}
			fmt.Printf("%s plays %s\n", player, square)
		}

		printBoard(game)
	}

	if winner, ok := game.Winner(); ok {
		fmt.Printf("game over, %s wins\n", winner)
	} else {
		fmt.Println("game over, draw")
	}
}
