package api

import (
	"errors"
	"log/slog"

	"github.com/boardkit/reversi/internal/models"
	"github.com/boardkit/reversi/internal/othello"
	"github.com/boardkit/reversi/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// parseGameID validates the game id path parameter.
func parseGameID(c *fiber.Ctx) (string, error) {
	gameID := c.Params("id")
	if _, err := uuid.Parse(gameID); err != nil {
		return "", errors.New("invalid game id")
	}
	return gameID, nil
}

// loadGame fetches the game for the id in the request path. On failure it
// writes the error response and returns a nil game.
func loadGame(c *fiber.Ctx) (string, *othello.Game, error) {
	gameID, err := parseGameID(c)
	if err != nil {
		return "", nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	repo := repository.NewGameRepository(c)
	game, err := repo.GetGame(c.Context(), gameID)

	if errors.Is(err, repository.ErrGameNotFound) {
		return "", nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "game not found",
		})
	}

	if err != nil {
		return "", nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return gameID, game, nil
}

// saveAndRespond persists the mutated game and returns its snapshot.
// Finished games are archived to Postgres as well.
func saveAndRespond(c *fiber.Ctx, gameID string, game *othello.Game) error {
	repo := repository.NewGameRepository(c)

	if err := repo.SaveGame(c.Context(), gameID, game); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if game.IsGameOver() {
		// Archiving is best-effort, the live game remains playable for undo
		if err := repo.ArchiveGame(c.Context(), gameID, game); err != nil {
			slog.Error("Failed to archive finished game", "game_id", gameID, "error", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(gameID, game))
}

// CreateGame starts a new game and returns its initial snapshot.
func CreateGame(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)

	gameID, game, err := repo.CreateGame(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewGameResponse(gameID, game))
}

// GetGame returns the snapshot of a game.
func GetGame(c *fiber.Ctx) error {
	gameID, game, err := loadGame(c)
	if game == nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(gameID, game))
}

// Move plays a square for the current player.
func Move(c *fiber.Ctx) error {
	var req models.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	gameID, game, err := loadGame(c)
	if game == nil {
		return err
	}

	if !game.ApplyMove(req.Square.Row, req.Square.Col) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "illegal move",
		})
	}

	return saveAndRespond(c, gameID, game)
}

// Pass switches the turn without placing a disk. It is rejected while the
// current player still has a legal move.
func Pass(c *fiber.Ctx) error {
	gameID, game, err := loadGame(c)
	if game == nil {
		return err
	}

	if game.HasLegalMoves(game.CurrentPlayer()) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "pass not allowed: legal moves available",
		})
	}

	game.Pass()
	return saveAndRespond(c, gameID, game)
}

// Undo reverses the most recent move. Undoing a fresh game is a no-op.
func Undo(c *fiber.Ctx) error {
	gameID, game, err := loadGame(c)
	if game == nil {
		return err
	}

	game.UndoMove()
	return saveAndRespond(c, gameID, game)
}

// Greedy plays the move flipping the most disks for the current player.
func Greedy(c *fiber.Ctx) error {
	gameID, game, err := loadGame(c)
	if game == nil {
		return err
	}

	if _, ok := game.GreedyMove(); !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "no legal moves",
		})
	}

	return saveAndRespond(c, gameID, game)
}

// Reset restarts the game under the same id.
func Reset(c *fiber.Ctx) error {
	gameID, game, err := loadGame(c)
	if game == nil {
		return err
	}

	game.Reset()
	return saveAndRespond(c, gameID, game)
}

// DeleteGame removes a live game.
func DeleteGame(c *fiber.Ctx) error {
	gameID, game, err := loadGame(c)
	if game == nil {
		return err
	}

	repo := repository.NewGameRepository(c)
	if err := repo.DeleteGame(c.Context(), gameID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LegalMoves lists the legal squares for a player. The player query
// parameter defaults to the player to move.
func LegalMoves(c *fiber.Ctx) error {
	_, game, err := loadGame(c)
	if game == nil {
		return err
	}

	player := game.CurrentPlayer()
	if query := c.Query("player"); query != "" {
		parsed, err := othello.ParseDisk(query)
		if err != nil || parsed == othello.Empty {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player must be black or white",
			})
		}
		player = parsed
	}

	return c.Status(fiber.StatusOK).JSON(models.LegalMovesResponse{
		Player: player,
		Moves:  game.LegalMoves(player),
	})
}
