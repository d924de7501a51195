package api

import (
	"github.com/boardkit/reversi/internal/models"
	"github.com/boardkit/reversi/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// GetArchive lists the most recently finished games.
func GetArchive(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")

	repo := repository.NewGameRepository(c)
	games, err := repo.GetArchivedGames(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.ArchiveResponse{
		Count: len(games),
		Games: games,
	})
}
