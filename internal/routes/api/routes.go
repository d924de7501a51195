package api

import (
	"github.com/boardkit/reversi/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes sets up the JSON API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	games := apiGroup.Group("/games")
	games.Post("/", CreateGame)
	games.Get("/:id", GetGame)
	games.Delete("/:id", DeleteGame)
	games.Get("/:id/legal-moves", LegalMoves)
	games.Post("/:id/move", Move)
	games.Post("/:id/pass", Pass)
	games.Post("/:id/undo", Undo)
	games.Post("/:id/greedy", Greedy)
	games.Post("/:id/reset", Reset)

	archive := apiGroup.Group("/archive", middleware.AuthOrToken())
	archive.Get("/", GetArchive)
}
