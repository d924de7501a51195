package routes

import (
	"github.com/boardkit/reversi/internal/routes/api"
	"github.com/boardkit/reversi/internal/routes/version"
	"github.com/boardkit/reversi/internal/routes/ws"
	"github.com/gofiber/fiber/v2"
)

func rootHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "reversi",
		"api":     "/api/games",
		"ws":      "/ws",
	})
}

func SetupRoutes(app *fiber.App) {
	// Serve API routes
	api.SetupRoutes(app)

	// Serve websocket play
	ws.SetupRoutes(app)

	// Serve version info
	version.SetupRoutes(app)

	// Serve root page
	app.Get("/", rootHandler)
}
